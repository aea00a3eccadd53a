package domain

// Module is a named source family, the partition key of persisted items
type Module string

// recognized modules
const (
	ModuleYouTube      Module = "youtube"
	ModuleTwitter      Module = "twitter"
	ModuleReddit       Module = "reddit"
	ModuleSubstack     Module = "substack"
	ModuleProducts     Module = "products"
	ModuleBusiness     Module = "business"
	ModuleApplePodcast Module = "apple_podcast"
)

// Modules lists all recognized modules in pipeline order
var Modules = []Module{
	ModuleYouTube, ModuleSubstack, ModuleTwitter, ModuleProducts,
	ModuleBusiness, ModuleApplePodcast, ModuleReddit,
}

// Valid reports whether m is one of the recognized modules
func (m Module) Valid() bool {
	for _, v := range Modules {
		if v == m {
			return true
		}
	}
	return false
}

// ContentType selects the summarizer template used for a module
type ContentType string

// content types
const (
	ContentVideo     ContentType = "video"
	ContentArticle   ContentType = "article"
	ContentNews      ContentType = "news"
	ContentProduct   ContentType = "product"
	ContentAudio     ContentType = "audio"
	ContentForum     ContentType = "forum"
	ContentMicroblog ContentType = "microblog"
)
