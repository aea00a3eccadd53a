package source

import "github.com/umputun/aidigest/pkg/domain"

// Feed describes one configured feed. Key is a slug or short id, URL is set for absolute feeds.
type Feed struct {
	Key    string
	URL    string
	Name   string
	Author string
}

// Channel is a video channel
type Channel struct {
	ID   string
	Name string
}

// Account is a microblog account with its priority, 1 is the highest
type Account struct {
	Username string
	Name     string
	Company  string
	Priority int
}

// video

// YouTubeChannels lists long-form AI channels
var YouTubeChannels = []Channel{
	{ID: "UCNJ1Ymd5yFuUPtn21xtRbbw", Name: "AI Explained"},
	{ID: "UCSHZKyawb77ixDdsGog4iWA", Name: "Lex Fridman"},
	{ID: "UCcefcZRL2oaA_uBNeo5UOWg", Name: "Y Combinator"},
}

// youtubeChannelWeights are matched against the channel name, first match wins
var youtubeChannelWeights = []Weight{
	{"AI Explained", 95}, {"Lex Fridman", 100}, {"Y Combinator", 85},
}

var youtubeEntityWeights = []Weight{
	{"openai", 50}, {"gpt-5", 50}, {"gpt-4", 40}, {"gpt", 30},
	{"anthropic", 45}, {"claude", 45},
	{"google", 40}, {"deepmind", 40}, {"gemini", 40},
	{"nvidia", 35}, {"meta", 30},
	{"sam altman", 50}, {"altman", 40},
	{"andrej karpathy", 45}, {"karpathy", 40},
	{"dario amodei", 40}, {"amodei", 35},
	{"jensen huang", 35}, {"ilya sutskever", 45},
	{"scaling", 25}, {"transformer", 25}, {"agent", 25}, {"sota", 30},
}

var youtubeEntityPatterns = []TagPattern{
	tag(`openai`, "OpenAI", domain.TagCompany),
	tag(`gpt-?[45o]`, "GPT", domain.TagCompany),
	tag(`anthropic`, "Anthropic", domain.TagCompany),
	tag(`claude`, "Claude", domain.TagCompany),
	tag(`google|deepmind|gemini`, "Google", domain.TagCompany),
	tag(`nvidia`, "NVIDIA", domain.TagCompany),
	tag(`meta\s*ai|llama`, "Meta AI", domain.TagCompany),
	tag(`sam\s*altman`, "Sam Altman", domain.TagPerson),
	tag(`karpathy`, "Karpathy", domain.TagPerson),
	tag(`dario`, "Dario Amodei", domain.TagPerson),
	tag(`jensen`, "Jensen Huang", domain.TagPerson),
	tag(`ilya`, "Ilya Sutskever", domain.TagPerson),
}

// minVideoSeconds drops shorts when the duration is known
const minVideoSeconds = 600

// newsletter

// SubstackFeeds lists newsletter slugs, feed url is https://<slug>.substack.com/feed
var SubstackFeeds = []Feed{
	{Key: "thebatch", Name: "The Batch", Author: "Andrew Ng"},
	{Key: "importai", Name: "Import AI", Author: "Jack Clark"},
	{Key: "oneusefulthing", Name: "One Useful Thing", Author: "Ethan Mollick"},
	{Key: "interconnects", Name: "Interconnects", Author: "Nathan Lambert"},
	{Key: "sebastianraschka", Name: "Ahead of AI", Author: "Sebastian Raschka"},
	{Key: "chinatalk", Name: "ChinaTalk", Author: "Jordan Schneider"},
	{Key: "aisnakeoil", Name: "AI Snake Oil", Author: "Arvind Narayanan"},
	{Key: "bensbites", Name: "Ben's Bites", Author: "Ben Tossell"},
	{Key: "creatoreconomy", Name: "Creator Economy", Author: "Peter Yang"},
}

// OfficialFeeds lists vendor blogs
var OfficialFeeds = []Feed{
	{URL: "https://openai.com/blog/rss.xml", Name: "OpenAI Blog", Author: "OpenAI"},
	{URL: "https://www.anthropic.com/rss.xml", Name: "Anthropic News", Author: "Anthropic"},
	{URL: "https://blog.google/technology/ai/rss/", Name: "Google AI Blog", Author: "Google"},
	{URL: "https://ai.meta.com/blog/rss/", Name: "Meta AI Blog", Author: "Meta"},
	{URL: "https://x.ai/blog/rss.xml", Name: "xAI News", Author: "xAI"},
	{URL: "https://mistral.ai/feed.xml", Name: "Mistral AI News", Author: "Mistral"},
}

// officialBonus is added to vendor blog entries
const officialBonus = 30

var substackKeywordWeights = []Weight{
	{"gpt", 40}, {"openai", 50}, {"anthropic", 45}, {"claude", 45},
	{"google", 40}, {"gemini", 40}, {"llama", 35}, {"meta", 30},
	{"agent", 30}, {"reasoning", 35}, {"scaling", 30},
	{"breakthrough", 40}, {"sota", 35}, {"benchmark", 25},
	{"grok", 35}, {"mistral", 35},
}

// substackAuthorBonus is matched by exact author, unknown authors get defaultAuthorBonus
var substackAuthorBonus = map[string]int{
	"Andrew Ng": 30, "Ethan Mollick": 25, "Sebastian Raschka": 20,
	"OpenAI": 40, "Anthropic": 40, "Google": 35, "Meta": 30, "xAI": 30, "Mistral": 30,
}

const defaultAuthorBonus = 10

var substackTagPatterns = []TagPattern{
	tag(`openai|gpt-?[45o]`, "OpenAI", domain.TagCompany),
	tag(`anthropic|claude`, "Anthropic", domain.TagCompany),
	tag(`google|gemini|deepmind`, "Google", domain.TagCompany),
	tag(`meta|llama`, "Meta", domain.TagCompany),
	tag(`mistral`, "Mistral", domain.TagCompany),
	tag(`xai|grok`, "xAI", domain.TagCompany),
	tag(`agent`, "Agent", domain.TagTopic),
	tag(`reasoning`, "Reasoning", domain.TagTopic),
	tag(`scaling`, "Scaling", domain.TagTopic),
}

// microblog

// TwitterAccounts lists priority accounts
var TwitterAccounts = []Account{
	{Username: "sama", Name: "Sam Altman", Company: "OpenAI", Priority: 1},
	{Username: "karpathy", Name: "Andrej Karpathy", Priority: 2},
	{Username: "ilyasut", Name: "Ilya Sutskever", Priority: 3},
	{Username: "DarioAmodei", Name: "Dario Amodei", Company: "Anthropic", Priority: 4},
	{Username: "demishassabis", Name: "Demis Hassabis", Company: "DeepMind", Priority: 5},
	{Username: "OpenAI", Name: "OpenAI", Company: "OpenAI", Priority: 6},
	{Username: "AnthropicAI", Name: "Anthropic", Company: "Anthropic", Priority: 7},
	{Username: "GoogleDeepMind", Name: "Google DeepMind", Company: "Google", Priority: 8},
	{Username: "geoffreyhinton", Name: "Geoffrey Hinton", Priority: 9},
	{Username: "AndrewYNg", Name: "Andrew Ng", Priority: 10},
}

var twitterKeywordWeights = []Weight{
	{"launch", 50}, {"release", 50}, {"announce", 45},
	{"gpt", 40}, {"claude", 40}, {"gemini", 40},
	{"breakthrough", 45}, {"sota", 40},
	{"agent", 30}, {"reasoning", 35},
}

var twitterTagPatterns = []TagPattern{
	tag(`openai|gpt`, "OpenAI", domain.TagCompany),
	tag(`anthropic|claude`, "Anthropic", domain.TagCompany),
	tag(`google|gemini|deepmind`, "Google", domain.TagCompany),
	tag(`meta|llama`, "Meta", domain.TagCompany),
	tag(`mistral`, "Mistral", domain.TagCompany),
	tag(`launch|release|announce`, "发布", domain.TagEvent),
	tag(`agent`, "Agent", domain.TagTopic),
	tag(`reasoning`, "Reasoning", domain.TagTopic),
}

// priorityBonus converts account priority into score, 1 gives 100 and 10 gives 10
func priorityBonus(priority int) int {
	if priority < 1 || priority > 10 {
		return 0
	}
	return (11 - priority) * 10
}

// code forge

var productsAIKeywords = []string{
	"ai", "ml", "llm", "gpt", "chatgpt", "claude", "gemini",
	"machine learning", "deep learning", "neural", "transformer",
	"langchain", "vector", "embedding", "rag", "agent",
	"openai", "anthropic", "huggingface", "pytorch", "tensorflow",
	"mcp", "model context protocol", "cursor", "copilot",
}

var productsKeywordWeights = []Weight{
	{"llm", 40}, {"gpt", 35}, {"claude", 35}, {"agent", 35},
	{"rag", 30}, {"langchain", 30}, {"openai", 40},
	{"anthropic", 40}, {"huggingface", 30}, {"mcp", 35},
}

var productsStarTiers = []Tier{
	{Min: 10000, Bonus: 50}, {Min: 5000, Bonus: 40}, {Min: 1000, Bonus: 30}, {Min: 500, Bonus: 20}, {Min: 100, Bonus: 10},
}

var productsTagPatterns = []TagPattern{
	tag(`llm|gpt|claude|gemini`, "LLM", domain.TagTech),
	tag(`agent`, "Agent", domain.TagTech),
	tag(`rag|vector|embedding`, "RAG", domain.TagTech),
	tag(`langchain|llamaindex`, "Framework", domain.TagTech),
	tag(`mcp|model context`, "MCP", domain.TagTech),
	tag(`python`, "Python", domain.TagLang),
	tag(`typescript|javascript`, "TypeScript", domain.TagLang),
	tag(`rust`, "Rust", domain.TagLang),
	tag(`go\b|golang`, "Go", domain.TagLang),
}

// readme section headers, checked in order
var readmeSections = []struct {
	section  string
	keywords []string
}{
	{"features", []string{"feature", "功能", "特性", "what"}},
	{"installation", []string{"install", "安装", "getting started", "quick start", "usage"}},
	{"tech_stack", []string{"tech", "stack", "built with", "依赖", "技术"}},
	{"use_cases", []string{"use case", "用例", "example", "demo"}},
}

var readmeInstallPrefixes = []string{"pip ", "npm ", "yarn ", "cargo ", "go "}

var readmeTechKeywords = []string{
	"python", "typescript", "javascript", "rust", "go", "react", "vue", "nextjs",
	"fastapi", "flask", "django", "pytorch", "tensorflow", "langchain", "llamaindex",
}

// limits of trending scrape and readme parsing
const (
	trendingMaxRows   = 30
	trendingEnrichTop = 20
	readmeMaxChars    = 8000
	readmeMaxFeatures = 5
	readmeMaxTech     = 5
	readmeMaxUseCases = 3
)

// news

// BusinessFeeds lists AI business news feeds
var BusinessFeeds = []Feed{
	{Key: "techcrunch_ai", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Name: "TechCrunch AI"},
	{Key: "venturebeat_ai", URL: "https://venturebeat.com/category/ai/feed/", Name: "VentureBeat AI"},
	{Key: "theverge_ai", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml", Name: "The Verge AI"},
	{Key: "wired_ai", URL: "https://www.wired.com/feed/tag/ai/latest/rss", Name: "Wired AI"},
}

var businessKeywords = []string{
	"funding", "raised", "series", "investment", "valuation",
	"acquisition", "acquire", "merger", "ipo", "partnership",
	"deal", "billion", "million", "revenue", "profit",
}

var businessKeywordWeights = []Weight{
	{"funding", 50}, {"raised", 50}, {"series", 45}, {"investment", 45},
	{"valuation", 50}, {"billion", 45}, {"million", 35},
	{"acquisition", 50}, {"acquire", 50}, {"merger", 45},
	{"ipo", 55}, {"public", 40}, {"stock", 35},
	{"partnership", 40}, {"deal", 35}, {"contract", 35},
	{"launch", 40}, {"release", 40}, {"announce", 35},
	{"openai", 45}, {"anthropic", 45}, {"google", 40},
	{"microsoft", 40}, {"nvidia", 45}, {"meta", 35},
}

var businessSourceBonus = map[string]int{
	"TechCrunch AI": 20, "VentureBeat AI": 15, "The Verge AI": 10, "Wired AI": 10,
}

const defaultSourceBonus = 5

var businessTagPatterns = []TagPattern{
	tag(`funding|raised|series|investment`, "融资", domain.TagEvent),
	tag(`acquisition|acquire|merger`, "收购", domain.TagEvent),
	tag(`ipo|public offering`, "IPO", domain.TagEvent),
	tag(`partnership|deal`, "合作", domain.TagEvent),
	tag(`openai`, "OpenAI", domain.TagCompany),
	tag(`anthropic`, "Anthropic", domain.TagCompany),
	tag(`nvidia`, "NVIDIA", domain.TagCompany),
	tag(`google|deepmind`, "Google", domain.TagCompany),
	tag(`microsoft`, "Microsoft", domain.TagCompany),
}

// podcasts

// PodcastFeeds lists Chinese AI and tech podcasts
var PodcastFeeds = []Feed{
	{URL: "https://harddecisions.fireside.fm/rss", Name: "硬地骇客"},
	{URL: "https://etw.fm/feed", Name: "声东击西"},
	{URL: "https://crazy.capital/feed", Name: "疯投圈"},
	{URL: "https://dao.fm/feed/", Name: "津津乐道"},
	{URL: "https://feeds.fireside.fm/zheshangye/rss", Name: "商业就是这样"},
	{URL: "https://feed.xyzfm.space/evgg6xle9rdc", Name: "42章经"},
	{URL: "https://feed.xyzfm.space/yxuruh3f9mc4", Name: "乱翻书"},
	{URL: "https://feeds.fireside.fm/guiguzaozhidao/rss", Name: "硅谷早知道/科技早知道"},
	{URL: "https://www.ximalaya.com/album/75918257.xml", Name: "科技沉思录"},
	{URL: "https://feed.xyzfm.space/dk4yh3pkpjp3", Name: "张小珺｜商业访谈录"},
	{URL: "https://feeds.fireside.fm/sv101/rss", Name: "硅谷101"},
	{URL: "https://feed.xyzfm.space/xxg7ryklkkft", Name: "OnBoard!"},
	{URL: "https://www.ximalaya.com/album/74194808.xml", Name: "AI炼金术"},
}

var podcastAIKeywords = []string{
	"AI", "人工智能", "GPT", "ChatGPT", "大模型", "LLM",
	"机器学习", "深度学习", "OpenAI", "Anthropic", "Claude",
	"AGI", "AIGC", "生成式", "智能", "Agent", "智能体",
	"Sora", "Midjourney", "科技", "技术", "创业", "硅谷",
}

// podcast scoring: rank based base score plus keyword bonus
const (
	podcastBaseScore     = 100
	podcastRankStep      = 5
	podcastMinBase       = 10
	podcastKeywordBonus  = 15
	podcastMaxBonus      = 60
	podcastSummaryChars  = 500
	podcastEntriesPerRSS = 10
)

// forum

// Subreddits lists AI subreddits
var Subreddits = []string{
	"MachineLearning", "artificial", "OpenAI", "LocalLLaMA",
	"ChatGPT", "ClaudeAI", "singularity", "StableDiffusion",
}

var subredditTags = map[string]domain.Tag{
	"MachineLearning": {Label: "ML", Type: domain.TagTopic},
	"OpenAI":          {Label: "OpenAI", Type: domain.TagCompany},
	"LocalLLaMA":      {Label: "LocalLLM", Type: domain.TagTopic},
	"ChatGPT":         {Label: "ChatGPT", Type: domain.TagTopic},
	"ClaudeAI":        {Label: "Claude", Type: domain.TagCompany},
	"StableDiffusion": {Label: "SD", Type: domain.TagTopic},
}

var redditTagPatterns = []TagPattern{
	tag(`gpt-4|gpt-5|gpt4|gpt5`, "GPT", domain.TagTopic),
	tag(`llama|mistral|qwen`, "OpenSource", domain.TagTopic),
	tag(`fine-?tun`, "FineTune", domain.TagTopic),
	tag(`rag|retrieval`, "RAG", domain.TagTopic),
	tag(`agent`, "Agent", domain.TagTopic),
	tag(`benchmark|eval`, "Benchmark", domain.TagTopic),
}

var redditUpvoteTiers = []Tier{
	{Min: 1000, Bonus: 50}, {Min: 500, Bonus: 40}, {Min: 200, Bonus: 30}, {Min: 100, Bonus: 20}, {Min: 50, Bonus: 10},
}

var redditCommentTiers = []Tier{
	{Min: 200, Bonus: 30}, {Min: 100, Bonus: 20}, {Min: 50, Bonus: 10},
}

var redditHotSubreddits = map[string]bool{"MachineLearning": true, "LocalLLaMA": true, "OpenAI": true}

const (
	redditHotBonus     = 15
	redditPostsPerSub  = 20
	redditSummaryChars = 200
)

var redditBadThumbnails = map[string]bool{"self": true, "default": true, "nsfw": true, "spoiler": true, "": true}

// caps per module
const (
	capVideo    = 30
	capArticle  = 30
	capTweets   = 30
	capProducts = 30
	capNews     = 30
	capPodcast  = 15
	capForum    = 30
)
