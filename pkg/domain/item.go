package domain

import (
	"strings"
	"time"
	"unicode"
)

const (
	// MaxTags is the maximum number of tags kept per item
	MaxTags = 4
	// MaxKeyPoints is the maximum number of key points kept per item
	MaxKeyPoints = 5
)

// Item represents a single curated entry flowing through the fetch pipeline and persisted
type Item struct {
	ID       string // module + "_" + SourceID, primary key
	SourceID string // adapter-local identifier, not persisted
	Module   Module
	Source   string // human-readable feed name
	Author   string

	Title     string
	TitleZh   string
	Summary   string
	Link      string
	Thumbnail string
	PubDate   time.Time // zero when the source has no publication date

	FameScore   int
	Tags        []Tag
	IsHero      bool
	CoreInsight string
	KeyPoints   []string
	Extra       Extra

	FetchRunID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TagType is a taxonomy bucket of a tag
type TagType string

// tag types
const (
	TagCompany TagType = "company"
	TagPerson  TagType = "person"
	TagTopic   TagType = "topic"
	TagTech    TagType = "tech"
	TagEvent   TagType = "event"
	TagLang    TagType = "lang"
)

// Tag is a label attached to an item
type Tag struct {
	Label string  `json:"label"`
	Type  TagType `json:"type"`
}

// ItemID builds the global item id from module and source id.
// Ids already carrying the module prefix are returned unchanged.
func ItemID(module Module, sourceID string) string {
	prefix := string(module) + "_"
	if strings.HasPrefix(sourceID, prefix) {
		return sourceID
	}
	return prefix + sourceID
}

// TitleKey returns the normalized title used for in-adapter deduplication:
// lowercased, everything except letters and digits removed, first 50 runes.
// Letters include non-latin scripts, so CJK titles do not collapse into an empty key.
func TitleKey(title string) string {
	var sb strings.Builder
	n := 0
	for _, r := range strings.ToLower(title) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		sb.WriteRune(r)
		if n++; n == 50 {
			break
		}
	}
	return sb.String()
}

// Normalize trims text fields, caps tags and key points and replaces nil collections with empty ones
func (it *Item) Normalize() {
	it.Title = strings.TrimSpace(it.Title)
	it.TitleZh = strings.TrimSpace(it.TitleZh)
	it.Summary = strings.TrimSpace(it.Summary)
	it.Link = strings.TrimSpace(it.Link)
	if it.Tags == nil {
		it.Tags = []Tag{}
	}
	if len(it.Tags) > MaxTags {
		it.Tags = it.Tags[:MaxTags]
	}
	if it.KeyPoints == nil {
		it.KeyPoints = []string{}
	}
	if len(it.KeyPoints) > MaxKeyPoints {
		it.KeyPoints = it.KeyPoints[:MaxKeyPoints]
	}
}

// Age returns the item age relative to now, zero if the publication date is unknown
func (it *Item) Age(now time.Time) time.Duration {
	if it.PubDate.IsZero() {
		return 0
	}
	return now.Sub(it.PubDate)
}

// Truncate cuts s to at most n runes, appending suffix when anything was removed
func Truncate(s string, n int, suffix string) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + suffix
}
