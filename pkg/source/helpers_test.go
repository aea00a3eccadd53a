package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

// rssEntry is a test item rendered into rss xml, zero PubDate omits the pubDate element
type rssEntry struct {
	Title, Link, GUID, Description string
	PubDate                        time.Time
	Extra                          string // raw xml appended into <item>
}

func rssXML(title string, entries ...rssEntry) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
<title>` + title + `</title>
<link>http://example.com</link>
<description>test feed</description>
`)
	for _, e := range entries {
		sb.WriteString("<item>\n<title><![CDATA[" + e.Title + "]]></title>\n")
		if e.Link != "" {
			sb.WriteString("<link>" + e.Link + "</link>\n")
		}
		if e.GUID != "" {
			sb.WriteString("<guid>" + e.GUID + "</guid>\n")
		}
		sb.WriteString("<description><![CDATA[" + e.Description + "]]></description>\n")
		if !e.PubDate.IsZero() {
			sb.WriteString("<pubDate>" + e.PubDate.Format(time.RFC1123Z) + "</pubDate>\n")
		}
		sb.WriteString(e.Extra)
		sb.WriteString("</item>\n")
	}
	sb.WriteString("</channel>\n</rss>")
	return sb.String()
}

// contentServer serves fixed bodies by request path, unknown paths get 404
func contentServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// feedsFunc adapts a function to FeedFetcher
type feedsFunc func(ctx context.Context, url string) (*gofeed.Feed, error)

func (f feedsFunc) ParseURL(ctx context.Context, url string) (*gofeed.Feed, error) { return f(ctx, url) }

// staticFeeds parses prepared xml by url, unknown urls fail
func staticFeeds(t *testing.T, byURL map[string]string) feedsFunc {
	t.Helper()
	return func(_ context.Context, url string) (*gofeed.Feed, error) {
		body, ok := byURL[url]
		if !ok {
			return nil, fmt.Errorf("no feed for %s", url)
		}
		return gofeed.NewParser().ParseString(body)
	}
}

func hoursAgo(h int) time.Time {
	return time.Now().Add(-time.Duration(h) * time.Hour)
}
