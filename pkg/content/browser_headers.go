package content

import (
	"math/rand"
	"net/http"
)

// DefaultUserAgent is a desktop browser user agent, some sources refuse non-browser clients
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7",
	"zh-CN,zh;q=0.9,en;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
}

// accept values per request kind
const (
	acceptPage = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	acceptFeed = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5"
	acceptJSON = "application/json,text/plain;q=0.9,*/*;q=0.5"
)

// AddPageHeaders sets browser-like headers for html page requests
func AddPageHeaders(req *http.Request) {
	setCommon(req, acceptPage)
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// AddFeedHeaders sets browser-like headers for rss/atom requests
func AddFeedHeaders(req *http.Request) {
	setCommon(req, acceptFeed)
}

// AddJSONHeaders sets headers for json api requests
func AddJSONHeaders(req *http.Request) {
	setCommon(req, acceptJSON)
}

// setCommon fills headers shared by all kinds. Accept-Encoding is left to the transport,
// so gzip responses are decoded transparently.
func setCommon(req *http.Request, accept string) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	// dnt - 30% chance
	if rand.Float32() < 0.3 { //nolint:gosec // non-cryptographic randomness is fine
		req.Header.Set("DNT", "1")
	}
}
