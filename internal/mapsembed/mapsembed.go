// Package mapsembed reads the Google Maps embed snippets stored for each campus.
//
// The stored value is the <iframe> copied from the "Share > Embed a map" dialog:
//
//	<iframe src="https://www.google.com/maps/embed?pb=..." width="600" height="450"
//	style="border:0;" allowfullscreen="" loading="lazy"></iframe>
//
// Only the src URL is exposed to clients; it carries the coordinates.
package mapsembed

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoEmbedURL is returned when a stored value holds neither an iframe src nor a URL
var ErrNoEmbedURL = errors.New("no embed url in stored map reference")

const (
	embedPrefix  = `<iframe src="`
	embedTrailer = `" width="600" height="450" style="border:0;" allowfullscreen="" loading="lazy"></iframe>`
)

// Render wraps src in the canonical embed snippet
func Render(src string) string {
	return embedPrefix + src + embedTrailer
}

// Extract returns the src of the first iframe in stored. A stored value that is
// already a bare http(s) URL is returned unchanged.
func Extract(stored string) (string, error) {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return "", ErrNoEmbedURL
	}

	z := html.NewTokenizer(strings.NewReader(stored))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return "", z.Err()
			}
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		if atom.Lookup(name) != atom.Iframe {
			continue
		}
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == "src" && len(val) > 0 {
				return string(val), nil
			}
		}
		return "", ErrNoEmbedURL
	}

	if isHTTPURL(stored) {
		return stored, nil
	}
	return "", ErrNoEmbedURL
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
