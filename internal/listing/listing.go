// Package listing scrapes repository directory listings for their links.
package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fetcher retrieves directory listing pages over HTTP
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher; a nil client gets a 30 second timeout
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client, userAgent: "archetype-portal"}
}

// Links fetches url and returns the href of every anchor inside a table
// cell or preformatted block, in document order.
func (f *Fetcher) Links(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch listing %s: HTTP %d", url, resp.StatusCode)
	}

	links, err := ParseLinks(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing %s: %w", url, err)
	}
	return links, nil
}

// ParseLinks returns the href of every <a> descending from a <td> or <pre>.
// Anchors without an href are skipped.
func ParseLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []string
	var walk func(n *html.Node, inContainer bool)
	walk = func(n *html.Node, inContainer bool) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Td, atom.Pre:
				inContainer = true
			case atom.A:
				if href, ok := attr(n, "href"); ok && inContainer {
					links = append(links, href)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inContainer)
		}
	}
	walk(doc, false)

	return links, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
