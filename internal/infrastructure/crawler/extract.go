// Package crawler fetches article pages and extracts their main text
// content for sentiment scoring.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/domain/entity"
)

var _ output.ArticleFetcher = (*Fetcher)(nil)

const (
	maxTextSize      = 20_000
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "nav": {}, "footer": {},
	"header": {}, "aside": {}, "form": {}, "iframe": {}, "svg": {},
}

type Fetcher struct {
	client *http.Client
	logger output.LoggerPort
}

func NewFetcher(client *http.Client, logger output.LoggerPort) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fetcher{client: client, logger: logger}
}

// ExtractText fetches a page and returns its main content: the text of
// <main> or <article> when present, otherwise of <body>, with script,
// style and navigation chrome stripped.
func (f *Fetcher) ExtractText(ctx context.Context, rawURL string) (string, error) {
	f.logger.Debug("crawling article", "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &entity.ProviderError{Provider: "crawler", Err: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &entity.ProviderError{Provider: "crawler", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &entity.ProviderError{
			Provider: "crawler",
			Err:      fmt.Errorf("unexpected status %s for %s", resp.Status, rawURL),
		}
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", &entity.ProviderError{Provider: "crawler", Err: fmt.Errorf("parse html: %w", err)}
	}

	root := findNode(doc, "main")
	if root == nil {
		root = findNode(doc, "article")
	}
	if root == nil {
		root = findNode(doc, "body")
	}
	if root == nil {
		return "", nil
	}

	var sb strings.Builder
	collectText(root, &sb)
	text := strings.TrimSpace(sb.String())
	if len(text) > maxTextSize {
		text = text[:maxTextSize]
	}
	return text, nil
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		if _, skip := skipTags[n.Data]; skip {
			return
		}
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
