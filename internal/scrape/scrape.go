// Package scrape turns a social-media post URL into structured post data.
// The rest of the application treats extraction as an opaque collaborator:
// any failure surfaces as a single EXTRACTION_FAILED error with a cause.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/matealv/recetario/internal/errors"
)

// Post is the structured record extracted from a source URL.
type Post struct {
	URL       string
	Shortcode string
	Author    string
	Caption   string
	ImageURL  string
	VideoURL  string
	PostedAt  *int64
	Likes     *int64
}

// Extractor converts a post URL into a Post.
type Extractor interface {
	Extract(ctx context.Context, postURL string) (*Post, error)
}

// OpenGraph extracts post metadata from the page's OpenGraph meta tags.
type OpenGraph struct {
	client *Client
}

// NewOpenGraph creates an extractor with the given per-call timeout.
func NewOpenGraph(timeout time.Duration) *OpenGraph {
	cfg := DefaultClientConfig()
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return &OpenGraph{client: NewClient(cfg)}
}

// Extract fetches the post page and reads its metadata.
func (o *OpenGraph) Extract(ctx context.Context, postURL string) (*Post, error) {
	shortcode, err := ShortcodeFromURL(postURL)
	if err != nil {
		return nil, errors.NewExtractionFailed(postURL, err)
	}

	resp, err := o.client.Get(ctx, postURL)
	if err != nil {
		return nil, errors.NewExtractionFailed(postURL, err)
	}
	defer resp.Body.Close()

	if err := EnsureStatusOK(resp); err != nil {
		return nil, errors.NewExtractionFailed(postURL, err)
	}

	meta, err := parseMetaTags(resp.Body)
	if err != nil {
		return nil, errors.NewExtractionFailed(postURL, err)
	}

	post := &Post{
		URL:       postURL,
		Shortcode: shortcode,
		Author:    firstNonEmpty(meta["author"], meta["twitter:creator"], authorFromTitle(meta["og:title"])),
		Caption:   firstNonEmpty(meta["og:description"], meta["description"], meta["og:title"]),
		ImageURL:  meta["og:image"],
		VideoURL:  firstNonEmpty(meta["og:video"], meta["og:video:url"]),
	}

	if ts := meta["article:published_time"]; ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			unix := t.Unix()
			post.PostedAt = &unix
		}
	}

	// Like counts only appear in the description blurb some platforms
	// emit, e.g. "1,234 likes, 56 comments - ...". Best effort.
	if n, ok := likesFromDescription(post.Caption); ok {
		post.Likes = &n
	}

	return post, nil
}

// ShortcodeFromURL derives the platform post identifier from the last
// non-empty path segment, e.g. https://x/p/abc/ -> "abc".
func ShortcodeFromURL(postURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(postURL))
	if err != nil {
		return "", fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "", fmt.Errorf("URL has no post identifier: %s", postURL)
	}
	return last, nil
}

// parseMetaTags walks the document head collecting <meta> property/name
// -> content pairs. Later duplicates do not override earlier ones.
func parseMetaTags(r io.Reader) (map[string]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	meta := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var key, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property", "name":
					key = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if key != "" && content != "" {
				if _, seen := meta[key]; !seen {
					meta[key] = content
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return meta, nil
}

// authorFromTitle recovers the author from titles shaped like
// `Author on Platform: "caption"`.
func authorFromTitle(title string) string {
	if idx := strings.Index(title, " on "); idx > 0 {
		return strings.TrimSpace(title[:idx])
	}
	return ""
}

// likesFromDescription parses a leading like count from description
// blurbs of the form "1,234 likes, ...".
func likesFromDescription(desc string) (int64, bool) {
	fields := strings.Fields(desc)
	if len(fields) < 2 || !strings.HasPrefix(strings.ToLower(fields[1]), "like") {
		return 0, false
	}
	raw := strings.ReplaceAll(fields[0], ",", "")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// firstNonEmpty returns the first non-blank candidate.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
