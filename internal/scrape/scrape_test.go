package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matealv/recetario/internal/errors"
)

const postPage = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="chef on Instagram: &quot;Tarta de queso&quot;" />
<meta property="og:description" content="10 likes, 2 comments - Tarta de queso" />
<meta property="og:image" content="https://cdn.example/abc.jpg" />
<meta property="og:video" content="https://cdn.example/abc.mp4" />
<meta property="article:published_time" content="2024-05-01T12:00:00Z" />
</head>
<body></body>
</html>`

func TestExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(postPage))
	}))
	defer srv.Close()

	ex := NewOpenGraph(5 * time.Second)
	post, err := ex.Extract(context.Background(), srv.URL+"/p/abc")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if post.Shortcode != "abc" {
		t.Errorf("Shortcode = %q, want %q", post.Shortcode, "abc")
	}
	if post.Author != "chef" {
		t.Errorf("Author = %q, want %q", post.Author, "chef")
	}
	if post.ImageURL != "https://cdn.example/abc.jpg" {
		t.Errorf("ImageURL = %q", post.ImageURL)
	}
	if post.VideoURL != "https://cdn.example/abc.mp4" {
		t.Errorf("VideoURL = %q", post.VideoURL)
	}
	if post.Likes == nil || *post.Likes != 10 {
		t.Errorf("Likes = %v, want 10", post.Likes)
	}
	if post.PostedAt == nil {
		t.Error("PostedAt should be parsed from article:published_time")
	}
}

func TestExtract_HTTPErrorIsExtractionFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ex := NewOpenGraph(5 * time.Second)
	_, err := ex.Extract(context.Background(), srv.URL+"/p/missing")
	if !errors.Is(err, errors.ErrExtractionFailed) {
		t.Errorf("error = %v, want EXTRACTION_FAILED", err)
	}
}

func TestExtract_MalformedURL(t *testing.T) {
	ex := NewOpenGraph(time.Second)

	for _, bad := range []string{"notaurl", "ftp://x/p/abc", "https://host/"} {
		_, err := ex.Extract(context.Background(), bad)
		if !errors.Is(err, errors.ErrExtractionFailed) {
			t.Errorf("Extract(%q) error = %v, want EXTRACTION_FAILED", bad, err)
		}
	}
}

func TestShortcodeFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://x/p/abc", "abc", false},
		{"https://x/p/abc/", "abc", false},
		{"https://www.instagram.com/reel/XyZ123/?utm_source=ig", "XyZ123", false},
		{"https://host/", "", true},
		{"not a url at all ::", "", true},
	}

	for _, tt := range tests {
		got, err := ShortcodeFromURL(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ShortcodeFromURL(%q) expected error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ShortcodeFromURL(%q) error = %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ShortcodeFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient(&ClientConfig{
		Timeout:      2 * time.Second,
		MaxRetries:   3,
		RetryBackoff: time.Millisecond,
		UserAgent:    "test",
	})

	resp, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestLikesFromDescription(t *testing.T) {
	tests := []struct {
		desc string
		want int64
		ok   bool
	}{
		{"10 likes, 2 comments - caption", 10, true},
		{"1,234 likes - caption", 1234, true},
		{"just a caption", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := likesFromDescription(tt.desc)
		if ok != tt.ok || got != tt.want {
			t.Errorf("likesFromDescription(%q) = (%d, %v), want (%d, %v)", tt.desc, got, ok, tt.want, tt.ok)
		}
	}
}
