// Package media persists downloaded post assets under the upload
// directory. Files are named by shortcode ({shortcode}.jpg /
// {shortcode}.mp4), overwrite-on-reuse, no deduplication.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/matealv/recetario/internal/scrape"
)

// Store writes media files into a root directory and returns paths
// relative to that root, which the persistence layer stores verbatim.
type Store struct {
	root   string
	client *scrape.Client
}

// NewStore creates a media store rooted at dir, creating it if needed.
func NewStore(dir string, timeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	cfg := scrape.DefaultClientConfig()
	if timeout > 0 {
		cfg.Timeout = timeout
	}

	return &Store{
		root:   dir,
		client: scrape.NewClient(cfg),
	}, nil
}

// Root returns the upload directory.
func (s *Store) Root() string {
	return s.root
}

// SaveImage writes image bytes as {shortcode}.jpg and returns the
// relative path.
func (s *Store) SaveImage(shortcode string, r io.Reader) (string, error) {
	return s.save(shortcode+".jpg", r)
}

// SaveVideo writes video bytes as {shortcode}.mp4 and returns the
// relative path.
func (s *Store) SaveVideo(shortcode string, r io.Reader) (string, error) {
	return s.save(shortcode+".mp4", r)
}

// DownloadImage fetches an image asset and stores it for the shortcode.
func (s *Store) DownloadImage(ctx context.Context, shortcode, url string) (string, error) {
	return s.download(ctx, url, shortcode+".jpg")
}

// DownloadVideo fetches a video asset and stores it for the shortcode.
func (s *Store) DownloadVideo(ctx context.Context, shortcode, url string) (string, error) {
	return s.download(ctx, url, shortcode+".mp4")
}

// Remove deletes stored files by relative path. Missing files are
// ignored; cleanup is best-effort.
func (s *Store) Remove(relPaths ...string) {
	for _, rel := range relPaths {
		if rel == "" {
			continue
		}
		_ = os.Remove(filepath.Join(s.root, filepath.Base(rel)))
	}
}

func (s *Store) save(name string, r io.Reader) (string, error) {
	// Base strips any path components a hostile shortcode could carry.
	name = filepath.Base(name)

	f, err := os.OpenFile(filepath.Join(s.root, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return name, nil
}

func (s *Store) download(ctx context.Context, url, name string) (string, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to download asset: %w", err)
	}
	defer resp.Body.Close()

	if err := scrape.EnsureStatusOK(resp); err != nil {
		return "", fmt.Errorf("failed to download asset: %w", err)
	}

	return s.save(name, resp.Body)
}
