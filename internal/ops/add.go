package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/media"
	"github.com/matealv/recetario/internal/recipe"
	"github.com/matealv/recetario/internal/scrape"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	URL    string // required
	Title  string // optional; derived from the post when blank
	Folder string // optional; defaults to the unfiled bucket
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Folder string `json:"folder"`
}

// Add extracts a post, stores its media, and upserts the recipe keyed by
// URL. Extraction failure aborts the whole operation; a failed media
// download does not (the recipe is saved without that asset).
func Add(ctx context.Context, database *sql.DB, extractor scrape.Extractor, store *media.Store, input AddInput) (*AddOutput, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, errors.NewInvalidRequest("url is required")
	}

	post, err := extractor.Extract(ctx, url)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = recipe.DefaultTitle(post.Caption, post.Author, post.Shortcode)
	}

	folder := recipe.NormalizeFolderName(input.Folder)
	if folder == "" {
		folder = recipe.UnfiledName
	}
	if _, err := db.CreateFolder(database, folder); err != nil {
		return nil, err
	}

	r := &recipe.Recipe{
		URL:    url,
		Title:  &title,
		Folder: &folder,
	}
	if post.Shortcode != "" {
		r.Shortcode = &post.Shortcode
	}
	if post.Author != "" {
		r.Author = &post.Author
	}
	if post.Caption != "" {
		r.Caption = &post.Caption
	}
	r.PostedAt = post.PostedAt
	r.Likes = post.Likes

	// Media downloads are best-effort per asset.
	if store != nil && post.ImageURL != "" {
		if rel, err := store.DownloadImage(ctx, post.Shortcode, post.ImageURL); err == nil {
			r.ImagePath = &rel
		}
	}
	if store != nil && post.VideoURL != "" {
		if rel, err := store.DownloadVideo(ctx, post.Shortcode, post.VideoURL); err == nil {
			r.VideoPath = &rel
		}
	}

	id, err := db.UpsertRecipe(database, r)
	if err != nil {
		return nil, err
	}

	return &AddOutput{
		ID:     id,
		Title:  title,
		Folder: folder,
	}, nil
}
