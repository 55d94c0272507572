// Package importer bulk-loads saved post dumps into the recipe store.
// A dump directory holds one JSON metadata file per post, optionally
// with sibling {name}.jpg / {name}.mp4 assets.
package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/media"
	"github.com/matealv/recetario/internal/recipe"
)

// Input contains parameters for an import run.
type Input struct {
	Dir    string // required; directory holding *.json dumps
	Folder string // optional; defaults to the unfiled bucket
	Limit  int    // optional; 0 imports everything
}

// FileError records a single dump file that could not be imported.
type FileError struct {
	File string `json:"file"`
	Err  string `json:"error"`
}

// Output summarizes an import run. Per-file failures are collected in
// Errors; only directory-level problems abort the run.
type Output struct {
	BatchID  string      `json:"batch_id"`
	Imported int         `json:"imported"`
	IDs      []int64     `json:"ids"`
	Errors   []FileError `json:"errors"`
}

// postDump mirrors the saved-post JSON shape.
type postDump struct {
	Node struct {
		Shortcode string `json:"shortcode"`
		Owner     struct {
			Username string `json:"username"`
		} `json:"owner"`
		EdgeMediaToCaption struct {
			Edges []struct {
				Node struct {
					Text string `json:"text"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"edge_media_to_caption"`
		TakenAtTimestamp *int64 `json:"taken_at_timestamp"`
		EdgeLikedBy      struct {
			Count *int64 `json:"count"`
		} `json:"edge_liked_by"`
	} `json:"node"`
}

// Run imports every *.json dump under in.Dir. Each run gets a fresh
// ULID batch id for log correlation.
func Run(ctx context.Context, database *sql.DB, store *media.Store, in Input) (*Output, error) {
	dir := strings.TrimSpace(in.Dir)
	if dir == "" {
		return nil, errors.NewInvalidRequest("import directory is required")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("not a directory: %s", dir))
	}

	folder := recipe.NormalizeFolderName(in.Folder)
	if folder == "" {
		folder = recipe.UnfiledName
	}
	if _, err := db.CreateFolder(database, folder); err != nil {
		return nil, err
	}

	// Glob returns names sorted, so runs are deterministic.
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	out := &Output{
		BatchID: ulid.Make().String(),
		IDs:     []int64{},
		Errors:  []FileError{},
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewInternal(err)
		}
		if in.Limit > 0 && out.Imported >= in.Limit {
			break
		}

		id, err := importFile(database, store, folder, file)
		if err != nil {
			out.Errors = append(out.Errors, FileError{File: filepath.Base(file), Err: err.Error()})
			continue
		}
		out.IDs = append(out.IDs, id)
		out.Imported++
	}

	return out, nil
}

func importFile(database *sql.DB, store *media.Store, folder, file string) (int64, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return 0, err
	}

	var dump postDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return 0, fmt.Errorf("malformed dump: %w", err)
	}

	shortcode := dump.Node.Shortcode
	if shortcode == "" {
		return 0, fmt.Errorf("dump has no shortcode")
	}

	author := dump.Node.Owner.Username
	caption := ""
	if edges := dump.Node.EdgeMediaToCaption.Edges; len(edges) > 0 {
		caption = edges[0].Node.Text
	}

	title := recipe.DefaultTitle(caption, author, shortcode)
	url := fmt.Sprintf("https://www.instagram.com/p/%s/", shortcode)

	r := &recipe.Recipe{
		URL:      url,
		Title:    &title,
		Folder:   &folder,
		PostedAt: dump.Node.TakenAtTimestamp,
		Likes:    dump.Node.EdgeLikedBy.Count,
	}
	r.Shortcode = &shortcode
	if author != "" {
		r.Author = &author
	}
	if caption != "" {
		r.Caption = &caption
	}

	// Sibling assets share the dump's base name.
	base := strings.TrimSuffix(file, filepath.Ext(file))
	if rel, err := copyAsset(store, base+".jpg", shortcode, store.SaveImage); err == nil && rel != "" {
		r.ImagePath = &rel
	}
	if rel, err := copyAsset(store, base+".mp4", shortcode, store.SaveVideo); err == nil && rel != "" {
		r.VideoPath = &rel
	}

	return db.UpsertRecipe(database, r)
}

// copyAsset moves one sibling media file into the store. A missing
// sibling is normal and reports an empty path.
func copyAsset(store *media.Store, path, shortcode string, save func(string, io.Reader) (string, error)) (string, error) {
	if store == nil {
		return "", nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer f.Close()

	return save(shortcode, f)
}
