package ops

import (
	"database/sql"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/media"
)

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// Delete removes a recipe and its stored media files. Deleting an
// unknown id is a no-op, reported via Deleted=false.
func Delete(database *sql.DB, store *media.Store, id int64) (*DeleteOutput, error) {
	r, err := db.GetRecipe(database, id)
	if errors.Is(err, errors.ErrNotFound) {
		return &DeleteOutput{Deleted: false, ID: id}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.DeleteRecipe(database, id); err != nil {
		return nil, err
	}

	if store != nil {
		var paths []string
		if r.ImagePath != nil {
			paths = append(paths, *r.ImagePath)
		}
		if r.VideoPath != nil {
			paths = append(paths, *r.VideoPath)
		}
		store.Remove(paths...)
	}

	return &DeleteOutput{Deleted: true, ID: id}, nil
}
