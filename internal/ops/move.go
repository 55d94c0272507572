package ops

import (
	"database/sql"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/recipe"
)

// MoveInput contains parameters for the Move operation.
type MoveInput struct {
	ID     int64
	Folder string // required; created if it does not exist yet
}

// MoveOutput contains the result of the Move operation.
type MoveOutput struct {
	ID     int64  `json:"id"`
	Folder string `json:"folder"`
}

// Move reassigns a single recipe to a folder, creating the folder first
// if needed.
func Move(database *sql.DB, input MoveInput) (*MoveOutput, error) {
	folder := recipe.NormalizeFolderName(input.Folder)
	if folder == "" {
		return nil, errors.NewInvalidRequest("folder name must not be empty")
	}

	if _, err := db.CreateFolder(database, folder); err != nil {
		return nil, err
	}
	if err := db.UpdateRecipeFolder(database, input.ID, folder); err != nil {
		return nil, err
	}

	return &MoveOutput{ID: input.ID, Folder: folder}, nil
}
