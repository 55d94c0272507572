package ops

import (
	"database/sql"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/recipe"
)

// FetchOutput contains the result of the Fetch operation.
type FetchOutput struct {
	recipe.Recipe        // embedded (copy, not pointer)
	DisplayFolder string `json:"display_folder"`
}

// Fetch retrieves a recipe by its surrogate key.
func Fetch(database *sql.DB, id int64) (*FetchOutput, error) {
	r, err := db.GetRecipe(database, id)
	if err != nil {
		return nil, err
	}

	return &FetchOutput{
		Recipe:        *r,
		DisplayFolder: recipe.DisplayFolder(r.Folder),
	}, nil
}
