package ops

import (
	"database/sql"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/recipe"
)

// FoldersOutput contains the result of the Folders operation.
type FoldersOutput struct {
	Names []string `json:"names"`
}

// Folders returns all folder names, ordered case-insensitively.
func Folders(database *sql.DB) (*FoldersOutput, error) {
	folders, err := db.ListFolders(database)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = f.Name
	}

	return &FoldersOutput{Names: names}, nil
}

// CreateFolderOutput contains the result of the CreateFolder operation.
type CreateFolderOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateFolder creates a folder (idempotently) and returns its id.
func CreateFolder(database *sql.DB, name string) (*CreateFolderOutput, error) {
	id, err := db.CreateFolder(database, name)
	if err != nil {
		return nil, err
	}
	return &CreateFolderOutput{
		ID:   id,
		Name: recipe.NormalizeFolderName(name),
	}, nil
}

// DeleteFolderOutput contains the result of the DeleteFolder operation.
type DeleteFolderOutput struct {
	Name     string `json:"name"`
	Fallback string `json:"fallback"`
}

// DeleteFolder removes a folder by name, reassigning its recipes to the
// fallback bucket.
func DeleteFolder(database *sql.DB, name string) (*DeleteFolderOutput, error) {
	if err := db.DeleteFolderByName(database, name); err != nil {
		return nil, err
	}
	return &DeleteFolderOutput{
		Name:     recipe.NormalizeFolderName(name),
		Fallback: recipe.FallbackName,
	}, nil
}
