package ops

import (
	"database/sql"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/recipe"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Page   int     // 1-based; values < 1 are treated as 1
	Folder *string // optional exact-match filter
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []recipe.Recipe `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// List retrieves a page of recipes, most recent first, optionally
// restricted to a folder.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	page := clampPage(input.Page)
	filters := db.Filters{Folder: cleanOptionalString(input.Folder)}

	total, err := db.CountRecipes(database, filters)
	if err != nil {
		return nil, err
	}

	items, err := db.ListRecipes(database, filters, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []recipe.Recipe{}
	}

	return &ListOutput{
		Items:      items,
		Pagination: NewPagination(page, total),
	}, nil
}
