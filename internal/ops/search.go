package ops

import (
	"database/sql"
	"strings"

	"github.com/matealv/recetario/internal/db"
	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/recipe"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query  string  // required, non-blank
	Page   int     // 1-based
	Folder *string // optional additional filter (AND)
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query      string          `json:"query"`
	Items      []recipe.Recipe `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// Search finds recipes whose title, author, or caption contains the
// query, case-insensitively. Callers that want "empty query -> empty
// results" short-circuit before calling; here a blank query is invalid.
func Search(database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	page := clampPage(input.Page)
	filters := db.Filters{
		Folder: cleanOptionalString(input.Folder),
		Query:  &query,
	}

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

	return &SearchOutput{
		Query:      query,
		Items:      items,
		Pagination: NewPagination(page, total),
	}, nil
}
