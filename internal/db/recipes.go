package db

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/recipe"
)

// Filters restricts recipe listing and counting. Both filters combine
// with logical AND when present.
type Filters struct {
	// Folder matches the folder label exactly (NOCASE collation).
	Folder *string

	// Query matches title, author, or caption by case-insensitive
	// substring (OR across the three fields).
	Query *string
}

// UpsertRecipe inserts a recipe or, when a row with the same URL already
// exists, updates its mutable fields in place. URL is the only identity
// field. Returns the row id and sets r.ID.
func UpsertRecipe(db *sql.DB, r *recipe.Recipe) (int64, error) {
	now := time.Now().Unix()
	if r.CreatedAt == 0 {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	query := `
		INSERT INTO recipes (
			url, shortcode, author, caption, image_path, video_path,
			posted_at, likes, title, folder, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			shortcode  = excluded.shortcode,
			author     = excluded.author,
			caption    = excluded.caption,
			image_path = excluded.image_path,
			video_path = excluded.video_path,
			posted_at  = excluded.posted_at,
			likes      = excluded.likes,
			title      = excluded.title,
			folder     = excluded.folder,
			updated_at = excluded.updated_at
	`

	_, err := db.Exec(query,
		r.URL, toNullString(r.Shortcode), toNullString(r.Author), toNullString(r.Caption),
		toNullString(r.ImagePath), toNullString(r.VideoPath),
		toNullInt64(r.PostedAt), toNullInt64(r.Likes),
		toNullString(r.Title), toNullString(r.Folder),
		r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	// LastInsertId is unreliable for the conflict path; resolve the row
	// id through the unique key instead.
	var id int64
	if err := db.QueryRow("SELECT id FROM recipes WHERE url = ?", r.URL).Scan(&id); err != nil {
		return 0, errors.NewInternal(err)
	}

	r.ID = id
	return id, nil
}

// GetRecipe retrieves a recipe by its surrogate key.
func GetRecipe(db *sql.DB, id int64) (*recipe.Recipe, error) {
	query := `
		SELECT id, url, shortcode, author, caption, image_path, video_path,
			posted_at, likes, title, folder, created_at, updated_at
		FROM recipes
		WHERE id = ?
	`

	row := db.QueryRow(query, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(formatID(id))
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// ListRecipes returns recipes matching the filters, most recent first
// (descending insertion order), limited by limit/offset.
func ListRecipes(db *sql.DB, f Filters, limit, offset int) ([]recipe.Recipe, error) {
	where, args := buildFilterClause(f)

	query := `
		SELECT id, url, shortcode, author, caption, image_path, video_path,
			posted_at, likes, title, folder, created_at, updated_at
		FROM recipes
	` + where + `
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var recipes []recipe.Recipe
	for rows.Next() {
		r, err := scanRecipeRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return recipes, nil
}

// CountRecipes returns the total number of recipes matching the filters,
// with the same semantics as ListRecipes.
func CountRecipes(db *sql.DB, f Filters) (int, error) {
	where, args := buildFilterClause(f)

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM recipes"+where, args...).Scan(&total); err != nil {
		return 0, errors.NewInternal(err)
	}
	return total, nil
}

// DeleteRecipe removes a recipe row. Deleting a non-existent id is a no-op.
func DeleteRecipe(db *sql.DB, id int64) error {
	if _, err := db.Exec("DELETE FROM recipes WHERE id = ?", id); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// UpdateRecipeFolder changes a single recipe's folder assignment.
// The target folder must already exist; that is the caller's job.
func UpdateRecipeFolder(db *sql.DB, id int64, folder string) error {
	result, err := db.Exec(
		"UPDATE recipes SET folder = ?, updated_at = ? WHERE id = ?",
		folder, time.Now().Unix(), id,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if affected == 0 {
		return errors.NewNotFound(formatID(id))
	}

	return nil
}

// buildFilterClause converts Filters into a WHERE clause and its args.
func buildFilterClause(f Filters) (string, []any) {
	var conds []string
	var args []any

	if f.Folder != nil {
		conds = append(conds, "folder = ?")
		args = append(args, *f.Folder)
	}
	if f.Query != nil {
		q := strings.ToLower(*f.Query)
		conds = append(conds, `(
			instr(lower(coalesce(title, '')), ?) > 0
			OR instr(lower(coalesce(author, '')), ?) > 0
			OR instr(lower(coalesce(caption, '')), ?) > 0
		)`)
		args = append(args, q, q, q)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row *sql.Row) (*recipe.Recipe, error)       { return scanRecipeFrom(row) }
func scanRecipeRows(rows *sql.Rows) (*recipe.Recipe, error) { return scanRecipeFrom(rows) }

// formatID renders a surrogate key for error messages.
func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func scanRecipeFrom(s rowScanner) (*recipe.Recipe, error) {
	var (
		r         recipe.Recipe
		shortcode sql.NullString
		author    sql.NullString
		caption   sql.NullString
		imagePath sql.NullString
		videoPath sql.NullString
		postedAt  sql.NullInt64
		likes     sql.NullInt64
		title     sql.NullString
		folder    sql.NullString
	)

	err := s.Scan(
		&r.ID, &r.URL, &shortcode, &author, &caption, &imagePath, &videoPath,
		&postedAt, &likes, &title, &folder, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Shortcode = fromNullString(shortcode)
	r.Author = fromNullString(author)
	r.Caption = fromNullString(caption)
	r.ImagePath = fromNullString(imagePath)
	r.VideoPath = fromNullString(videoPath)
	r.PostedAt = fromNullInt64(postedAt)
	r.Likes = fromNullInt64(likes)
	r.Title = fromNullString(title)
	r.Folder = fromNullString(folder)

	return &r, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// toNullInt64 converts a *int64 to sql.NullInt64.
func toNullInt64(n *int64) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *n, Valid: true}
}

// fromNullInt64 converts a sql.NullInt64 to *int64.
func fromNullInt64(nn sql.NullInt64) *int64 {
	if !nn.Valid {
		return nil
	}
	return &nn.Int64
}
