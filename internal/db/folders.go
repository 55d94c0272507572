package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/recipe"
)

// ListFolders returns all folders ordered case-insensitively by name.
func ListFolders(db *sql.DB) ([]recipe.Folder, error) {
	rows, err := db.Query("SELECT id, name, created_at FROM folders ORDER BY name COLLATE NOCASE ASC")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var folders []recipe.Folder
	for rows.Next() {
		var f recipe.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return folders, nil
}

// CreateFolder creates a folder and returns its id. Creating an existing
// name (case-insensitively) is a no-op that returns the existing id.
// The name is trimmed; an empty result is a validation error.
func CreateFolder(db *sql.DB, name string) (string, error) {
	name = recipe.NormalizeFolderName(name)
	if name == "" {
		return "", errors.NewInvalidRequest("folder name must not be empty")
	}

	id := ulid.Make().String()
	_, err := db.Exec(
		"INSERT INTO folders (id, name, created_at) VALUES (?, ?, ?)",
		id, name, time.Now().Unix(),
	)
	if err == nil {
		return id, nil
	}
	if !isUniqueConstraintError(err) {
		return "", errors.NewInternal(err)
	}

	// Already exists: fetch the winner's id.
	var existing string
	if err := db.QueryRow("SELECT id FROM folders WHERE name = ?", name).Scan(&existing); err != nil {
		return "", errors.NewInternal(err)
	}
	return existing, nil
}

// FolderExists reports whether a folder with the given name exists.
// Matching is case-insensitive per the schema collation.
func FolderExists(db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRow("SELECT 1 FROM folders WHERE name = ? LIMIT 1", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// DeleteFolderByName removes a folder, reassigning its member recipes to
// the fallback folder first (creating it if absent). Deleting an unknown
// name is a no-op. Everything runs in one transaction.
func DeleteFolderByName(db *sql.DB, name string) error {
	name = recipe.NormalizeFolderName(name)
	if name == "" {
		return errors.NewInvalidRequest("folder name must not be empty")
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRow("SELECT 1 FROM folders WHERE name = ? LIMIT 1", name).Scan(&one)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.NewInternal(err)
	}

	// The fallback folder itself gets no reassignment target; its members
	// keep the label and a later reconcile recreates the row if needed.
	if !strings.EqualFold(name, recipe.FallbackName) {
		err = tx.QueryRow("SELECT 1 FROM folders WHERE name = ? LIMIT 1", recipe.FallbackName).Scan(&one)
		if err == sql.ErrNoRows {
			_, err = tx.Exec(
				"INSERT INTO folders (id, name, created_at) VALUES (?, ?, ?)",
				ulid.Make().String(), recipe.FallbackName, time.Now().Unix(),
			)
		}
		if err != nil {
			return errors.NewInternal(err)
		}

		_, err = tx.Exec(
			"UPDATE recipes SET folder = ?, updated_at = ? WHERE folder = ?",
			recipe.FallbackName, time.Now().Unix(), name,
		)
		if err != nil {
			return errors.NewInternal(err)
		}
	}

	if _, err := tx.Exec("DELETE FROM folders WHERE name = ?", name); err != nil {
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ReconcileFolders backfills folder rows for every distinct folder label
// referenced by recipes but missing from the folders table. Returns the
// names created. This is the one-directional recipes→folders repair.
func ReconcileFolders(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT DISTINCT folder FROM recipes
		WHERE folder IS NOT NULL AND trim(folder) <> ''
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, errors.NewInternal(err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	var created []string
	for _, label := range labels {
		exists, err := FolderExists(db, label)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		if _, err := CreateFolder(db, label); err != nil {
			return nil, err
		}
		created = append(created, label)
	}

	return created, nil
}

// PruneEmptyFolders deletes folders with no member recipes and returns
// the removed names.
func PruneEmptyFolders(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT f.name
		FROM folders f
		LEFT JOIN recipes r ON r.folder = f.name
		WHERE r.id IS NULL
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var empty []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.NewInternal(err)
		}
		empty = append(empty, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	for _, name := range empty {
		if _, err := db.Exec("DELETE FROM folders WHERE name = ?", name); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	return empty, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE
// constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
