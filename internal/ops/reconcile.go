package ops

import (
	"database/sql"

	"github.com/matealv/recetario/internal/db"
)

// ReconcileOutput contains the result of the Reconcile operation.
type ReconcileOutput struct {
	Created []string `json:"created"`
}

// Reconcile backfills folder rows for labels referenced by recipes but
// missing from the folders table. This is the formal recipes→folders
// consistency repair; the reverse direction is handled by Prune.
func Reconcile(database *sql.DB) (*ReconcileOutput, error) {
	created, err := db.ReconcileFolders(database)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = []string{}
	}
	return &ReconcileOutput{Created: created}, nil
}

// PruneOutput contains the result of the Prune operation.
type PruneOutput struct {
	Removed []string `json:"removed"`
}

// Prune deletes folders that no recipe references.
func Prune(database *sql.DB) (*PruneOutput, error) {
	removed, err := db.PruneEmptyFolders(database)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		removed = []string{}
	}
	return &PruneOutput{Removed: removed}, nil
}
