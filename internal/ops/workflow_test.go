package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matealv/recetario/internal/recipe"
	"github.com/matealv/recetario/internal/scrape"
)

// TestWorkflow exercises the full lifecycle: add, organize, search,
// reconcile, prune, delete.
func TestWorkflow(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	ex := &fakeExtractor{posts: map[string]*scrape.Post{
		"https://x/p/flan": {URL: "https://x/p/flan", Shortcode: "flan", Author: "abuela", Caption: "Flan de huevo casero", Likes: int64Ptr(42)},
		"https://x/p/pan":  {URL: "https://x/p/pan", Shortcode: "pan", Author: "panadero", Caption: "Pan de masa madre"},
	}}

	flan, err := Add(ctx, database, ex, nil, AddInput{URL: "https://x/p/flan"})
	require.NoError(t, err)
	require.Equal(t, "Flan de huevo casero", flan.Title)
	require.Equal(t, recipe.UnfiledName, flan.Folder)

	pan, err := Add(ctx, database, ex, nil, AddInput{URL: "https://x/p/pan", Folder: "Panes"})
	require.NoError(t, err)
	require.Equal(t, "Panes", pan.Folder)

	// Organize: move the flan into its own folder.
	moved, err := Move(database, MoveInput{ID: flan.ID, Folder: "Postres"})
	require.NoError(t, err)
	require.Equal(t, "Postres", moved.Folder)

	folders, err := Folders(database)
	require.NoError(t, err)
	require.Contains(t, folders.Names, "Panes")
	require.Contains(t, folders.Names, "Postres")

	// Search spans title, author, and caption.
	found, err := Search(database, SearchInput{Query: "masa madre", Page: 1})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	require.Equal(t, pan.ID, found.Items[0].ID)

	byAuthor, err := Search(database, SearchInput{Query: "abuela", Page: 1})
	require.NoError(t, err)
	require.Len(t, byAuthor.Items, 1)

	// Reconcile finds nothing to repair on a consistent store.
	rec, err := Reconcile(database)
	require.NoError(t, err)
	require.Empty(t, rec.Created)

	// Delete the flan, then prune its now-empty folder.
	deleted, err := Delete(database, nil, flan.ID)
	require.NoError(t, err)
	require.True(t, deleted.Deleted)

	pruned, err := Prune(database)
	require.NoError(t, err)
	require.Contains(t, pruned.Removed, "Postres")
	require.NotContains(t, pruned.Removed, "Panes")

	remaining, err := List(database, ListInput{Page: 1})
	require.NoError(t, err)
	require.Equal(t, 1, remaining.Pagination.Total)
}

func TestReconcile_BackfillsMissingFolders(t *testing.T) {
	database := setupDB(t)
	seedRecipes(t, database, 1, "Tartas")

	// Remove the folder row behind the store's back, keeping the recipe.
	_, err := database.Exec(`DELETE FROM folders WHERE name = 'Tartas'`)
	require.NoError(t, err)

	out, err := Reconcile(database)
	require.NoError(t, err)
	require.Equal(t, []string{"Tartas"}, out.Created)

	again, err := Reconcile(database)
	require.NoError(t, err)
	require.Empty(t, again.Created)
}
