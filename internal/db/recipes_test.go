package db

import (
	"fmt"
	"testing"

	"github.com/matealv/recetario/internal/errors"
	"github.com/matealv/recetario/internal/recipe"
)

// newTestRecipe creates a recipe with default values for testing.
func newTestRecipe(url string) *recipe.Recipe {
	return &recipe.Recipe{
		URL:       url,
		Shortcode: stringPtr("abc"),
		Author:    stringPtr("chef"),
		Caption:   stringPtr("Tarta de queso\ncon base de galleta"),
		Title:     stringPtr("Tarta de queso"),
		Likes:     int64Ptr(10),
	}
}

// stringPtr returns a pointer to the given string.
func stringPtr(s string) *string { return &s }

// int64Ptr returns a pointer to the given int64.
func int64Ptr(n int64) *int64 { return &n }

func TestUpsertAndGetRecipe(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	r := newTestRecipe("https://x/p/abc")
	r.Folder = stringPtr("Tartas")
	r.PostedAt = int64Ptr(1700000000)
	r.ImagePath = stringPtr("abc.jpg")

	id, err := UpsertRecipe(database, r)
	if err != nil {
		t.Fatalf("UpsertRecipe failed: %v", err)
	}
	if id == 0 {
		t.Fatal("id should be assigned")
	}
	if r.ID != id {
		t.Errorf("r.ID = %d, want %d", r.ID, id)
	}

	got, err := GetRecipe(database, id)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}

	if got.URL != r.URL {
		t.Errorf("URL = %q, want %q", got.URL, r.URL)
	}
	if *got.Shortcode != "abc" {
		t.Errorf("Shortcode = %q, want %q", *got.Shortcode, "abc")
	}
	if *got.Author != "chef" {
		t.Errorf("Author = %q, want %q", *got.Author, "chef")
	}
	if *got.Folder != "Tartas" {
		t.Errorf("Folder = %q, want %q", *got.Folder, "Tartas")
	}
	if *got.PostedAt != 1700000000 {
		t.Errorf("PostedAt = %d, want 1700000000", *got.PostedAt)
	}
	if *got.Likes != 10 {
		t.Errorf("Likes = %d, want 10", *got.Likes)
	}
	if *got.ImagePath != "abc.jpg" {
		t.Errorf("ImagePath = %q, want %q", *got.ImagePath, "abc.jpg")
	}
	if got.VideoPath != nil {
		t.Errorf("VideoPath = %v, want nil", *got.VideoPath)
	}
	if got.CreatedAt == 0 || got.UpdatedAt == 0 {
		t.Error("timestamps should be set")
	}
}

func TestUpsertRecipe_SameURLUpdatesInPlace(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	first := newTestRecipe("https://x/p/abc")
	id1, err := UpsertRecipe(database, first)
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := newTestRecipe("https://x/p/abc")
	second.Title = stringPtr("Nueva tarta")
	second.Likes = int64Ptr(99)
	id2, err := UpsertRecipe(database, second)
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	// Idempotent by key, not by content: one row, latest values.
	if id1 != id2 {
		t.Errorf("ids differ: %d vs %d (should be the same row)", id1, id2)
	}

	total, err := CountRecipes(database, Filters{})
	if err != nil {
		t.Fatalf("CountRecipes failed: %v", err)
	}
	if total != 1 {
		t.Errorf("row count = %d, want 1", total)
	}

	got, err := GetRecipe(database, id1)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if *got.Title != "Nueva tarta" {
		t.Errorf("Title = %q, want updated value", *got.Title)
	}
	if *got.Likes != 99 {
		t.Errorf("Likes = %d, want 99", *got.Likes)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	_, err = GetRecipe(database, 404)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestListRecipes_OrderAndPagination(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	for i := 1; i <= 5; i++ {
		r := newTestRecipe(fmt.Sprintf("https://x/p/%d", i))
		if _, err := UpsertRecipe(database, r); err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
	}

	got, err := ListRecipes(database, Filters{}, 3, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Most recent insertion first.
	if got[0].URL != "https://x/p/5" {
		t.Errorf("first URL = %q, want the newest row", got[0].URL)
	}

	rest, err := ListRecipes(database, Filters{}, 3, 3)
	if err != nil {
		t.Fatalf("ListRecipes offset failed: %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("len = %d, want 2", len(rest))
	}

	// Past the end: empty, no error.
	none, err := ListRecipes(database, Filters{}, 3, 10)
	if err != nil {
		t.Fatalf("ListRecipes past end failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("len = %d, want 0", len(none))
	}
}

func TestListRecipes_FolderFilter(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	a := newTestRecipe("https://x/p/a")
	a.Folder = stringPtr("Tartas")
	b := newTestRecipe("https://x/p/b")
	b.Folder = stringPtr("Galletas")
	c := newTestRecipe("https://x/p/c")
	c.Folder = stringPtr("Tartas")

	for _, r := range []*recipe.Recipe{a, b, c} {
		if _, err := UpsertRecipe(database, r); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	got, err := ListRecipes(database, Filters{Folder: stringPtr("Tartas")}, 100, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	// Count matches listing length for the same filter.
	total, err := CountRecipes(database, Filters{Folder: stringPtr("Tartas")})
	if err != nil {
		t.Fatalf("CountRecipes failed: %v", err)
	}
	if total != len(got) {
		t.Errorf("count = %d, want %d", total, len(got))
	}

	// Folder matching is case-insensitive per the NOCASE collation.
	upper, err := CountRecipes(database, Filters{Folder: stringPtr("TARTAS")})
	if err != nil {
		t.Fatalf("CountRecipes failed: %v", err)
	}
	if upper != 2 {
		t.Errorf("NOCASE count = %d, want 2", upper)
	}
}

func TestListRecipes_TextQuery(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	a := newTestRecipe("https://x/p/a")
	a.Title = stringPtr("Brownie")
	a.Caption = stringPtr("El mejor BROWNIE de chocolate")
	b := newTestRecipe("https://x/p/b")
	b.Title = stringPtr("Galletas")
	b.Author = stringPtr("brownbaker")
	b.Caption = stringPtr("crujientes")

	for _, r := range []*recipe.Recipe{a, b} {
		if _, err := UpsertRecipe(database, r); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	// Case-insensitive substring, OR across title/author/caption.
	got, err := ListRecipes(database, Filters{Query: stringPtr("brown")}, 100, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (title and author matches)", len(got))
	}

	// Match present only in caption, with differing case.
	got, err = ListRecipes(database, Filters{Query: stringPtr("chocolate")}, 100, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://x/p/a" {
		t.Errorf("caption match failed: got %d rows", len(got))
	}

	// Absent substring returns empty.
	got, err = ListRecipes(database, Filters{Query: stringPtr("churros")}, 100, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestListRecipes_CombinedFilters(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	a := newTestRecipe("https://x/p/a")
	a.Folder = stringPtr("Tartas")
	a.Title = stringPtr("Tarta de queso")
	b := newTestRecipe("https://x/p/b")
	b.Folder = stringPtr("Galletas")
	b.Title = stringPtr("Tarta falsa") // matches query, wrong folder

	for _, r := range []*recipe.Recipe{a, b} {
		if _, err := UpsertRecipe(database, r); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	// Filters AND together.
	got, err := ListRecipes(database, Filters{Folder: stringPtr("Tartas"), Query: stringPtr("tarta")}, 100, 0)
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://x/p/a" {
		t.Errorf("combined filter: got %d rows", len(got))
	}
}

func TestDeleteRecipe_Idempotent(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	id, err := UpsertRecipe(database, newTestRecipe("https://x/p/abc"))
	if err != nil {
		t.Fatalf("UpsertRecipe failed: %v", err)
	}

	if err := DeleteRecipe(database, id); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}
	if _, err := GetRecipe(database, id); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("recipe still present after delete")
	}

	// Deleting again is a no-op.
	if err := DeleteRecipe(database, id); err != nil {
		t.Errorf("second DeleteRecipe error = %v, want nil", err)
	}
}

func TestUpdateRecipeFolder(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	id, err := UpsertRecipe(database, newTestRecipe("https://x/p/abc"))
	if err != nil {
		t.Fatalf("UpsertRecipe failed: %v", err)
	}

	if err := UpdateRecipeFolder(database, id, "Galletas"); err != nil {
		t.Fatalf("UpdateRecipeFolder failed: %v", err)
	}

	got, err := GetRecipe(database, id)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if *got.Folder != "Galletas" {
		t.Errorf("Folder = %q, want %q", *got.Folder, "Galletas")
	}

	if err := UpdateRecipeFolder(database, 9999, "Galletas"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}
