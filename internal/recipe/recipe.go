package recipe

import "strings"

// Folder naming conventions.
const (
	// UnfiledName is the display name for recipes with no folder assigned.
	UnfiledName = "General"

	// FallbackName is the folder recipes are reassigned to when their
	// folder is deleted. Lazily created on first reassignment.
	FallbackName = "Other"

	// TitleMaxChars caps auto-derived titles.
	TitleMaxChars = 60
)

// Recipe is one saved post: source metadata plus local media paths.
type Recipe struct {
	// ID is the surrogate key, assigned by SQLite at insert.
	ID int64 `json:"id"`

	// URL is the original source URL. Unique; re-submitting the same URL
	// updates the existing row instead of duplicating it.
	URL string `json:"url"`

	// Shortcode is the platform post identifier, used as the media
	// filename stem.
	Shortcode *string `json:"shortcode,omitempty"`

	// Author, Caption, PostedAt and Likes come from the source post and
	// may all be absent when extraction fails to populate them.
	Author   *string `json:"author,omitempty"`
	Caption  *string `json:"caption,omitempty"`
	PostedAt *int64  `json:"posted_at,omitempty"` // Unix timestamp
	Likes    *int64  `json:"likes,omitempty"`

	// Title is the display name, user-supplied or derived via DefaultTitle.
	Title *string `json:"title,omitempty"`

	// Folder is the grouping label. Nil means unfiled (shown as "General").
	Folder *string `json:"folder,omitempty"`

	// ImagePath and VideoPath are upload-dir relative paths, e.g. "abc.jpg".
	ImagePath *string `json:"image_path,omitempty"`
	VideoPath *string `json:"video_path,omitempty"`

	// CreatedAt is the Unix timestamp when the recipe was first saved.
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp of the last upsert.
	UpdatedAt int64 `json:"updated_at"`
}

// Folder is a named grouping bucket for recipes.
type Folder struct {
	// ID is a ULID assigned at creation.
	ID string `json:"id"`

	// Name is unique case-insensitively (NOCASE collation in the schema).
	Name string `json:"name"`

	CreatedAt int64 `json:"created_at"`
}

// DisplayFolder returns the folder name to render for a recipe, falling
// back to UnfiledName when the recipe has no folder.
func DisplayFolder(folder *string) string {
	if folder == nil || strings.TrimSpace(*folder) == "" {
		return UnfiledName
	}
	return *folder
}

// DefaultTitle derives a display title when the user supplied none.
// The first non-blank caption line wins, truncated to TitleMaxChars
// (57 chars + "..."). With no usable caption the title falls back to
// "{author} - {shortcode}".
func DefaultTitle(caption, author, shortcode string) string {
	if line := firstLine(caption); line != "" {
		if len([]rune(line)) <= TitleMaxChars {
			return line
		}
		return string([]rune(line)[:TitleMaxChars-3]) + "..."
	}

	if strings.TrimSpace(author) == "" {
		author = "recipe"
	}
	return author + " - " + shortcode
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// NormalizeFolderName trims surrounding whitespace from a folder name.
// Empty results are invalid; callers reject them before hitting the DB.
func NormalizeFolderName(name string) string {
	return strings.TrimSpace(name)
}
