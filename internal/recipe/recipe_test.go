package recipe

import (
	"strings"
	"testing"
)

func TestDefaultTitle_FirstCaptionLine(t *testing.T) {
	got := DefaultTitle("Tarta de queso\ncon base de galleta", "chef", "abc")
	if got != "Tarta de queso" {
		t.Errorf("DefaultTitle = %q, want %q", got, "Tarta de queso")
	}
}

func TestDefaultTitle_SkipsBlankLines(t *testing.T) {
	got := DefaultTitle("\n\n  Brownie de chocolate  \nmás texto", "chef", "abc")
	if got != "Brownie de chocolate" {
		t.Errorf("DefaultTitle = %q, want %q", got, "Brownie de chocolate")
	}
}

func TestDefaultTitle_TruncatesLongLine(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := DefaultTitle(long, "chef", "abc")

	if len([]rune(got)) != TitleMaxChars {
		t.Errorf("len = %d, want %d", len([]rune(got)), TitleMaxChars)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated title should end with ellipsis, got %q", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 57)) {
		t.Errorf("truncated title should keep the first 57 chars, got %q", got)
	}
}

func TestDefaultTitle_ExactlyMaxChars(t *testing.T) {
	line := strings.Repeat("b", TitleMaxChars)
	got := DefaultTitle(line, "chef", "abc")
	if got != line {
		t.Errorf("a %d-char line should not be truncated", TitleMaxChars)
	}
}

func TestDefaultTitle_AuthorShortcodeFallback(t *testing.T) {
	got := DefaultTitle("", "chef", "abc")
	if got != "chef - abc" {
		t.Errorf("DefaultTitle = %q, want %q", got, "chef - abc")
	}

	// Whitespace-only caption behaves like an empty one.
	got = DefaultTitle("   \n  ", "chef", "abc")
	if got != "chef - abc" {
		t.Errorf("DefaultTitle = %q, want %q", got, "chef - abc")
	}
}

func TestDefaultTitle_NoAuthor(t *testing.T) {
	got := DefaultTitle("", "", "abc")
	if got != "recipe - abc" {
		t.Errorf("DefaultTitle = %q, want %q", got, "recipe - abc")
	}
}

func TestDisplayFolder(t *testing.T) {
	tarta := "Tartas"
	empty := "  "

	tests := []struct {
		name   string
		folder *string
		want   string
	}{
		{"nil", nil, UnfiledName},
		{"blank", &empty, UnfiledName},
		{"named", &tarta, "Tartas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayFolder(tt.folder); got != tt.want {
				t.Errorf("DisplayFolder = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeFolderName(t *testing.T) {
	if got := NormalizeFolderName("  Tartas  "); got != "Tartas" {
		t.Errorf("NormalizeFolderName = %q, want %q", got, "Tartas")
	}
	if got := NormalizeFolderName("   "); got != "" {
		t.Errorf("NormalizeFolderName = %q, want empty", got)
	}
}
