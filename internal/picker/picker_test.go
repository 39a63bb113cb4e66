package picker

import (
	"strings"
	"testing"
)

func sampleItems() []Item {
	return []Item{
		{Label: "main"},
		{Label: "feature-login"},
		{Label: "feature-logout"},
		{Label: "bugfix-header"},
	}
}

func TestFilterEmptyQueryKeepsOrder(t *testing.T) {
	got := filter(sampleItems(), "")
	if len(got) != 4 {
		t.Fatalf("filter returned %d indices, want 4", len(got))
	}
	for i, idx := range got {
		if idx != i {
			t.Fatalf("filter reordered items without a query: %v", got)
		}
	}
}

func TestFilterFuzzyMatches(t *testing.T) {
	items := sampleItems()
	got := filter(items, "login")
	if len(got) == 0 {
		t.Fatal("filter found no matches for login")
	}
	if items[got[0]].Label != "feature-login" {
		t.Fatalf("best match = %q, want feature-login", items[got[0]].Label)
	}
	for _, idx := range got {
		if items[idx].Label == "main" {
			t.Fatal("filter matched an unrelated item")
		}
	}
}

func TestFilterNoMatches(t *testing.T) {
	if got := filter(sampleItems(), "zzzzz"); len(got) != 0 {
		t.Fatalf("filter matched %d items for nonsense query", len(got))
	}
}

func TestMoveCursorClampsAndScrolls(t *testing.T) {
	items := make([]Item, 25)
	for i := range items {
		items[i] = Item{Label: strings.Repeat("x", i+1)}
	}
	s := &state{opts: Options{Items: items}, width: 80}
	s.refilter()

	s.moveCursor(-1)
	if s.cursor != 0 {
		t.Fatalf("cursor moved above the top: %d", s.cursor)
	}
	for i := 0; i < 100; i++ {
		s.moveCursor(1)
	}
	if s.cursor != len(items)-1 {
		t.Fatalf("cursor = %d, want clamped to %d", s.cursor, len(items)-1)
	}
	if s.offset != len(items)-maxVisible {
		t.Fatalf("offset = %d, want %d so the cursor stays visible", s.offset, len(items)-maxVisible)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "abc", 10, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdefgh", 5, "abcd…"},
		{"wideRunes", "가나다라", 5, "가나…"},
		{"zeroWidth", "abc", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.text, tc.width); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestRenderNeverEmitsDirectiveShapedLines(t *testing.T) {
	// Item labels are user controlled; rendered rows must never begin with
	// the literal two-space cd prefix the shim scans for.
	s := &state{
		opts:  Options{Title: "Select", Items: []Item{{Label: "cd /tmp/evil"}}},
		width: 80,
	}
	s.refilter()

	var b strings.Builder
	s.render(&b)
	for _, lineText := range strings.Split(b.String(), "\r\n") {
		if strings.HasPrefix(lineText, "  cd ") {
			t.Fatalf("render produced a directive-shaped line: %q", lineText)
		}
	}
}
