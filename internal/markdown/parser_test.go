package markdown

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestGoldmarkParserDefaultsToGFM(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{})

	out, err := parser.Parse([]byte("~~old~~ and **new**"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<del>old</del>") || !strings.Contains(html, "<strong>new</strong>") {
		t.Fatalf("unexpected html: %q", html)
	}
}

func TestGoldmarkParserSafeModeDropsRawHTML(t *testing.T) {
	unsafe := NewGoldmarkParser(ParseOptions{})
	safe := NewGoldmarkParser(ParseOptions{SafeMode: true})
	src := []byte("<div>raw</div>")

	out, err := unsafe.Parse(src)
	if err != nil || !strings.Contains(string(out), "<div>raw</div>") {
		t.Fatalf("expected raw html to pass through, got %q err=%v", out, err)
	}
	out, err = safe.Parse(src)
	if err != nil || strings.Contains(string(out), "<div>") {
		t.Fatalf("expected raw html to be omitted, got %q err=%v", out, err)
	}
}

func TestRenderBlankInput(t *testing.T) {
	got, err := NewGoldmarkParser(ParseOptions{}).Render("  \n")
	if err != nil || got != "" {
		t.Fatalf("expected empty output, got %q err=%v", got, err)
	}
}

func TestCollectExtensionsIgnoresUnknownAndDuplicates(t *testing.T) {
	cases := []struct {
		names []string
		want  int
	}{
		{names: []string{"Table", "tables", " ", "emoji", "footnote"}, want: 2},
		{names: []string{"linkify", "AUTOLINK"}, want: 1},
		{names: []string{"emoji"}, want: 0},
	}
	for _, tc := range cases {
		if got := len(collectExtensions(tc.names)); got != tc.want {
			t.Fatalf("collectExtensions(%q) = %d extensions, want %d", tc.names, got, tc.want)
		}
	}
}

func TestAliasedExtensionsRenderOnce(t *testing.T) {
	parser := NewGoldmarkParser(ParseOptions{Extensions: []string{"table", "tables"}})
	out, err := parser.Parse([]byte("| a |\n|---|\n| 1 |\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := strings.Count(string(out), "<table>"); got != 1 {
		t.Fatalf("expected one table, got %d in %q", got, out)
	}
}

func TestParseFrontMatter(t *testing.T) {
	var meta struct {
		Title string `yaml:"title"`
		Order int    `yaml:"order"`
	}
	body, err := ParseFrontMatter([]byte("---\ntitle: Hello\norder: 3\n---\nBody text\n"), &meta)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if meta.Title != "Hello" || meta.Order != 3 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if strings.TrimSpace(string(body)) != "Body text" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestReadFilesSortsAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":         {Data: []byte("b")},
		"nested/a.md":  {Data: []byte("a")},
		"notes.txt":    {Data: []byte("skip")},
		"nested/z.txt": {Data: []byte("skip")},
	}
	files, err := ReadFiles(fsys, "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(files) != 2 || files[0].Path != "b.md" || files[1].Path != "nested/a.md" {
		t.Fatalf("unexpected files: %+v", files)
	}
	if string(files[1].Source) != "a" {
		t.Fatalf("unexpected source: %q", files[1].Source)
	}
}
