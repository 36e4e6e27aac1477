// Package markdown decodes front matter documents and renders their bodies.
package markdown

import (
	"bytes"
	"fmt"
	"io/fs"
	"sort"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
)

// File is a document read from a filesystem.
type File struct {
	Path   string
	Source []byte
}

// ParseFrontMatter decodes the YAML header of source into meta and returns
// the remaining body.
func ParseFrontMatter(source []byte, meta any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(source), meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return body, nil
}

// ReadFiles returns every file under fsys matching pattern, sorted by path.
// An empty pattern defaults to "**/*.md".
func ReadFiles(fsys fs.FS, pattern string) ([]File, error) {
	if pattern == "" {
		pattern = "**/*.md"
	}
	paths, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("markdown glob %s: %w", pattern, err)
	}
	sort.Strings(paths)

	files := make([]File, 0, len(paths))
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("markdown read %s: %w", path, err)
		}
		files = append(files, File{Path: path, Source: raw})
	}
	return files, nil
}
