// Package template holds the static four-week curricula served when live
// generation is unavailable or its output is rejected.
package template

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/alexanderramin/waypoint/internal/taxonomy"
)

//go:embed curricula/*.md
var curriculaFS embed.FS

// Library maps domain tags to curriculum text. Lookup is total: tags without
// a document resolve to the general curriculum.
type Library struct {
	docs     map[taxonomy.Tag]string
	fallback string
}

// Load reads every "<tag>.md" file at the root of fsys. The general
// curriculum is mandatory.
func Load(fsys fs.FS) (*Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading curricula: %w", err)
	}

	lib := &Library{docs: make(map[taxonomy.Tag]string, len(entries))}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading curriculum %s: %w", e.Name(), err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, fmt.Errorf("curriculum %s is empty", e.Name())
		}
		tag := taxonomy.Tag(strings.TrimSuffix(e.Name(), ".md"))
		lib.docs[tag] = text
	}

	general, ok := lib.docs[taxonomy.General]
	if !ok {
		return nil, fmt.Errorf("curricula missing required %q document", taxonomy.General)
	}
	lib.fallback = general
	return lib, nil
}

// Default returns the library backed by the embedded curricula.
func Default() *Library {
	sub, err := fs.Sub(curriculaFS, "curricula")
	if err != nil {
		panic(fmt.Sprintf("template: embedded curricula: %v", err))
	}
	lib, err := Load(sub)
	if err != nil {
		panic(fmt.Sprintf("template: embedded curricula: %v", err))
	}
	return lib
}

// Lookup returns the curriculum for tag, or the general curriculum when the
// tag has no document of its own.
func (l *Library) Lookup(tag taxonomy.Tag) string {
	if text, ok := l.docs[tag]; ok {
		return text
	}
	return l.fallback
}

// Has reports whether tag has a dedicated document.
func (l *Library) Has(tag taxonomy.Tag) bool {
	_, ok := l.docs[tag]
	return ok
}
