// Package taxonomy holds the static keyword vocabularies used to classify a
// learner's free text into a domain, and the first-match classifier over them.
//
// Each taxonomy is an ordered list of (tag, keywords) entries. Declaration
// order is the tie-break: the first entry with any keyword contained in the
// text wins, regardless of how many keywords other entries would match.
package taxonomy

import "strings"

// Tag identifies a learning domain or engineering discipline.
type Tag string

// Learning domains, used to pick a fallback curriculum.
const (
	Web           Tag = "web"
	Mobile        Tag = "mobile"
	Data          Tag = "data"
	Cloud         Tag = "cloud"
	Cybersecurity Tag = "cybersecurity"
	Game          Tag = "game"
	Design        Tag = "design"
	General       Tag = "general"
)

// Engineering disciplines, used for career-path inference.
const (
	Software     Tag = "software"
	Civil        Tag = "civil"
	Mechanical   Tag = "mechanical"
	Electrical   Tag = "electrical"
	Chemical     Tag = "chemical"
	Industrial   Tag = "industrial"
	Professional Tag = "professional"
)

// Broad career categories matched when no discipline keyword is found.
const (
	Technology  Tag = "technology"
	Engineering Tag = "engineering"
	Business    Tag = "business"
	Creative    Tag = "creative"
	Healthcare  Tag = "healthcare"
	Education   Tag = "education"
	Arts        Tag = "arts"
)

// Entry maps a tag to its keyword variants. Keywords are lowercase.
type Entry struct {
	Tag      Tag
	Keywords []string
}

// Taxonomy is a named, ordered vocabulary. Primary entries are scanned
// first, then the broad entries, and Default is returned when neither
// matches.
type Taxonomy struct {
	Name    string
	Primary []Entry
	Broad   []Entry
	Default Tag
	Labels  map[Tag]string
}

// Label returns the display name for tag, or the tag itself capitalized.
func (t *Taxonomy) Label(tag Tag) string {
	if l, ok := t.Labels[tag]; ok {
		return l
	}
	s := string(tag)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Tags returns every tag Classify can return for this taxonomy, in
// declaration order, with Default last.
func (t *Taxonomy) Tags() []Tag {
	seen := make(map[Tag]bool)
	var tags []Tag
	add := func(tag Tag) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	for _, e := range t.Primary {
		add(e.Tag)
	}
	for _, e := range t.Broad {
		add(e.Tag)
	}
	add(t.Default)
	return tags
}

// Keywords returns the primary keyword list for tag, or nil.
func (t *Taxonomy) Keywords(tag Tag) []string {
	for _, e := range t.Primary {
		if e.Tag == tag {
			return e.Keywords
		}
	}
	return nil
}

// ByName returns the taxonomy registered under name ("learning" or
// "discipline").
func ByName(name string) (*Taxonomy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Learning.Name:
		return Learning, true
	case Discipline.Name:
		return Discipline, true
	}
	return nil, false
}
