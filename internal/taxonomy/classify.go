package taxonomy

import "strings"

// BuildContext lowercases and joins the non-blank parts with single spaces.
// The result is what Classify scans.
func BuildContext(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, strings.ToLower(p))
	}
	return strings.Join(kept, " ")
}

// Classify returns the first tag in t whose keyword occurs in text.
//
// Matching is plain substring containment on the lowercased text, with no
// word boundaries: "ai" matches inside "pain". Primary entries are tried in
// declaration order, then broad entries, then t.Default. Blank text returns
// t.Default without scanning.
func Classify(text string, t *Taxonomy) Tag {
	if strings.TrimSpace(text) == "" {
		return t.Default
	}
	lower := strings.ToLower(text)
	if tag, ok := firstMatch(lower, t.Primary); ok {
		return tag
	}
	if tag, ok := firstMatch(lower, t.Broad); ok {
		return tag
	}
	return t.Default
}

// Match is a Classify result with the keyword that decided it. Keyword is
// empty when the default tag was returned.
type Match struct {
	Tag     Tag
	Keyword string
	Broad   bool
}

// Explain runs the same procedure as Classify and reports which keyword won.
func Explain(text string, t *Taxonomy) Match {
	if strings.TrimSpace(text) == "" {
		return Match{Tag: t.Default}
	}
	lower := strings.ToLower(text)
	for _, e := range t.Primary {
		if kw, ok := matchEntry(lower, e); ok {
			return Match{Tag: e.Tag, Keyword: kw}
		}
	}
	for _, e := range t.Broad {
		if kw, ok := matchEntry(lower, e); ok {
			return Match{Tag: e.Tag, Keyword: kw, Broad: true}
		}
	}
	return Match{Tag: t.Default}
}

// InferCareerPath classifies text against the discipline taxonomy and
// returns a display label such as "Civil Engineering".
func InferCareerPath(text string) string {
	return Discipline.Label(Classify(text, Discipline))
}

func firstMatch(lower string, entries []Entry) (Tag, bool) {
	for _, e := range entries {
		if _, ok := matchEntry(lower, e); ok {
			return e.Tag, true
		}
	}
	return "", false
}

func matchEntry(lower string, e Entry) (string, bool) {
	for _, kw := range e.Keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
