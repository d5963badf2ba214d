package intelligence

import (
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
	"github.com/alexanderramin/waypoint/internal/template"
)

// ClassificationContext is the lowercased text the classifier scans:
// goal, focus area, tools, and experience, blanks skipped.
func ClassificationContext(p domain.LearningProfile) string {
	return taxonomy.BuildContext(p.PrimaryGoal, p.SpecificArea, p.Tools, p.ExperienceDescription)
}

// FallbackCurriculum is a canned curriculum chosen for a profile.
type FallbackCurriculum struct {
	Text   string
	Domain taxonomy.Tag
}

// FallbackSelector picks a template by classifying the profile against the
// learning taxonomy. Safe for concurrent use.
type FallbackSelector struct {
	taxonomy *taxonomy.Taxonomy
	library  *template.Library
}

// NewFallbackSelector uses the learning taxonomy over library. A nil library
// means the embedded defaults.
func NewFallbackSelector(library *template.Library) *FallbackSelector {
	if library == nil {
		library = template.Default()
	}
	return &FallbackSelector{taxonomy: taxonomy.Learning, library: library}
}

// Classify returns the learning domain of p.
func (s *FallbackSelector) Classify(p domain.LearningProfile) taxonomy.Tag {
	return taxonomy.Classify(ClassificationContext(p), s.taxonomy)
}

// Select returns the template for p's domain verbatim.
func (s *FallbackSelector) Select(p domain.LearningProfile) FallbackCurriculum {
	tag := s.Classify(p)
	return FallbackCurriculum{Text: s.library.Lookup(tag), Domain: tag}
}
