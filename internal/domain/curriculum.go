package domain

import "time"

// Provenance records where the text of a curriculum came from.
type Provenance string

const (
	ProvenanceGenerated Provenance = "generated"
	ProvenanceFallback  Provenance = "fallback"
)

// Curriculum is a generated multi-week study plan together with the profile
// it was generated from.
type Curriculum struct {
	ID         string
	Profile    LearningProfile
	Text       string
	Provenance Provenance
	Domain     string
	Model      string // empty for fallback text
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsFallback reports whether the text is a canned template.
func (c *Curriculum) IsFallback() bool {
	return c.Provenance == ProvenanceFallback
}

// DisplayID returns the first 8 characters of the ID.
func (c *Curriculum) DisplayID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
