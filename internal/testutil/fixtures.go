package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/waypoint/internal/domain"
)

var testAccountCounter atomic.Int64

// Account options
type AccountOption func(*domain.Account)

func WithEmail(email string) AccountOption {
	return func(a *domain.Account) {
		a.Email = email
	}
}

func WithAccountCreatedAt(t time.Time) AccountOption {
	return func(a *domain.Account) {
		a.CreatedAt = t
	}
}

func NewTestAccount(name string, opts ...AccountOption) *domain.Account {
	n := testAccountCounter.Add(1)
	a := &domain.Account{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%d@example.com", n),
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// InsertAccount writes an account row directly, bypassing repositories.
func InsertAccount(t *testing.T, database *sql.DB, a *domain.Account) {
	t.Helper()
	_, err := database.ExecContext(context.Background(),
		`INSERT INTO accounts (id, name, email, created_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("inserting account: %v", err)
	}
}

// Profile options
type ProfileOption func(*domain.LearningProfile)

func WithSpecificArea(area string) ProfileOption {
	return func(p *domain.LearningProfile) {
		p.SpecificArea = area
	}
}

func WithTools(tools string) ProfileOption {
	return func(p *domain.LearningProfile) {
		p.Tools = tools
	}
}

func WithLanguages(langs ...domain.LanguagePreference) ProfileOption {
	return func(p *domain.LearningProfile) {
		p.Languages = langs
	}
}

func WithSelfAssessment(tags ...string) ProfileOption {
	return func(p *domain.LearningProfile) {
		p.SelfAssessment = tags
	}
}

func NewTestProfile(ownerID, goal string, opts ...ProfileOption) domain.LearningProfile {
	p := domain.LearningProfile{
		OwnerID:     ownerID,
		PrimaryGoal: goal,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Curriculum options
type CurriculumOption func(*domain.Curriculum)

func WithProvenance(p domain.Provenance) CurriculumOption {
	return func(c *domain.Curriculum) {
		c.Provenance = p
	}
}

func WithCreatedAt(t time.Time) CurriculumOption {
	return func(c *domain.Curriculum) {
		c.CreatedAt = t
		c.UpdatedAt = t
	}
}

func WithProfile(p domain.LearningProfile) CurriculumOption {
	return func(c *domain.Curriculum) {
		c.Profile = p
	}
}

func NewTestCurriculum(ownerID string, opts ...CurriculumOption) *domain.Curriculum {
	now := time.Now().UTC()
	c := &domain.Curriculum{
		ID:         uuid.New().String(),
		Profile:    NewTestProfile(ownerID, "get a job", WithSpecificArea("react frontend development")),
		Text:       CurriculumText(600),
		Provenance: domain.ProvenanceGenerated,
		Domain:     "web",
		Model:      "stub-model",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
