package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/intelligence"
	"github.com/alexanderramin/waypoint/internal/llm"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
	"github.com/alexanderramin/waypoint/internal/template"
	tu "github.com/alexanderramin/waypoint/internal/testutil"
)

type roadmapFixture struct {
	db      *sql.DB
	owner   *domain.Account
	svc     RoadmapService
	gen     *tu.StubGenerator
	logs    *bytes.Buffer
	library *template.Library
}

func newRoadmapFixture(t *testing.T, gen *tu.StubGenerator) *roadmapFixture {
	t.Helper()
	database := tu.NewTestDB(t)
	owner := tu.NewTestAccount("Ada")
	require.NoError(t, repository.NewSQLiteAccountRepo(database).Create(context.Background(), owner))

	lib := template.Default()
	logs := &bytes.Buffer{}
	svc := NewRoadmapService(
		repository.NewSQLiteAccountRepo(database),
		repository.NewSQLiteCurriculumRepo(database),
		intelligence.NewCurriculumService(gen, lib),
		tu.NewTestUoW(database),
		NewLogUseCaseObserver(logs),
	)
	return &roadmapFixture{db: database, owner: owner, svc: svc, gen: gen, logs: logs, library: lib}
}

func TestGenerateCurriculum_GeneratedAndPersisted(t *testing.T) {
	text := tu.CurriculumText(600)
	f := newRoadmapFixture(t, tu.NewStubGenerator(text))
	ctx := context.Background()

	profile := tu.NewTestProfile(f.owner.ID, "get a job",
		tu.WithSpecificArea("react frontend development"),
		tu.WithSelfAssessment("html", "css"),
		tu.WithLanguages(domain.LanguagePreference{Name: "JavaScript", Priority: 1}),
	)
	c, err := f.svc.GenerateCurriculum(ctx, profile)

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, text, c.Text)
	assert.Equal(t, domain.ProvenanceGenerated, c.Provenance)
	assert.Equal(t, string(taxonomy.Web), c.Domain)
	assert.Equal(t, "stub-model", c.Model)
	assert.Equal(t, profile, c.Profile)
	assert.False(t, c.CreatedAt.IsZero())

	stored, err := f.svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Text, stored.Text)
	assert.Equal(t, profile, stored.Profile)
}

func TestGenerateCurriculum_FallbackOnServiceFailure(t *testing.T) {
	f := newRoadmapFixture(t, tu.NewFailingGenerator(llm.FailureServiceError))

	c, err := f.svc.GenerateCurriculum(context.Background(),
		tu.NewTestProfile(f.owner.ID, "get a job", tu.WithSpecificArea("unity game engine")))

	require.NoError(t, err, "generation failures must not surface")
	assert.Equal(t, domain.ProvenanceFallback, c.Provenance)
	assert.Equal(t, f.library.Lookup(taxonomy.Game), c.Text)
	assert.Equal(t, "game", c.Domain)
	assert.Empty(t, c.Model)
	assert.Contains(t, f.logs.String(), "failure=SERVICE_ERROR")
	assert.Contains(t, f.logs.String(), "provenance=fallback")
}

func TestGenerateCurriculum_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		profile func(owner string) domain.LearningProfile
		wantErr error
	}{
		{"missing owner", func(string) domain.LearningProfile {
			return tu.NewTestProfile("", "get a job")
		}, domain.ErrOwnerRequired},
		{"missing goal", func(owner string) domain.LearningProfile {
			return tu.NewTestProfile(owner, "")
		}, domain.ErrPrimaryGoalRequired},
		{"blank goal", func(owner string) domain.LearningProfile {
			return tu.NewTestProfile(owner, "   \t")
		}, domain.ErrPrimaryGoalRequired},
		{"unknown owner", func(string) domain.LearningProfile {
			return tu.NewTestProfile("ghost", "get a job")
		}, ErrOwnerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := tu.NewStubGenerator(tu.CurriculumText(600))
			f := newRoadmapFixture(t, gen)

			c, err := f.svc.GenerateCurriculum(context.Background(), tt.profile(f.owner.ID))

			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, gen.Calls(), "pipeline must not start on precondition failure")

			list, err := f.svc.ListByOwner(context.Background(), f.owner.ID)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestGenerateCurriculum_StorageFailureRollsBack(t *testing.T) {
	database := tu.NewTestDB(t)
	ctx := context.Background()
	owner := tu.NewTestAccount("Ada")
	require.NoError(t, repository.NewSQLiteAccountRepo(database).Create(ctx, owner))

	injected := errors.New("disk full")
	svc := NewRoadmapService(
		repository.NewSQLiteAccountRepo(database),
		repository.NewSQLiteCurriculumRepo(database),
		intelligence.NewCurriculumService(tu.NewStubGenerator(tu.CurriculumText(600)), nil),
		&tu.FailingUoW{DB: database, FailOn: 2, Err: injected},
	)

	_, err := svc.GenerateCurriculum(ctx, tu.NewTestProfile(owner.ID, "learn go",
		tu.WithLanguages(domain.LanguagePreference{Name: "Go", Priority: 1})))

	assert.ErrorIs(t, err, injected)
	list, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGenerateCurriculum_ListNewestFirst(t *testing.T) {
	f := newRoadmapFixture(t, tu.NewFailingGenerator(llm.FailureTransportFailure))
	ctx := context.Background()

	first, err := f.svc.GenerateCurriculum(ctx, tu.NewTestProfile(f.owner.ID, "learn kotlin"))
	require.NoError(t, err)
	second, err := f.svc.GenerateCurriculum(ctx, tu.NewTestProfile(f.owner.ID, "learn docker"))
	require.NoError(t, err)

	list, err := f.svc.ListByOwner(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGenerateCurriculum_CountsByProvenance(t *testing.T) {
	f := newRoadmapFixture(t, tu.NewFailingGenerator(llm.FailureEmptyResponse))
	counter := curriculaGenerated.WithLabelValues("fallback", "cybersecurity")
	before := testutil.ToFloat64(counter)

	_, err := f.svc.GenerateCurriculum(context.Background(), tu.NewTestProfile(f.owner.ID, "become a pentester"))
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(counter)-before, 1e-9)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newRoadmapFixture(t, tu.NewStubGenerator(""))

	_, err := f.svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

var _ db.UnitOfWork = (*tu.FailingUoW)(nil)
