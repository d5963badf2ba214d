package intelligence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/llm"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
	"github.com/alexanderramin/waypoint/internal/template"
	"github.com/alexanderramin/waypoint/internal/testutil"
)

func profile(goal, area string) domain.LearningProfile {
	return domain.LearningProfile{OwnerID: "owner-1", PrimaryGoal: goal, SpecificArea: area}
}

func TestCurriculumService_GeneratedPath(t *testing.T) {
	text := testutil.CurriculumText(600)
	gen := testutil.NewStubGenerator(text)
	svc := NewCurriculumService(gen, nil)

	res := svc.Generate(context.Background(), profile("get a job", "react frontend development"))

	assert.Equal(t, text, res.Text)
	assert.Equal(t, domain.ProvenanceGenerated, res.Provenance)
	assert.Equal(t, taxonomy.Web, res.Domain)
	assert.Equal(t, "stub-model", res.Model)
	assert.Nil(t, res.Failure)
	assert.Empty(t, res.Rejection)
	assert.Equal(t, []GenerationState{StateStart, StateCallingService, StateValidating, StateDoneGenerated}, res.Trace)
	assert.Equal(t, 1, gen.Calls())
	assert.Equal(t, ComposeCurriculumPrompt(profile("get a job", "react frontend development")), gen.LastPrompt())
}

func TestCurriculumService_FallbackOnEveryFailureKind(t *testing.T) {
	lib := template.Default()

	for _, kind := range []llm.FailureKind{llm.FailureServiceError, llm.FailureEmptyResponse, llm.FailureTransportFailure} {
		t.Run(string(kind), func(t *testing.T) {
			gen := testutil.NewFailingGenerator(kind)
			svc := NewCurriculumService(gen, lib)

			res := svc.Generate(context.Background(), profile("get a job", "react frontend development"))

			assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
			assert.Equal(t, lib.Lookup(taxonomy.Web), res.Text)
			require.NotNil(t, res.Failure)
			assert.Equal(t, kind, res.Failure.Kind)
			assert.Equal(t, []GenerationState{
				StateStart, StateCallingService, StateValidating, StateClassifying, StateDoneFallback,
			}, res.Trace)
			assert.Equal(t, 1, gen.Calls(), "exactly one attempt, no retry")
		})
	}
}

func TestCurriculumService_Scenarios(t *testing.T) {
	lib := template.Default()
	svc := NewCurriculumService(testutil.NewFailingGenerator(llm.FailureTransportFailure), lib)

	tests := []struct {
		name    string
		profile domain.LearningProfile
		want    taxonomy.Tag
	}{
		{"react", profile("get a job", "react frontend development"), taxonomy.Web},
		{"unity", profile("get a job", "unity game engine"), taxonomy.Game},
		{"nothing specific", profile("learn something", ""), taxonomy.General},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.Generate(context.Background(), tt.profile)
			assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
			assert.Equal(t, tt.want, res.Domain)
			assert.Equal(t, lib.Lookup(tt.want), res.Text)
		})
	}
}

func TestCurriculumService_RejectedContentFallsBack(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Rejection
	}{
		{"too short", "Week 1: learn things", RejectTooShort},
		{"placeholder", "[placeholder] " + testutil.CurriculumText(600), RejectPlaceholder},
		{"blank", "   ", RejectBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCurriculumService(testutil.NewStubGenerator(tt.text), nil)

			res := svc.Generate(context.Background(), profile("learn something", ""))

			assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
			assert.Equal(t, tt.want, res.Rejection)
			assert.Nil(t, res.Failure)
			assert.NotEqual(t, tt.text, res.Text)
			assert.Equal(t, StateDoneFallback, res.Trace[len(res.Trace)-1])
		})
	}
}

func TestCurriculumService_PanicIsContained(t *testing.T) {
	gen := &testutil.StubGenerator{Panic: "boom"}
	svc := NewCurriculumService(gen, nil)

	var res *CurriculumResult
	require.NotPanics(t, func() {
		res = svc.Generate(context.Background(), profile("learn something", ""))
	})

	assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
	require.NotNil(t, res.Failure)
	assert.Equal(t, llm.FailureTransportFailure, res.Failure.Kind)
	assert.NotEmpty(t, res.Text)
}

func TestCurriculumService_UntypedErrorIsTransportFailure(t *testing.T) {
	gen := &testutil.StubGenerator{Err: errors.New("raw socket error")}
	svc := NewCurriculumService(gen, nil)

	res := svc.Generate(context.Background(), profile("learn something", ""))

	require.NotNil(t, res.Failure)
	assert.Equal(t, llm.FailureTransportFailure, res.Failure.Kind)
	assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
}

func TestCurriculumService_NilGeneratorFallsBack(t *testing.T) {
	svc := NewCurriculumService(nil, nil)

	res := svc.Generate(context.Background(), profile("learn kotlin", ""))

	assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
	assert.Equal(t, taxonomy.Mobile, res.Domain)
	assert.ErrorIs(t, res.Failure, llm.ErrGenerationDisabled)
}

func TestCurriculumService_CancellationFallsBack(t *testing.T) {
	gen := testutil.NewBlockingGenerator()
	svc := NewCurriculumService(gen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-gen.Started
		cancel()
	}()

	done := make(chan *CurriculumResult, 1)
	go func() { done <- svc.Generate(ctx, profile("learn something", "")) }()

	select {
	case res := <-done:
		assert.Equal(t, domain.ProvenanceFallback, res.Provenance)
		assert.ErrorIs(t, res.Failure, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("generation did not observe cancellation")
	}
}

func TestCurriculumService_ConcurrentRunsAreIndependent(t *testing.T) {
	lib := template.Default()
	svc := NewCurriculumService(testutil.NewFailingGenerator(llm.FailureServiceError), lib)

	areas := map[string]taxonomy.Tag{
		"react":      taxonomy.Web,
		"flutter":    taxonomy.Mobile,
		"kubernetes": taxonomy.Cloud,
		"godot":      taxonomy.Game,
	}

	var wg sync.WaitGroup
	for area, want := range areas {
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(area string, want taxonomy.Tag) {
				defer wg.Done()
				res := svc.Generate(context.Background(), profile("get better", area))
				assert.Equal(t, want, res.Domain)
				assert.Equal(t, lib.Lookup(want), res.Text)
			}(area, want)
		}
	}
	wg.Wait()
}

func TestCurriculumService_DoesNotMutateProfile(t *testing.T) {
	svc := NewCurriculumService(testutil.NewFailingGenerator(llm.FailureEmptyResponse), nil)
	p := profile("learn something", "")
	before := p.Clone()

	svc.Generate(context.Background(), p)

	assert.Equal(t, before, p)
}
