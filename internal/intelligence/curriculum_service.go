package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/llm"
	"github.com/alexanderramin/waypoint/internal/taxonomy"
	"github.com/alexanderramin/waypoint/internal/template"
)

// GenerationState is a step of one curriculum generation run.
type GenerationState string

const (
	StateStart          GenerationState = "START"
	StateCallingService GenerationState = "CALLING_SERVICE"
	StateValidating     GenerationState = "VALIDATING"
	StateClassifying    GenerationState = "CLASSIFYING"
	StateDoneGenerated  GenerationState = "DONE_GENERATED"
	StateDoneFallback   GenerationState = "DONE_FALLBACK"
)

// CurriculumResult is the outcome of a generation run. Text is never blank.
type CurriculumResult struct {
	Text       string
	Provenance domain.Provenance
	Domain     taxonomy.Tag
	Model      string

	// Set on the fallback path: Failure when the service call failed,
	// Rejection when its output failed validation.
	Failure   *llm.GenerationError
	Rejection Rejection

	Trace []GenerationState
}

func (r *CurriculumResult) enter(s GenerationState) {
	r.Trace = append(r.Trace, s)
}

// CurriculumService runs the generate, validate, fall back pipeline.
type CurriculumService interface {
	// Generate never fails: service and quality failures resolve to a
	// fallback template.
	Generate(ctx context.Context, profile domain.LearningProfile) *CurriculumResult
}

type curriculumService struct {
	generator llm.Generator
	fallback  *FallbackSelector
}

// NewCurriculumService creates a CurriculumService. A nil generator always
// falls back; a nil library uses the embedded templates.
func NewCurriculumService(generator llm.Generator, library *template.Library) CurriculumService {
	return &curriculumService{
		generator: generator,
		fallback:  NewFallbackSelector(library),
	}
}

func (s *curriculumService) Generate(ctx context.Context, profile domain.LearningProfile) *CurriculumResult {
	res := &CurriculumResult{}
	res.enter(StateStart)

	prompt := ComposeCurriculumPrompt(profile)

	res.enter(StateCallingService)
	candidate, model, failure := s.call(ctx, prompt)

	res.enter(StateValidating)
	res.Domain = s.fallback.Classify(profile)
	if failure == nil {
		res.Rejection = CheckCurriculumContent(candidate)
		if res.Rejection == "" {
			res.Text = candidate
			res.Model = model
			res.Provenance = domain.ProvenanceGenerated
			res.enter(StateDoneGenerated)
			return res
		}
	}
	res.Failure = failure

	res.enter(StateClassifying)
	fb := s.fallback.Select(profile)
	res.Text = fb.Text
	res.Domain = fb.Domain
	res.Provenance = domain.ProvenanceFallback
	res.enter(StateDoneFallback)
	return res
}

// call makes the single generation attempt. Panics and untyped errors
// become transport failures.
func (s *curriculumService) call(ctx context.Context, prompt string) (text, model string, failure *llm.GenerationError) {
	defer func() {
		if r := recover(); r != nil {
			text, model = "", ""
			failure = &llm.GenerationError{
				Kind: llm.FailureTransportFailure,
				Err:  fmt.Errorf("generator panic: %v", r),
			}
		}
	}()

	if s.generator == nil {
		return "", "", &llm.GenerationError{Kind: llm.FailureTransportFailure, Err: llm.ErrGenerationDisabled}
	}

	resp, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", "", llm.AsGenerationError(err)
	}
	if resp == nil {
		return "", "", &llm.GenerationError{Kind: llm.FailureEmptyResponse, Err: errors.New("nil response")}
	}
	return resp.Text, resp.Model, nil
}
