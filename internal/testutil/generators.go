package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/waypoint/internal/llm"
)

// StubGenerator is a scripted llm.Generator that records its prompts.
type StubGenerator struct {
	Text  string
	Model string
	Err   error
	Panic any

	mu      sync.Mutex
	prompts []string
}

// NewStubGenerator returns a generator that always answers with text.
func NewStubGenerator(text string) *StubGenerator {
	return &StubGenerator{Text: text, Model: "stub-model"}
}

// NewFailingGenerator returns a generator that always fails with kind.
func NewFailingGenerator(kind llm.FailureKind) *StubGenerator {
	return &StubGenerator{Err: &llm.GenerationError{Kind: kind, StatusCode: 503, Body: "stubbed failure"}}
}

func (g *StubGenerator) Generate(ctx context.Context, prompt string) (*llm.GenerateResponse, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if g.Panic != nil {
		panic(g.Panic)
	}
	if g.Err != nil {
		return nil, g.Err
	}
	return &llm.GenerateResponse{Text: g.Text, Model: g.Model}, nil
}

// Calls returns how many times Generate ran.
func (g *StubGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

// LastPrompt returns the most recent prompt, or "".
func (g *StubGenerator) LastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

// BlockingGenerator waits for ctx to end and reports a transport failure.
type BlockingGenerator struct {
	Started chan struct{}
	once    sync.Once
}

func NewBlockingGenerator() *BlockingGenerator {
	return &BlockingGenerator{Started: make(chan struct{})}
}

func (g *BlockingGenerator) Generate(ctx context.Context, _ string) (*llm.GenerateResponse, error) {
	g.once.Do(func() { close(g.Started) })
	<-ctx.Done()
	return nil, &llm.GenerationError{Kind: llm.FailureTransportFailure, Err: ctx.Err()}
}

// CurriculumText returns n characters of week-structured text that passes
// content validation once n reaches the minimum length.
func CurriculumText(n int) string {
	const unit = "Week 1: build a small project and review core concepts. "
	s := strings.Repeat(unit, n/len(unit)+1)
	return s[:n]
}
