package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"
)

// UseCaseEvent captures telemetry for one service call.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes service_use_case lines to w. A nil writer
// yields a no-op observer.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	// Sorted so log lines are stable.
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_use_case", attrs...)
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range m {
		o.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop combines the non-nil observers.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var kept multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			kept = append(kept, obs)
		}
	}
	switch len(kept) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return kept[0]
	default:
		return kept
	}
}
