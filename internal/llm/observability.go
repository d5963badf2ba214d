package llm

import (
	"io"
	"log/slog"
)

// LLMCallEvent records metadata about a single generation call.
type LLMCallEvent struct {
	Provider  Provider
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about generation calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	attrs := []any{
		"provider", string(event.Provider),
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		attrs = append(attrs, "status", "err", "error_code", event.ErrorCode)
		o.logger.Warn("llm_call", attrs...)
		return
	}
	attrs = append(attrs, "status", "ok")
	o.logger.Info("llm_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return NoopObserver{}
	}
	return o
}
