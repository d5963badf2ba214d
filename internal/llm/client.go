package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// GenerateResponse holds the result of a successful generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Generator sends a prompt to a generative-text service. Every error it
// returns is a *GenerationError.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*GenerateResponse, error)
}

// chatClient implements Generator against an OpenAI-compatible
// chat completions endpoint.
type chatClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewChatClient creates a Generator that POSTs to {Endpoint}/chat/completions.
func NewChatClient(cfg LLMConfig, observer Observer) Generator {
	return &chatClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost: 16,
			},
		},
		observer: observerOrNoop(observer),
	}
}

// chatRequest is the JSON body sent to POST /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the completion envelope we read. Pointer
// fields distinguish "absent" from "empty".
type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message *chatReply `json:"message"`
}

type chatReply struct {
	Content *string `json:"content"`
}

// content walks choices[0].message.content; the first missing level aborts.
func (r *chatResponse) content() (string, error) {
	if len(r.Choices) == 0 {
		return "", emptyResponse("envelope has no choices")
	}
	msg := r.Choices[0].Message
	if msg == nil {
		return "", emptyResponse("first choice has no message")
	}
	if msg.Content == nil {
		return "", emptyResponse("message has no content")
	}
	if strings.TrimSpace(*msg.Content) == "" {
		return "", emptyResponse("content is blank")
	}
	return *msg.Content, nil
}

func (c *chatClient) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	resp, err := c.complete(ctx, prompt)
	latency := time.Since(start).Milliseconds()

	c.observer.OnCallComplete(LLMCallEvent{
		Provider:  ProviderHTTP,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: string(FailureKindOf(err)),
	})
	if err != nil {
		return nil, err
	}
	resp.LatencyMs = latency
	return resp, nil
}

func (c *chatClient) complete(ctx context.Context, prompt string) (*GenerateResponse, error) {
	data, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, transportFailure(fmt.Errorf("marshaling request: %w", err))
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, transportFailure(fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, transportFailure(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportFailure(fmt.Errorf("reading response: %w", err))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, serviceError(httpResp.StatusCode, string(body))
	}

	var env chatResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, transportFailure(fmt.Errorf("decoding response: %w", err))
	}
	text, err := env.content()
	if err != nil {
		return nil, err
	}

	model := env.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: model}, nil
}

// disabledGenerator fails every call without touching the network.
type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string) (*GenerateResponse, error) {
	return nil, transportFailure(ErrGenerationDisabled)
}

// NewGenerator builds the configured backend and wraps it with rate
// limiting and the circuit breaker.
func NewGenerator(cfg LLMConfig, observer Observer) (Generator, error) {
	var g Generator
	switch cfg.Provider {
	case ProviderOff:
		return disabledGenerator{}, nil
	case ProviderSDK:
		g = NewSDKClient(cfg, observer)
	case ProviderHTTP, "":
		g = NewChatClient(cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	if cfg.RatePerSecond > 0 {
		g = NewRateLimitedGenerator(g, cfg.RatePerSecond, cfg.RateBurst)
	}
	if cfg.Breaker.Enabled {
		g = NewBreakerGenerator(g, cfg.Breaker)
	}
	return g, nil
}
