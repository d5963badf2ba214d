package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// sdkClient implements Generator with the official OpenAI Go SDK. Any
// OpenAI-compatible base URL works.
type sdkClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

// NewSDKClient creates a Generator backed by openai-go. SDK retries are
// disabled: the orchestrator makes exactly one attempt.
func NewSDKClient(cfg LLMConfig, observer Observer) Generator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout()),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(cfg.Endpoint, "/")+"/"))
	}

	return &sdkClient{
		cfg:      cfg,
		client:   openai.NewClient(opts...),
		observer: observerOrNoop(observer),
	}
}

func (c *sdkClient) Generate(ctx context.Context, prompt string) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	resp, err := c.complete(ctx, prompt)
	latency := time.Since(start).Milliseconds()

	c.observer.OnCallComplete(LLMCallEvent{
		Provider:  ProviderSDK,
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

func (c *sdkClient) complete(ctx context.Context, prompt string) (*GenerateResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.cfg.Temperature),
	}
	if c.cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(c.cfg.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, serviceError(apiErr.StatusCode, apiErr.Error())
		}
		return nil, transportFailure(err)
	}

	if len(completion.Choices) == 0 {
		return nil, emptyResponse("envelope has no choices")
	}
	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return nil, emptyResponse("content is blank")
	}

	model := completion.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: model}, nil
}
