package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.APIKey = "test-key"
	cfg.Breaker.Enabled = false
	return cfg
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "llama-3.3-70b-versatile",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
}

func TestChatClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.3-70b-versatile", req.Model)
		assert.InDelta(t, 0.9, req.Temperature, 1e-9)
		assert.Equal(t, 2048, req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "plan my month", req.Messages[0].Content)

		writeCompletion(w, "Week 1: basics")
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), "plan my month")

	require.NoError(t, err)
	assert.Equal(t, "Week 1: basics", resp.Text)
	assert.Equal(t, "llama-3.3-70b-versatile", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestChatClient_Generate_EscapesPromptRoundTrip(t *testing.T) {
	prompt := "path C:\\dev \"quoted\"\nline two\r\n\tindented"

	var raw []byte
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		var err error
		raw, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &req))
		received = req.Messages[0].Content
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.Generate(context.Background(), prompt)
	require.NoError(t, err)

	assert.Equal(t, prompt, received)
	body := string(raw)
	assert.Contains(t, body, `C:\\dev`)
	assert.Contains(t, body, `\"quoted\"`)
	assert.Contains(t, body, `\n`)
	assert.Contains(t, body, `\r`)
	assert.Contains(t, body, `\t`)
	assert.NotContains(t, body, "\n\t")
}

func TestChatClient_Generate_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""
	_, err := NewChatClient(cfg, nil).Generate(context.Background(), "x")
	require.NoError(t, err)
}

func TestChatClient_Generate_ServiceErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), NoopObserver{}).Generate(context.Background(), "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceError)
	ge := AsGenerationError(err)
	assert.Equal(t, FailureServiceError, ge.Kind)
	assert.Equal(t, http.StatusUnauthorized, ge.StatusCode)
	assert.Contains(t, ge.Body, "invalid api key")
}

func TestChatClient_Generate_EmptyEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices key", `{"id":"x"}`},
		{"empty choices", `{"choices":[]}`},
		{"choice without message", `{"choices":[{"index":0}]}`},
		{"message without content", `{"choices":[{"message":{"role":"assistant"}}]}`},
		{"null content", `{"choices":[{"message":{"content":null}}]}`},
		{"blank content", `{"choices":[{"message":{"content":"  \n\t "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := NewChatClient(testConfig(srv.URL), NoopObserver{}).Generate(context.Background(), "x")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
			assert.Equal(t, FailureEmptyResponse, FailureKindOf(err))
		})
	}
}

func TestChatClient_Generate_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [ not json`))
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), NoopObserver{}).Generate(context.Background(), "x")

	assert.ErrorIs(t, err, ErrTransportFailure)
}

func TestChatClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	_, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), "x")

	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChatClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.TimeoutMs = 1000

	_, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), "x")

	assert.ErrorIs(t, err, ErrTransportFailure)
}

func TestChatClient_Generate_CallerCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := NewChatClient(testConfig(srv.URL), NoopObserver{}).Generate(ctx, "x")

	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChatClient_NoRetryOnFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), NoopObserver{}).Generate(context.Background(), "x")

	assert.ErrorIs(t, err, ErrServiceError)
	assert.Equal(t, 1, attempts)
}

func TestChatClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	_, err := NewChatClient(testConfig(srv.URL), obs).Generate(context.Background(), "x")

	require.NoError(t, err)
	assert.Equal(t, ProviderHTTP, captured.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", captured.Model)
	assert.True(t, captured.Success)
	assert.Empty(t, captured.ErrorCode)
}

func TestChatClient_ObserverErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	_, err := NewChatClient(testConfig(srv.URL), obs).Generate(context.Background(), "x")

	require.Error(t, err)
	assert.False(t, captured.Success)
	assert.Equal(t, string(FailureServiceError), captured.ErrorCode)
}

func TestNewGenerator_Providers(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")

	cfg.Provider = ProviderOff
	g, err := NewGenerator(cfg, nil)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, ErrGenerationDisabled)

	cfg.Provider = ProviderHTTP
	g, err = NewGenerator(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &chatClient{}, g)

	cfg.Provider = ProviderSDK
	g, err = NewGenerator(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &sdkClient{}, g)

	cfg.RatePerSecond = 5
	cfg.Breaker.Enabled = true
	g, err = NewGenerator(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &BreakerGenerator{}, g)

	cfg.Provider = "carrier-pigeon"
	_, err = NewGenerator(cfg, nil)
	assert.Error(t, err)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
