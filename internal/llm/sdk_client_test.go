package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSDKClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama-3.3-70b-versatile", body["model"])

		writeCompletion(w, "Week 1: fundamentals")
	}))
	defer srv.Close()

	var captured LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { captured = e }}

	resp, err := NewSDKClient(testConfig(srv.URL), obs).Generate(context.Background(), "plan")

	require.NoError(t, err)
	assert.Equal(t, "Week 1: fundamentals", resp.Text)
	assert.Equal(t, ProviderSDK, captured.Provider)
	assert.True(t, captured.Success)
}

func TestSDKClient_Generate_ServiceError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	_, err := NewSDKClient(testConfig(srv.URL), nil).Generate(context.Background(), "plan")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceError)
	assert.Equal(t, http.StatusTooManyRequests, AsGenerationError(err).StatusCode)
	assert.Equal(t, 1, attempts)
}

func TestSDKClient_Generate_BlankContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "   ")
	}))
	defer srv.Close()

	_, err := NewSDKClient(testConfig(srv.URL), nil).Generate(context.Background(), "plan")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSDKClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewSDKClient(testConfig(srv.URL), nil).Generate(context.Background(), "plan")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSDKClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.TimeoutMs = 1000

	_, err := NewSDKClient(cfg, nil).Generate(context.Background(), "plan")

	assert.ErrorIs(t, err, ErrTransportFailure)
}
