package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gaslamp-games/interrogation/internal/ai"
	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const serverVersion = "1.2.0"

type retryConfig struct {
	MaxRetries       int   `json:"max_retries"`
	InitialBackoffMS int64 `json:"initial_backoff_ms"`
	MaxBackoffMS     int64 `json:"max_backoff_ms"`
	RequestTimeoutMS int64 `json:"request_timeout_ms"`
}

type healthResponse struct {
	Status           string      `json:"status"`
	Timestamp        string      `json:"timestamp"`
	OpenAIConfigured bool        `json:"openai_configured"`
	ServerVersion    string      `json:"server_version"`
	RetryConfig      retryConfig `json:"retry_config"`
	OpenAITest       string      `json:"openai_test,omitempty"`
	OpenAIResponse   string      `json:"openai_response,omitempty"`
	OpenAIError      string      `json:"openai_error,omitempty"`
}

// health reports server status and configuration. With ?test_openai=true it
// additionally exercises the provider with a deterministic diagnostic call.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	configured := app.config.APIKey != "" && app.config.APIKey != placeholderAPIKey
	resp := healthResponse{
		Status:           "healthy",
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		OpenAIConfigured: configured,
		ServerVersion:    serverVersion,
		RetryConfig: retryConfig{
			MaxRetries:       ai.MaxRetries,
			InitialBackoffMS: ai.InitialBackoff.Milliseconds(),
			MaxBackoffMS:     ai.MaxBackoff.Milliseconds(),
			RequestTimeoutMS: ai.RequestTimeout.Milliseconds(),
		},
	}

	if r.URL.Query().Get("test_openai") == "true" && configured {
		ctx := r.Context()
		app.logger.LogAttrs(ctx, slog.LevelInfo, "testing OpenAI connection")
		reply, err := app.aiClient.CompleteWithRetry(ctx, []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: `Say "OK" if you can hear me.`},
		}, 0)
		if err != nil {
			app.logger.LogAttrs(ctx, slog.LevelError, "OpenAI connection test failed", errors.SlogError(err))
			resp.OpenAITest = "failed"
			resp.OpenAIError = err.Error()
		} else {
			resp.OpenAITest = "success"
			resp.OpenAIResponse = reply
		}
	}

	// The endpoint reports 200 even when the diagnostic call fails: the
	// server itself is up, the payload carries the provider status.
	app.writeJSON(w, r, http.StatusOK, resp)
}
