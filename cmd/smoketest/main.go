// Smoke test for a deployed interrogation backend. It checks the health
// endpoint and a clue lookup, the two paths that exercise configuration and
// the data directory without spending model tokens.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/logging"
)

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.New("unexpected status",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	}
	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func testBackend(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second} //nolint:mnd // generous for a health check.

	var health struct {
		Status           string `json:"status"`
		OpenAIConfigured bool   `json:"openai_configured"`
	}
	if err := getJSON(ctx, client, baseURL+"/health", &health); err != nil {
		return errors.Wrap(err, "fetch health")
	}
	if health.Status != "healthy" {
		return errors.New("backend is not healthy", slog.String("status", health.Status))
	}
	if !health.OpenAIConfigured {
		return errors.New("OpenAI API key is not configured")
	}

	var clue struct {
		Clue string `json:"clue"`
	}
	if err := getJSON(ctx, client, baseURL+"/api/clue?day=1&suspect=mortimer", &clue); err != nil {
		return errors.Wrap(err, "fetch clue")
	}
	if clue.Clue == "" {
		return errors.New("clue endpoint returned an empty clue")
	}

	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only the base URL to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <base-url>")
		os.Exit(1)
	}

	baseURL := os.Args[1]
	ctx = logging.WithAttrs(ctx, slog.String("base_url", baseURL))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()

	if err := testBackend(ctx, baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
