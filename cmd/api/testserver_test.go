package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

// writeTestGameData lays out a minimal data tree with one suspect and one clue.
func writeTestGameData(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()
	files := map[string]string{
		"prompts/interrogation_prompt.txt": "You are {name}, answering in a {tone} tone. " +
			"Backstory: {backstory} Alibi: {location} during {time_range}. " +
			"Relationship to victim: {relationship_to_victim}. Question: {question}",
		"suspects/mortimer.json": `{
			"backstory": "A disgraced surgeon.",
			"timeline": {"time_range": "21:00-23:00", "claimed_location": "the greenhouse"},
			"relationship_to_victim": "cousin",
			"tone": "icy"
		}`,
		"clues/day1/mortimer.json": `{"clue": "A bloodied letter opener."}`,
	}
	for name, contents := range files {
		path := filepath.Join(dataDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	return dataDir
}

// newTestLookupEnv fabricates the environment for a test server pointing at
// the given fake OpenAI endpoint.
func newTestLookupEnv(t *testing.T, openaiURL string) func(string) (string, bool) {
	t.Helper()
	env := map[string]string{
		"OPENAI_API_KEY":         "test-key",
		"OPENAI_BASE_URL":        openaiURL + "/v1",
		"INTERROGATION_ADDR":     "localhost:0",
		"INTERROGATION_DATA_DIR": writeTestGameData(t),
		// Each test boots its own server; a shared pprof port would make
		// them race for the bind and pprofserver exits on failure.
		"INTERROGATION_PPROF_PORT": "",
	}
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// newFakeOpenAI serves canned chat-completion responses in place of the real provider.
func newFakeOpenAI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func completionOK(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": %q}, "finish_reason": "stop"}]
		}`, content)
	}
}

func completionFailure(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": {"message": %q, "type": "test_error"}}`, message)
	}
}

type testServer struct {
	url    string
	client http.Client
}

// startTestServer starts the real server with a fabricated environment, waits
// for it to be ready, and returns a client wrapper for making requests.
func startTestServer(t *testing.T, w io.Writer, lookupEnv func(string) (string, bool)) testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "Addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return testServer{} //nolint:exhaustruct // This is unreachable.
	case addr := <-addrCh:
		serverURL := fmt.Sprintf("http://%s", addr)
		if err := waitForReady(ctx, fmt.Sprintf("%s/health", serverURL)); err != nil {
			require.NoError(t, err)
		}
		return testServer{
			url:    serverURL,
			client: http.Client{},
		}
	}
}

// Get fetches a URL and returns the response.
func (s *testServer) Get(t *testing.T, urlPath string) *http.Response {
	t.Helper()
	resp, err := s.client.Get(s.url + urlPath)
	require.NoError(t, err)
	return resp
}

// PostJSON posts a JSON body and returns the response.
func (s *testServer) PostJSON(t *testing.T, urlPath string, body string) *http.Response {
	t.Helper()
	resp, err := s.client.Post(s.url+urlPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

// readBody drains and closes the response body.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return string(bodyBytes)
}
