package subscribe_test

import (
	"bytes"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/storefront/internal/subscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid email",
			method:     http.MethodPost,
			body:       `{"email":"` + gofakeit.Email() + `"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Email added"}`,
		},
		{
			name:       "missing email",
			method:     http.MethodPost,
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Email required"}`,
		},
		{
			name:       "blank email",
			method:     http.MethodPost,
			body:       `{"email":"   "}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Email required"}`,
		},
		{
			name:       "empty body",
			method:     http.MethodPost,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Email required"}`,
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Email required"}`,
		},
		{
			name:       "get",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method not allowed"}`,
		},
		{
			name:       "delete",
			method:     http.MethodDelete,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"error":"Method not allowed"}`,
		},
	}

	server := httptest.NewServer(subscribe.NewRouter(subscribe.NewHandler(nil), nil))
	t.Cleanup(server.Close)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), tt.method, server.URL+subscribe.Path, strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var body strings.Builder
			_, err = io.Copy(&body, resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantBody, body.String())
		})
	}
}

func TestSubscribeCORS(t *testing.T) {
	server := httptest.NewServer(subscribe.NewRouter(subscribe.NewHandler(nil), []string{"https://shop.example.com"}))
	t.Cleanup(server.Close)

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{
			name:       "allowed origin",
			origin:     "https://shop.example.com",
			wantOrigin: "https://shop.example.com",
		},
		{
			name:   "other origin",
			origin: "https://evil.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(t.Context(), http.MethodOptions, server.URL+subscribe.Path, nil)
			require.NoError(t, err)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)

			resp, err := server.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSubscribeLogsOnlyEmailDomain(t *testing.T) {
	logs := &lockedBuffer{}
	log := slog.New(slog.NewJSONHandler(logs, nil))

	server := httptest.NewServer(subscribe.NewRouter(subscribe.NewHandler(log), nil))
	t.Cleanup(server.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, server.URL+subscribe.Path, strings.NewReader(`{"email":"Jane.Doe@Example.com"}`))
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, logs.String(), `"email_domain":"example.com"`)
	assert.NotContains(t, logs.String(), "Jane.Doe")
}

// lockedBuffer is written by the server goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
