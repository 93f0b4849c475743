package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sadat/internal/config"
	"sadat/internal/persist"
	"sadat/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a fiber app against a fresh in-memory store.
func newTestServer(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()

	st, err := store.New(context.Background(), persist.NewMemory())
	require.NoError(t, err)

	cfg := &config.Config{Port: "0", Env: "test"}
	s := NewServer(cfg, st)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, st
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func TestHealthEndpoints(t *testing.T) {
	app, _ := newTestServer(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestResetState(t *testing.T) {
	app, st := newTestServer(t)
	ctx := context.Background()

	_, err := st.CreateUser(ctx, store.CreateUserInput{Name: "Extra", Username: "extra"})
	require.NoError(t, err)
	require.Equal(t, 2, st.Stats(ctx).Users)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/reset", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, st.Stats(ctx).Users, "back to the default user")
}
