package server

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	h, _ := newTestHandler()
	srv := New(h)
	require.NoError(t, srv.Listen("127.0.0.1", 0))

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.WaitForReady(ctx))

	t.Cleanup(func() {
		require.NoError(t, srv.Shutdown(context.Background()))
		require.NoError(t, <-done)
	})
	return srv
}

func TestServerServesGenerate(t *testing.T) {
	captureLogs(t)
	srv := startTestServer(t)

	assert.True(t, srv.IsRunning())
	assert.True(t, strings.HasSuffix(srv.Endpoint(), "/api/generate"))

	resp, err := http.Post(srv.Endpoint(), "application/json", strings.NewReader(`{"prompt":"hello"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "{\"response\": \"OK\"}\n", string(body))
}

func TestServerPortInUse(t *testing.T) {
	captureLogs(t)
	first := startTestServer(t)

	h, _ := newTestHandler()
	second := New(h)
	err := second.Listen("127.0.0.1", first.Port())
	require.Error(t, err)

	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.True(t, bindErr.InUse())
	assert.Contains(t, bindErr.Error(), "failed to listen on")
}

func TestServerListenTwice(t *testing.T) {
	h, _ := newTestHandler()
	srv := New(h)
	require.NoError(t, srv.Listen("127.0.0.1", 0))
	defer srv.Shutdown(context.Background())

	assert.Error(t, srv.Listen("127.0.0.1", 0))
}

func TestServeWithoutListen(t *testing.T) {
	h, _ := newTestHandler()
	assert.Error(t, New(h).Serve())
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:11435/api/generate", EndpointURL("127.0.0.1", 11435))
	assert.Equal(t, "http://[::1]:8080/api/generate", EndpointURL("::1", 8080))
}
