package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	testApp, logs := newTestApp(t, Config{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	// --- Act ---
	testApp.healthHandler(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK\n", rec.Body.String())
	require.Contains(t, logs.String(), "Health check endpoint hit.")
}

func TestRun_WatchServesHealthcheck(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := setupProject(t, map[string]string{"shaders/a.vert": ""})
	installCompiler(t, filepath.Join(root, "bin", "glslc"))
	port := freePort(t)
	testApp, logs := newTestApp(t, Config{RootPath: root, Watch: true, HealthcheckPort: port})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- testApp.Run(ctx) }()

	client := &http.Client{
		Timeout:   time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)

	// --- Act & Assert: the endpoint answers while watching ---
	var body string
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}
		body = string(data)
		return true
	}, 5*time.Second, 20*time.Millisecond)
	require.Equal(t, "OK\n", body)

	// --- Act & Assert: cancelling stops the watcher and the server ---
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	_, err := client.Get(url)
	require.Error(t, err, "health check server should be shut down")
	require.Contains(t, logs.String(), "Shutting down health check server")
}
