package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_CleanURL(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := inspect([]string{"https://app.example.com/auth/callback?code=abc"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), `"flow": "pkce"`)
	assert.Empty(t, stderr.String())
}

func TestInspect_ViolationExitsOne(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := inspect([]string{"--format", "yaml", "https://app.example.com/cb?access_token=x"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "violations:")
}

func TestInspect_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, inspect(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage:")

	stderr.Reset()
	assert.Equal(t, 2, inspect([]string{"--format", "xml", "https://a/cb"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown format")

	stderr.Reset()
	assert.Equal(t, 2, inspect([]string{"http://[::1"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "parsing landed url")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newHTTPServer("127.0.0.1:0", http.NotFoundHandler())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, logger) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	srv := newHTTPServer("256.0.0.1:bad", http.NotFoundHandler())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := serve(context.Background(), srv, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}
