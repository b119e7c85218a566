package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/logging"
	"postboard/app/repositories"
)

func TestServe(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = true

	store, err := repositories.OpenBadger(repositories.BadgerOptions{InMemory: true})
	require.NoError(t, err)
	defer store.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := fmt.Sprintf("http://%s", ln.Addr().String())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, logging.Discard(), store, ln) }()

	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(base + "/api/user")
	require.NoError(t, err)
	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	resp.Body.Close()
	assert.Empty(t, users)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunAppServerBadStorage(t *testing.T) {
	withIO(t, "")
	cfg := testConfig(t)
	cfg.Storage = "cassandra"
	assert.Equal(t, 1, RunAppServer(cfg))
}
