package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickearl/authgate/core/server"
)

func freeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServer(t *testing.T) {
	t.Parallel()

	t.Run("serves requests and stops on context cancel", func(t *testing.T) {
		t.Parallel()

		addr := freeAddr(t)
		srv := server.New(addr)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("hello"))
			}))
		}()

		waitForServer(t, addr)

		resp, err := http.Get(fmt.Sprintf("http://%s/", addr))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, "hello", string(body))

		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err, "canceled context is a clean exit")
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("double start is rejected", func(t *testing.T) {
		t.Parallel()

		addr := freeAddr(t)
		srv := server.New(addr)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			_ = srv.Start(ctx, http.NewServeMux())
		}()
		waitForServer(t, addr)

		err := srv.Start(ctx, http.NewServeMux())
		assert.ErrorIs(t, err, server.ErrServerAlreadyRunning)
	})

	t.Run("missing address is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := server.NewFromConfig(server.Config{})
		assert.ErrorIs(t, err, server.ErrMissingAddress)
	})

	t.Run("stop without start is a no-op", func(t *testing.T) {
		t.Parallel()

		srv := server.New(":0")
		assert.NoError(t, srv.Stop())
	})
}
