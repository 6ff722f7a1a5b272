package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/portfolio/internal/config"
)

func testServer() *Server {
	logger := zerolog.Nop()
	return &Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:         "0",
				ReadTimeout:  5,
				WriteTimeout: 10,
				IdleTimeout:  60,
			},
		},
		Logger: &logger,
	}
}

func TestStartRequiresHTTPServer(t *testing.T) {
	require.EqualError(t, testServer().Start(), "HTTP server not initialized")
}

func TestSetupHTTPServer(t *testing.T) {
	s := testServer()
	s.SetupHTTPServer(http.NotFoundHandler())

	require.Equal(t, ":0", s.httpServer.Addr)
	require.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
	require.Equal(t, 10*time.Second, s.httpServer.WriteTimeout)
	require.Equal(t, time.Minute, s.httpServer.IdleTimeout)
}

func TestStartAndShutdown(t *testing.T) {
	s := testServer()
	s.SetupHTTPServer(http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Let ListenAndServe bind before shutting down.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
