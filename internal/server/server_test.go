package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrodas/parkings-api/internal/logger"
)

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestHTTPServerServesAndShutsDown(t *testing.T) {
	addr := freeAddress(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	srv := NewHTTPServer(addr, handler, 5*time.Second, logger.Nop())

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	// Wait for the listener to come up.
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after shutdown")
	}
}

type stubServer struct {
	runErr   error
	stopped  chan struct{}
	shutdown bool
}

func (s *stubServer) Run() error {
	if s.runErr != nil {
		return s.runErr
	}
	<-s.stopped

	return nil
}

func (s *stubServer) Shutdown(context.Context) error {
	s.shutdown = true
	close(s.stopped)

	return nil
}

func TestRunServerPropagatesRunError(t *testing.T) {
	srv := &stubServer{runErr: errors.New("listen failed"), stopped: make(chan struct{})}

	err := RunServer(context.Background(), srv, logger.Nop())
	assert.EqualError(t, err, "listen failed")
	assert.False(t, srv.shutdown)
}

func TestRunServerShutsDownOnContextCancel(t *testing.T) {
	srv := &stubServer{stopped: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunServer(ctx, srv, logger.Nop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.True(t, srv.shutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("RunServer did not return after cancel")
	}
}
