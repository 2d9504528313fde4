package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(handler, "0", "", "")
	require.NoError(t, srv.Serve(ln))

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, open := <-srv.Errors():
		assert.NoError(t, err)
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("errors channel was not closed after shutdown")
	}
}

func TestStartFailsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := New(http.NotFoundHandler(), "0", "", "")
	srv.srv.Addr = ln.Addr().String()
	assert.Error(t, srv.Start())
}

func TestWriteTimeout(t *testing.T) {
	srv := New(http.NotFoundHandler(), "0", "", "")
	assert.Equal(t, DefaultWriteTimeout, srv.srv.WriteTimeout)

	srv = New(http.NotFoundHandler(), "0", "", "", WithWriteTimeout(75*time.Second))
	assert.Equal(t, 75*time.Second, srv.srv.WriteTimeout)

	srv = New(http.NotFoundHandler(), "0", "", "", WithWriteTimeout(0))
	assert.Equal(t, DefaultWriteTimeout, srv.srv.WriteTimeout)
}
