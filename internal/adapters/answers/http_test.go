package answers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/airsenselabs/assistant/internal/adapters/answers"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAskAnswer(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"response":"AQI is 42, moderate"}`)

	c := answers.NewHTTPClient(srv.URL, time.Second)
	reply, err := c.Ask(context.Background(), "What is AQI today?")
	require.NoError(t, err)
	require.Equal(t, "AQI is 42, moderate", reply.Response)
	require.Empty(t, reply.Status)
	require.Empty(t, reply.Error)
}

func TestAskStatus(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"status":"warming up, try again shortly"}`)

	c := answers.NewHTTPClient(srv.URL, time.Second)
	reply, err := c.Ask(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "warming up, try again shortly", reply.Status)
}

func TestAskServiceError(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"error":"rate limited"}`)

	c := answers.NewHTTPClient(srv.URL, time.Second)
	reply, err := c.Ask(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, "rate limited", reply.Error)
}

func TestAskRejectsUnknownShape(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"unexpected":"shape"}`)

	c := answers.NewHTTPClient(srv.URL, time.Second)
	_, err := c.Ask(context.Background(), "hello")
	require.Error(t, err)
}

func TestAskNon200IsTransportFailure(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, `upstream broke`)

	c := answers.NewHTTPClient(srv.URL, time.Second)
	_, err := c.Ask(context.Background(), "hello")
	require.Error(t, err)
}

func TestAskBoundedWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := answers.NewHTTPClient(srv.URL, 50*time.Millisecond)
	_, err := c.Ask(context.Background(), "hello")
	require.Error(t, err)
}
