package wahis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, attempts int) *Client {
	t.Helper()
	client, err := NewClient(ClientOptions{
		BaseURL:           baseURL,
		Timeout:           time.Second * 5,
		RetryAttempts:     attempts,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return client
}

func TestClientSendsFixedHeaders(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.Equal(t, "en", r.URL.Query().Get("language"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	_, err := client.Countries(context.Background())
	require.NoError(t, err)

	require.Equal(t, "application/json", gotHeaders.Get("Accept"))
	require.Equal(t, "en", gotHeaders.Get("accept-language"))
	require.Equal(t, "PRD", gotHeaders.Get("env"))
	require.Equal(t, "REQUEST", gotHeaders.Get("type"))
	require.Equal(t, "#PIPRD202006#", gotHeaders.Get("token"))
	require.Equal(t, "OIEwebsite", gotHeaders.Get("clientId"))
}

func TestClientRetriesBotBlock(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 4)
	_, err := client.Countries(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, calls.Load())
}

func TestClientExhaustsRetryBudget(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	_, err := client.Countries(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusInternalServerError, statusErr.Code)
	require.EqualValues(t, 3, calls.Load())
}

func TestClientDoesNotRetryPermanentStatus(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 4)
	_, err := client.FetchReportDetail(context.Background(), 12345)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.Code)
	require.EqualValues(t, 1, calls.Load())
}

func TestClientMalformedBodyIsFatal(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 4)
	_, err := client.Countries(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode response")
	require.EqualValues(t, 1, calls.Load())
}
