package dramexchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dramex-logger/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(spotPricePage)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		UserAgent: "dramex-test/1.0",
		Timeout:   time.Second * 5,
	}, telemetry.NewTestAPI(t))

	body, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, spotPricePage, body)
	require.Equal(t, "dramex-test/1.0", userAgent)
}

func TestClientFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tel := telemetry.NewTestAPI(t)
	client := NewClient(ClientOptions{UserAgent: "dramex-test/1.0"}, tel)
	_, err := client.Fetch(context.Background(), server.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
	require.Equal(t, server.URL, fetchErr.URL)
	require.Len(t, tel.Reports("warning"), 1)
}

func TestClientFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(ClientOptions{UserAgent: "dramex-test/1.0"}, telemetry.NewTestAPI(t))
	_, err := client.Fetch(context.Background(), url)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Zero(t, fetchErr.Status)
	require.Error(t, fetchErr.Unwrap())
}
