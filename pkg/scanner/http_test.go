package scanner_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avreduce/avreduce/pkg/scanner"
)

func TestHTTP_CleanHeaderMeansNotDetected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Scan-Result", "clean")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sc := scanner.NewHTTP(srv.URL, srv.Client())

	detected, err := sc.Scan(context.Background(), []byte("payload"), "a.bin")
	require.NoError(t, err)
	assert.False(t, detected)
}

func TestHTTP_NonCleanHeaderMeansDetected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Scan-Result", "infected:eicar")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sc := scanner.NewHTTP(srv.URL, srv.Client())

	detected, err := sc.Scan(context.Background(), []byte("payload"), "a.bin")
	require.NoError(t, err)
	assert.True(t, detected)
}

func TestHTTP_ServerErrorMeansDetected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sc := scanner.NewHTTP(srv.URL, srv.Client())

	detected, err := sc.Scan(context.Background(), []byte("payload"), "a.bin")
	require.NoError(t, err)
	assert.True(t, detected)
}

func TestHTTP_DeadlineExceededMeansDetected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	sc := scanner.NewHTTP(srv.URL, srv.Client())

	detected, err := sc.Scan(ctx, []byte("payload"), "a.bin")
	require.NoError(t, err)
	assert.True(t, detected)
}

func TestHTTP_ClientErrorStatusIsTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sc := scanner.NewHTTP(srv.URL, srv.Client())

	_, err := sc.Scan(context.Background(), []byte("payload"), "a.bin")
	require.Error(t, err)
}
