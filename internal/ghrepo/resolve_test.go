package ghrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"repograph/internal/apperr"
)

func TestDefaultBranchSHA(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"default_branch": "dev"}`))
	})
	mux.HandleFunc("/repos/octo/demo/branches/dev", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"commit": {"sha": "abc123"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL, Token: "tok"}
	sha, err := r.DefaultBranchSHA(context.Background(), "octo", "demo")
	require.NoError(t, err)
	require.Equal(t, "abc123", sha)
}

func TestDefaultBranchSHAFallsBackToMain(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/repos/octo/demo/branches/main", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"commit": {"sha": "mainsha"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL}
	sha, err := r.DefaultBranchSHA(context.Background(), "octo", "demo")
	require.NoError(t, err)
	require.Equal(t, "mainsha", sha)
}

func TestDefaultBranchSHANotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL}
	_, err := r.DefaultBranchSHA(context.Background(), "octo", "gone")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDefaultBranchSHABranchLookupBestEffort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"default_branch": "dev"}`))
	})
	mux.HandleFunc("/repos/octo/demo/branches/dev", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL}
	sha, err := r.DefaultBranchSHA(context.Background(), "octo", "demo")
	require.NoError(t, err)
	require.Empty(t, sha, "branch lookup failure yields empty SHA, not an error")
}
