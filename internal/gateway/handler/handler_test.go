package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"repograph/internal/apperr"
	"repograph/internal/archgraph"
	"repograph/internal/cache/memory"
)

type stubResolver struct {
	sha string
	err error
}

func (s *stubResolver) DefaultBranchSHA(ctx context.Context, owner, name string) (string, error) {
	return s.sha, s.err
}

type stubMaterializer struct {
	dir    string
	err    error
	clones int
}

func (s *stubMaterializer) Clone(ctx context.Context, owner, name string) (string, func(), error) {
	if s.err != nil {
		return "", nil, s.err
	}
	s.clones++
	return s.dir, func() {}, nil
}

func fixtureRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"pkg/__init__.py": "",
		"pkg/a.py":        "from pkg.b import helper\n",
		"pkg/b.py":        "",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func newTestService(t *testing.T, res CommitResolver, mat RepoMaterializer) *Service {
	t.Helper()
	graphs, err := memory.New[archgraph.CacheKey, *archgraph.Graph](4)
	require.NoError(t, err)
	return NewService(res, mat, graphs)
}

func archGraphRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/repo/octo/demo/arch-graph"+query, nil)
	req.SetPathValue("owner", "octo")
	req.SetPathValue("name", "demo")
	return req
}

func TestArchGraphBuildsAndCaches(t *testing.T) {
	mat := &stubMaterializer{dir: fixtureRepo(t)}
	svc := newTestService(t, &stubResolver{sha: "abc123"}, mat)

	rr := httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest("?min_weight=1"))
	require.Equal(t, http.StatusOK, rr.Code)

	var g archgraph.Graph
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	require.Equal(t, 3, g.Stats.NodeCount)
	require.Equal(t, 1, g.Stats.EdgeCount)
	require.Equal(t, 1, mat.clones)

	// Same commit, same parameters: served from cache, no second clone.
	rr = httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest("?min_weight=1"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, mat.clones)
}

func TestArchGraphNewCommitMissesCache(t *testing.T) {
	res := &stubResolver{sha: "commit1"}
	mat := &stubMaterializer{dir: fixtureRepo(t)}
	svc := newTestService(t, res, mat)

	rr := httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest(""))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, mat.clones)

	res.sha = "commit2"
	rr = httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest(""))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 2, mat.clones)
}

func TestArchGraphExplicitZeroMinWeight(t *testing.T) {
	mat := &stubMaterializer{dir: fixtureRepo(t)}
	svc := newTestService(t, &stubResolver{sha: "abc"}, mat)

	// min_weight=0 is clamped to 1, not replaced by the default of 2, so
	// the fixture's single-occurrence edge survives.
	rr := httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest("?min_weight=0"))
	require.Equal(t, http.StatusOK, rr.Code)

	var g archgraph.Graph
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	require.Equal(t, 1, g.Stats.EdgeCount)
}

func TestArchGraphUnknownLanguage(t *testing.T) {
	mat := &stubMaterializer{dir: fixtureRepo(t)}
	svc := newTestService(t, &stubResolver{sha: "abc"}, mat)

	rr := httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest("?lang=cobol"))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, 0, mat.clones, "invalid selector must be rejected before cloning")
}

func TestArchGraphRepoNotFound(t *testing.T) {
	res := &stubResolver{err: fmt.Errorf("ghrepo: resolve octo/demo: %w", apperr.ErrNotFound)}
	svc := newTestService(t, res, &stubMaterializer{})

	rr := httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest(""))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestArchGraphCloneTimeout(t *testing.T) {
	mat := &stubMaterializer{err: fmt.Errorf("ghrepo: clone octo/demo: %w", apperr.ErrUpstreamTimeout)}
	svc := newTestService(t, &stubResolver{sha: "abc"}, mat)

	rr := httptest.NewRecorder()
	svc.HandleArchGraph(rr, archGraphRequest(""))
	require.Equal(t, http.StatusGatewayTimeout, rr.Code)
}

func TestLanguagesDetail(t *testing.T) {
	mat := &stubMaterializer{dir: fixtureRepo(t)}
	svc := newTestService(t, &stubResolver{sha: "abc"}, mat)

	req := httptest.NewRequest(http.MethodGet, "/api/repo/octo/demo/languages-detail", nil)
	req.SetPathValue("owner", "octo")
	req.SetPathValue("name", "demo")
	rr := httptest.NewRecorder()
	svc.HandleLanguagesDetail(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var counts map[string]archgraph.LangCount
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counts))
	require.Equal(t, 3, counts["Python"].Files)
}

func TestHealth(t *testing.T) {
	svc := NewService(nil, nil, nil)
	rr := httptest.NewRecorder()
	svc.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status": "ok"}`, rr.Body.String())
}
