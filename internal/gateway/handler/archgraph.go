package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"repograph/internal/archgraph"
)

// HandleArchGraph builds (or serves from cache) the dependency graph for a
// repository's default branch.
//
// GET /api/repo/{owner}/{name}/arch-graph?max_files=&lang=&min_weight=&node_cap=
func (s *Service) HandleArchGraph(w http.ResponseWriter, r *http.Request) {
	owner, name := r.PathValue("owner"), r.PathValue("name")

	opts := archgraph.Options{
		MaxFiles:  queryInt(r, "max_files", archgraph.DefaultMaxFiles),
		Lang:      r.URL.Query().Get("lang"),
		MinWeight: queryInt(r, "min_weight", archgraph.DefaultMinWeight),
		NodeCap:   queryInt(r, "node_cap", archgraph.DefaultNodeCap),
	}
	if _, _, err := archgraph.ParseSelector(opts.Lang); err != nil {
		var unknown *archgraph.UnknownSelectorError
		if errors.As(err, &unknown) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
			return
		}
		writeError(w, err)
		return
	}

	// Commit resolution must precede the cache lookup so a new commit
	// always produces a fresh key.
	sha, err := s.resolver.DefaultBranchSHA(r.Context(), owner, name)
	if err != nil {
		writeError(w, err)
		return
	}
	if sha == "" {
		sha = "unknown"
	}

	key := archgraph.CacheKey{
		Repo:     fmt.Sprintf("%s/%s", owner, name),
		SHA:      sha,
		MaxFiles: opts.MaxFiles,
	}
	if g, ok := s.graphs.Get(key); ok {
		writeJSON(w, http.StatusOK, g)
		return
	}

	dir, cleanup, err := s.materializer.Clone(r.Context(), owner, name)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	g, err := archgraph.Build(r.Context(), dir, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	s.graphs.Put(key, g)
	writeJSON(w, http.StatusOK, g)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
