package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"repograph/internal/apperr"
	"repograph/internal/archgraph"
	"repograph/internal/cache/memory"
)

// CommitResolver reports the tip commit of a repository's default branch.
type CommitResolver interface {
	DefaultBranchSHA(ctx context.Context, owner, name string) (string, error)
}

// RepoMaterializer produces a local checkout of a repository.
type RepoMaterializer interface {
	Clone(ctx context.Context, owner, name string) (dir string, cleanup func(), err error)
}

// Service implements the HTTP API. It holds the GitHub clients and the
// shared graph cache as its dependencies.
type Service struct {
	resolver     CommitResolver
	materializer RepoMaterializer
	graphs       *memory.LRU[archgraph.CacheKey, *archgraph.Graph]
}

// NewService creates an API service backed by the given GitHub clients.
// graphs may be nil, in which case every request rebuilds.
func NewService(resolver CommitResolver, materializer RepoMaterializer, graphs *memory.LRU[archgraph.CacheKey, *archgraph.Graph]) *Service {
	return &Service{resolver: resolver, materializer: materializer, graphs: graphs}
}

func (s *Service) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "GitHub Repo Analyzer API"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.HTTPStatus(err), map[string]string{"detail": err.Error()})
}
