package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"repograph/internal/gateway/handler"
)

type noopResolver struct{}

func (noopResolver) DefaultBranchSHA(ctx context.Context, owner, name string) (string, error) {
	return "", nil
}

type noopMaterializer struct{}

func (noopMaterializer) Clone(ctx context.Context, owner, name string) (string, func(), error) {
	return "", func() {}, nil
}

func TestMuxRoutes(t *testing.T) {
	svc := handler.NewService(noopResolver{}, noopMaterializer{}, nil)
	mux := NewMux(svc, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /api/health = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rr.Code)
	}

	// Path parameters reach the handler; an invalid selector is rejected
	// there, which proves the route matched.
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/repo/octo/demo/arch-graph?lang=cobol", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("arch-graph with bad selector = %d, want 400", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d, want 404", rr.Code)
	}
}
