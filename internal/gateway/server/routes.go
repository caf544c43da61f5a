package server

import (
	"net/http"

	"repograph/internal/gateway/handler"
	"repograph/internal/gateway/middleware"
)

func NewMux(svc *handler.Service, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", svc.HandleHealth)
	mux.HandleFunc("GET /{$}", svc.HandleRoot)
	mux.HandleFunc("GET /api/repo/{owner}/{name}/arch-graph", svc.HandleArchGraph)
	mux.HandleFunc("GET /api/repo/{owner}/{name}/languages-detail", svc.HandleLanguagesDetail)

	return middleware.CORS(allowedOrigins, mux)
}
