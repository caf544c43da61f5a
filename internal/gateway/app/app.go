package app

import (
	"context"
	"fmt"

	"repograph/internal/archgraph"
	"repograph/internal/cache/memory"
	"repograph/internal/gateway/config"
	"repograph/internal/gateway/handler"
	"repograph/internal/gateway/server"
	"repograph/internal/ghrepo"
)

type App struct {
	server *server.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	resolver := &ghrepo.Resolver{
		BaseURL: cfg.GitHubAPIBase,
		Token:   cfg.GitHubToken,
	}
	materializer := &ghrepo.Materializer{Timeout: cfg.CloneTimeout}
	graphs, err := memory.New[archgraph.CacheKey, *archgraph.Graph](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph cache: %w", err)
	}

	svc := handler.NewService(resolver, materializer, graphs)

	// Routing & Server
	mux := server.NewMux(svc, cfg.AllowedOrigins)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
