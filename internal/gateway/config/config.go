package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// AllowedOrigins for CORS; empty means any origin. Comma-separated in
	// FRONTEND_ORIGIN.
	AllowedOrigins []string

	// GitHubToken raises the API rate limit; optional.
	GitHubToken string
	// GitHubAPIBase overrides the REST endpoint (tests).
	GitHubAPIBase string

	CloneTimeout time.Duration
	CacheSize    int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("FRONTEND_ORIGIN"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:           *port,
		Env:            env,
		AllowedOrigins: origins,
		GitHubToken:    strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		GitHubAPIBase:  strings.TrimSpace(os.Getenv("GITHUB_API_BASE")),
		CloneTimeout:   durationEnv("CLONE_TIMEOUT_SECONDS", 120*time.Second),
		CacheSize:      intEnv("GRAPH_CACHE_SIZE", 64),
	}, nil
}

func intEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
