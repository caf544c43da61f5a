package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"repograph/internal/archgraph"
)

// archgraph builds the dependency graph for a local checkout and writes it
// as JSON. No clone, no cache; useful for inspecting a tree before wiring
// it through the API.
func main() {
	repo := flag.String("repo", "", "path to the repository root")
	lang := flag.String("lang", "all", "language filter: all|python|js|go|java|csharp|php|ruby")
	maxFiles := flag.Int("max-files", archgraph.DefaultMaxFiles, "global file cap (clamped to [100, 10000])")
	minWeight := flag.Int("min-weight", archgraph.DefaultMinWeight, "minimum edge weight to keep")
	nodeCap := flag.Int("node-cap", archgraph.DefaultNodeCap, "maximum node count (degree-ranked)")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()
	if *repo == "" {
		log.Fatal("--repo is required")
	}

	g, err := archgraph.Build(context.Background(), *repo, archgraph.Options{
		MaxFiles:  *maxFiles,
		Lang:      *lang,
		MinWeight: *minWeight,
		NodeCap:   *nodeCap,
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("graph: %d nodes, %d edges", g.Stats.NodeCount, g.Stats.EdgeCount)

	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	b = append(b, '\n')
	if *out == "" {
		os.Stdout.Write(b)
		return
	}
	if err := os.WriteFile(filepath.Clean(*out), b, 0o644); err != nil {
		log.Fatal(err)
	}
}
