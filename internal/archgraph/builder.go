// Package archgraph builds a size-bounded dependency graph from a checked-out
// source tree spanning up to seven languages.
//
// The graph is a structural approximation: imports are recovered by text
// pattern matching, not per-language compilation, so dynamic and
// build-config-aliased imports are out of reach. That trade-off is
// deliberate, as are the sampling caps that drop files in very large
// repositories before parsing.
package archgraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"repograph/internal/apperr"
)

const (
	DefaultMaxFiles  = 3000
	DefaultMinWeight = 2
	DefaultNodeCap   = 200

	defaultWorkers = 8
)

// Options are the caller-tunable build parameters. MaxFiles, NodeCap, and
// Workers fall back to the defaults above when zero; MaxFiles is clamped to
// [100, 10000] by the walker. MinWeight is clamped to a floor of 1, so the
// zero value keeps every edge; the HTTP and CLI surfaces supply
// DefaultMinWeight when the caller sends nothing.
type Options struct {
	MaxFiles  int
	Lang      string // selector: all|python|js|go|java|csharp|php|ruby (+synonyms)
	MinWeight int
	NodeCap   int
	Workers   int
}

func (o Options) withDefaults() Options {
	if o.MaxFiles == 0 {
		o.MaxFiles = DefaultMaxFiles
	}
	if o.NodeCap == 0 {
		o.NodeCap = DefaultNodeCap
	}
	if o.Workers <= 0 {
		o.Workers = defaultWorkers
	}
	return o
}

// CacheKey identifies one build result: repository, resolved default-branch
// commit, and the requested file cap. A new commit always makes a new key.
type CacheKey struct {
	Repo     string
	SHA      string
	MaxFiles int
}

// Build walks root, extracts imports per language, and returns the filtered,
// sorted graph. Per-file read failures are recovered locally and contribute
// no edges; only walker and context errors abort the build. Two builds over
// identical content yield identical graphs, metadata included.
func Build(ctx context.Context, root string, opts Options) (*Graph, error) {
	opts = opts.withDefaults()
	sel, all, err := ParseSelector(opts.Lang)
	if err != nil {
		return nil, err
	}

	files, err := CollectFiles(root, opts.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("archgraph: walk %s: %w", root, err)
	}
	if !all {
		files.drop(sel)
	}

	rc := newResolveCtx(root)
	if len(files.Files(LangGo)) > 0 {
		rc.goModule = discoverGoModule(root)
	}

	acc := newAccumulator()

	// Registration pass: every sampled file's own node id becomes known and
	// internal before any import is resolved, so cross-file internal checks
	// (Python module ids, Java/C# declared packages) see the full sample.
	registerFiles(root, files, rc, acc)

	// Extraction pass: per-file, parallel. Each file's result lands in its
	// own slot; nothing shared is written until the merge below.
	type job struct {
		lang Language
		rel  string
	}
	type fileResult struct {
		origin  string
		lang    Language
		targets []resolved
	}
	var work []job
	for _, lang := range Languages {
		for _, rel := range files.Files(lang) {
			work = append(work, job{lang, rel})
		}
	}
	out := make([]fileResult, len(work))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, w := range work {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st := strategies[w.lang]
			text, err := readFileText(root, w.rel)
			if err != nil {
				return nil
			}
			origin, refs := st.extract(w.rel, text)
			if origin == "" {
				return nil
			}
			targets := make([]resolved, len(refs))
			for j, ref := range refs {
				targets[j] = st.resolve(rc, w.rel, ref)
			}
			out[i] = fileResult{origin: origin, lang: w.lang, targets: targets}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in bucket order, so first-writer-wins tags and provenance do not
	// depend on goroutine scheduling.
	for _, fr := range out {
		if fr.origin == "" {
			continue
		}
		acc.addNode(fr.origin, string(fr.lang))
		acc.markInternal(fr.origin)
		for _, r := range fr.targets {
			if r.pkg != nil {
				acc.addPkgNode(r.id, r.lang, r.pkg)
			} else {
				acc.addNode(r.id, r.lang)
			}
			if r.internal {
				acc.markInternal(r.id)
			}
			acc.addEdge(fr.origin, r.id)
		}
	}

	return acc.snapshot(sel, all, opts.MinWeight, opts.NodeCap), nil
}

// registerFiles records every sampled file's node id as internal and fills
// the Java/C# declared-package sets.
func registerFiles(root string, files *FileSet, rc *resolveCtx, acc *accumulator) {
	for _, rel := range files.Files(LangPython) {
		if id := pyModuleID(rel); id != "" {
			acc.addNode(id, string(LangPython))
			acc.markInternal(id)
		}
	}
	for _, rel := range files.Files(LangJS) {
		if id := jsModuleID(rel); id != "" {
			acc.addNode(id, string(LangJS))
			acc.markInternal(id)
		}
	}
	for _, lang := range []Language{LangJava, LangCSharp} {
		for _, rel := range files.Files(lang) {
			text, err := readFileText(root, rel)
			if err != nil {
				continue
			}
			if pkg, ok := declaredPackage(lang, text); ok {
				rc.declared[lang][pkg] = struct{}{}
				acc.addNode(pkg, string(lang))
				acc.markInternal(pkg)
			}
		}
	}
}

// readFileText reads a sampled file. Failures report apperr.ErrPartialRead
// and are recovered locally: the caller skips the file, which then
// contributes no edges.
func readFileText(root, rel string) (string, error) {
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("archgraph: read %s: %w", rel, apperr.ErrPartialRead)
	}
	return string(b), nil
}
