package archgraph

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// resolveCtx is the per-build resolution state: checkout root, discovered Go
// module path, declared-package sets (Java and C#), and a per-directory
// package.json dependency cache. Safe for concurrent resolvers.
type resolveCtx struct {
	root     string
	goModule string
	declared map[Language]map[string]struct{}

	mu      sync.Mutex
	pkgDeps map[string]map[string]string
}

func newResolveCtx(root string) *resolveCtx {
	return &resolveCtx{
		root: root,
		declared: map[Language]map[string]struct{}{
			LangJava:   {},
			LangCSharp: {},
		},
		pkgDeps: make(map[string]map[string]string),
	}
}

func (rc *resolveCtx) declares(lang Language, pkg string) bool {
	_, ok := rc.declared[lang][pkg]
	return ok
}

// pathDir is path.Dir with "." collapsed to the repo root.
func pathDir(rel string) string {
	d := path.Dir(rel)
	if d == "." {
		return ""
	}
	return d
}

// cleanRelPath joins a repo-relative directory with a specifier and
// normalizes it. Results escaping the root ("../x") are kept verbatim as
// best-effort ids.
func cleanRelPath(dir, spec string) string {
	return path.Clean(path.Join(dir, spec))
}

// stripExt removes the first matching extension from a slash path.
func stripExt(p string, exts []string) string {
	for _, ext := range exts {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}

// probe resolves a repo-relative target by trying, in order: the literal
// path, the path with each extension appended, and the path as a directory
// holding an index file per extension. The first hit supplies the canonical
// id. When nothing exists on disk the computed path still becomes the id:
// the target may simply have been excluded by sampling.
func (rc *resolveCtx) probe(targetRel string, exts []string) string {
	candidates := make([]string, 0, 1+2*len(exts))
	candidates = append(candidates, targetRel)
	for _, ext := range exts {
		candidates = append(candidates, targetRel+ext)
	}
	for _, ext := range exts {
		candidates = append(candidates, targetRel+"/index"+ext)
	}
	for _, cand := range candidates {
		st, err := os.Stat(filepath.Join(rc.root, filepath.FromSlash(cand)))
		if err != nil || st.IsDir() {
			continue
		}
		return stripExt(cand, exts)
	}
	return stripExt(targetRel, exts)
}

type packageManifest struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// nearestDeps returns the merged dependency map of the closest package.json
// at or above dir, searched upward to the repository root. The result is
// cached per starting directory for the duration of the build; a missing or
// malformed manifest caches as nil.
func (rc *resolveCtx) nearestDeps(dir string) map[string]string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if deps, ok := rc.pkgDeps[dir]; ok {
		return deps
	}
	deps := rc.lookupDepsLocked(dir)
	rc.pkgDeps[dir] = deps
	return deps
}

func (rc *resolveCtx) lookupDepsLocked(dir string) map[string]string {
	for cur := dir; ; cur = pathDir(cur) {
		b, err := os.ReadFile(filepath.Join(rc.root, filepath.FromSlash(path.Join(cur, "package.json"))))
		if err == nil {
			var m packageManifest
			if json.Unmarshal(b, &m) != nil {
				return nil
			}
			merged := make(map[string]string)
			for _, src := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies, m.OptionalDependencies} {
				for k, v := range src {
					if _, dup := merged[k]; !dup {
						merged[k] = v
					}
				}
			}
			return merged
		}
		if cur == "" {
			return nil
		}
	}
}

// resolvePython passes the (already truncated) module path through. Whether
// the target is internal is decided purely by whether some sampled Python
// file registered the same id.
func resolvePython(_ *resolveCtx, _ string, ref rawRef) resolved {
	return resolved{id: ref.spec, lang: string(LangPython)}
}
