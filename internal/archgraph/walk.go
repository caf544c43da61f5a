package archgraph

import (
	"errors"
	"io/fs"
	"path/filepath"
)

const (
	// perDirCap bounds how many source files a single directory may
	// contribute, so huge flat monorepo directories stay cheap.
	perDirCap = 20

	minFileCap = 100
	maxFileCap = 10000
)

// skipDirs are never descended into: VCS metadata, dependency and
// environment caches, build output, bytecode caches.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".venv":        true,
	"venv":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	".next":        true,
	".cache":       true,
}

// FileSet is the classifier output: repo-relative slash paths per bucket,
// in walk order.
type FileSet struct {
	byLang map[Language][]string
	total  int
}

// Files returns the bucket for lang; the returned slice is shared, not a copy.
func (fs *FileSet) Files(lang Language) []string { return fs.byLang[lang] }

// Total is the number of classified files across all buckets.
func (fs *FileSet) Total() int { return fs.total }

// drop empties every bucket except keep. Used when a single language is
// requested so later stages do no work for the rest.
func (fs *FileSet) drop(keep Language) {
	for _, l := range Languages {
		if l != keep {
			delete(fs.byLang, l)
		}
	}
	fs.total = len(fs.byLang[keep])
}

// clampFileCap clamps the requested global cap to [100, 10000].
func clampFileCap(n int) int {
	if n < minFileCap {
		return minFileCap
	}
	if n > maxFileCap {
		return maxFileCap
	}
	return n
}

var errWalkDone = errors.New("walk done")

// CollectFiles walks root and buckets source files by language.
// Two caps apply: perDirCap source files per directory and a global cap
// (clamped) across all buckets, which halts the walk once reached.
// Unreadable directories are skipped; a single bad entry never aborts.
func CollectFiles(root string, maxFiles int) (*FileSet, error) {
	limit := clampFileCap(maxFiles)
	out := &FileSet{byLang: make(map[Language][]string, len(Languages))}
	perDir := make(map[string]int)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		dir := filepath.Dir(p)
		if perDir[dir] >= perDirCap {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		lang, ok := classify(rel)
		if !ok {
			return nil
		}
		out.byLang[lang] = append(out.byLang[lang], rel)
		out.total++
		perDir[dir]++
		if out.total >= limit {
			return errWalkDone
		}
		return nil
	})
	if err != nil && !errors.Is(err, errWalkDone) {
		return nil, err
	}
	return out, nil
}
