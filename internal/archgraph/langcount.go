package archgraph

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LangCount is the per-language tally for the languages-detail surface.
type LangCount struct {
	Files int `json:"files"`
	Lines int `json:"lines"`
}

// displayLang maps extensions to display names. Wider than the seven graph
// buckets on purpose: the tally is informational, not graph input.
var displayLang = map[string]string{
	".py": "Python", ".js": "JavaScript", ".mjs": "JavaScript", ".cjs": "JavaScript",
	".jsx": "JavaScript", ".ts": "TypeScript", ".tsx": "TypeScript",
	".go": "Go", ".java": "Java", ".cs": "C#", ".php": "PHP", ".rb": "Ruby",
	".rs": "Rust", ".c": "C", ".h": "C", ".cpp": "C++", ".cc": "C++", ".hpp": "C++",
	".kt": "Kotlin", ".swift": "Swift", ".scala": "Scala", ".sh": "Shell",
	".lua": "Lua", ".dart": "Dart", ".ex": "Elixir", ".exs": "Elixir",
	".pl": "Perl", ".html": "HTML", ".htm": "HTML",
}

const countReadLimit = 2_000_000 // files above this are counted but not read

// CountLanguages walks root with the same denylist as the graph walker and
// tallies files and newline counts per display language, best-effort and
// capped at maxFiles entries.
func CountLanguages(root string, maxFiles int) (map[string]LangCount, error) {
	counts := make(map[string]LangCount)
	seen := 0
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
		if seen >= maxFiles {
			return errWalkDone
		}
		seen++
		lang, ok := displayLang[strings.ToLower(filepath.Ext(p))]
		if !ok {
			return nil
		}
		c := counts[lang]
		c.Files++
		if st, serr := d.Info(); serr == nil && st.Size() <= countReadLimit {
			if b, rerr := os.ReadFile(p); rerr == nil {
				c.Lines += bytes.Count(b, []byte("\n"))
			}
		}
		counts[lang] = c
		return nil
	})
	if err != nil && err != errWalkDone {
		return nil, err
	}
	return counts, nil
}
