package archgraph

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"
)

var (
	reGoImportSingle = regexp.MustCompile(`(?m)^\s*import\s+"([^"]+)"`)
	reGoImportBlock  = regexp.MustCompile(`(?ms)^\s*import\s*\((.*?)\)`)
	reGoQuoted       = regexp.MustCompile(`"([^"]+)"`)
)

// discoverGoModule reads the module directive from a go.mod at the checkout
// root. Empty when there is none or it does not parse.
func discoverGoModule(root string) string {
	b, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(b)
}

// extractGo matches single-line and parenthesized-block quoted import paths.
func extractGo(rel, text string) (string, []rawRef) {
	if !strings.HasSuffix(rel, ".go") {
		return "", nil
	}
	origin := strings.TrimSuffix(rel, ".go")
	var refs []rawRef
	for _, m := range reGoImportSingle.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			refs = append(refs, rawRef{spec: m[1]})
		}
	}
	for _, bm := range reGoImportBlock.FindAllStringSubmatch(text, -1) {
		for _, m := range reGoQuoted.FindAllStringSubmatch(bm[1], -1) {
			refs = append(refs, rawRef{spec: m[1]})
		}
	}
	return origin, refs
}

// resolveGo rewrites paths under the discovered module prefix to
// module-relative internal ids; everything else stays external under its
// full import path. No filesystem verification.
func resolveGo(rc *resolveCtx, _ string, ref rawRef) resolved {
	spec := ref.spec
	if rc.goModule != "" && strings.HasPrefix(spec, rc.goModule) {
		id := strings.TrimLeft(strings.TrimPrefix(spec, rc.goModule), "/")
		if id == "" {
			id = spec
		}
		return resolved{id: id, internal: true, lang: string(LangGo)}
	}
	return resolved{id: spec, lang: string(LangGo)}
}
