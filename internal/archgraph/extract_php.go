package archgraph

import (
	"regexp"
	"strings"
)

var rePHPRequire = regexp.MustCompile(`(?:require|require_once|include|include_once)\s*\(\s*['"]([^'"]+)['"]\s*\)`)

// extractPHP matches require/require_once/include/include_once with a string
// argument.
func extractPHP(rel, text string) (string, []rawRef) {
	if !strings.HasSuffix(rel, ".php") {
		return "", nil
	}
	origin := strings.TrimSuffix(rel, ".php")
	var refs []rawRef
	for _, m := range rePHPRequire.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			refs = append(refs, rawRef{spec: m[1]})
		}
	}
	return origin, refs
}

// resolvePHP resolves leading "." or "/" specifiers relative to the importing
// file by probing; anything else is external, keyed by its first path
// segment.
func resolvePHP(rc *resolveCtx, originRel string, ref rawRef) resolved {
	spec := strings.TrimSpace(ref.spec)
	if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		// A rooted include is still read against the file's directory:
		// "/lib/util.php" and "./lib/util.php" mean the same thing here.
		target := cleanRelPath(pathDir(originRel), strings.TrimPrefix(spec, "/"))
		return resolved{id: rc.probe(target, sourceExts[LangPHP]), internal: true, lang: string(LangPHP)}
	}
	return resolved{id: strings.SplitN(spec, "/", 2)[0], lang: string(LangPHP)}
}
