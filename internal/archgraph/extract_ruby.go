package archgraph

import (
	"regexp"
	"strings"
)

var (
	reRubyRequire    = regexp.MustCompile(`(?m)^\s*require\s+['"]([^'"]+)['"]`)
	reRubyRequireRel = regexp.MustCompile(`(?m)^\s*require_relative\s+['"]([^'"]+)['"]`)
)

// extractRuby matches require and require_relative. require_relative always
// resolves against the file; plain require only when its argument looks
// relative.
func extractRuby(rel, text string) (string, []rawRef) {
	if !strings.HasSuffix(rel, ".rb") {
		return "", nil
	}
	origin := strings.TrimSuffix(rel, ".rb")
	var refs []rawRef
	for _, m := range reRubyRequireRel.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			refs = append(refs, rawRef{spec: m[1], relative: true})
		}
	}
	for _, m := range reRubyRequire.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			refs = append(refs, rawRef{spec: m[1]})
		}
	}
	return origin, refs
}

func resolveRuby(rc *resolveCtx, originRel string, ref rawRef) resolved {
	spec := strings.TrimSpace(ref.spec)
	if ref.relative || strings.HasPrefix(spec, ".") {
		target := cleanRelPath(pathDir(originRel), spec)
		return resolved{id: rc.probe(target, sourceExts[LangRuby]), internal: true, lang: string(LangRuby)}
	}
	return resolved{id: strings.SplitN(spec, "/", 2)[0], lang: string(LangRuby)}
}
