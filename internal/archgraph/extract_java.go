package archgraph

import (
	"regexp"
	"strings"
)

var (
	reJavaPackage = regexp.MustCompile(`(?m)^\s*package\s+([\w\.]+)\s*;`)
	reJavaImport  = regexp.MustCompile(`(?m)^\s*import\s+([\w\.]+)\s*;`)
	reCSNamespace = regexp.MustCompile(`(?m)^\s*namespace\s+([\w\.]+)`)
	reCSUsing     = regexp.MustCompile(`(?m)^\s*using\s+([\w\.]+)\s*;`)
)

// dottedPathID is the fallback importing id for files without a package
// declaration: the relative path, extension stripped, dot-joined.
func dottedPathID(rel, ext string) string {
	base := strings.Trim(strings.TrimSuffix(rel, ext), "/")
	if base == "" {
		return "unknown"
	}
	return strings.ReplaceAll(base, "/", ".")
}

// extractJava uses the file's package declaration as the importing node id
// (falling back to a path-derived id) and import statements verbatim as
// target ids.
func extractJava(rel, text string) (string, []rawRef) {
	origin := ""
	if m := reJavaPackage.FindStringSubmatch(text); m != nil {
		origin = m[1]
	} else {
		origin = dottedPathID(rel, ".java")
	}
	var refs []rawRef
	for _, m := range reJavaImport.FindAllStringSubmatch(text, -1) {
		refs = append(refs, rawRef{spec: m[1]})
	}
	return origin, refs
}

// resolveJava marks a target internal only when some sampled file declares
// that exact package; otherwise it is an external id used verbatim.
func resolveJava(rc *resolveCtx, _ string, ref rawRef) resolved {
	return resolved{
		id:       ref.spec,
		internal: rc.declares(LangJava, ref.spec),
		lang:     string(LangJava),
	}
}

// extractCSharp routes namespace/using declarations through the same coarse
// declared-package resolution as Java. This is intentionally minimal support:
// no filesystem probing, no provenance, not equivalent fidelity to the other
// extractors.
func extractCSharp(rel, text string) (string, []rawRef) {
	origin := ""
	if m := reCSNamespace.FindStringSubmatch(text); m != nil {
		origin = m[1]
	} else {
		origin = dottedPathID(rel, ".cs")
	}
	var refs []rawRef
	for _, m := range reCSUsing.FindAllStringSubmatch(text, -1) {
		refs = append(refs, rawRef{spec: m[1]})
	}
	return origin, refs
}

func resolveCSharp(rc *resolveCtx, _ string, ref rawRef) resolved {
	return resolved{
		id:       ref.spec,
		internal: rc.declares(LangCSharp, ref.spec),
		lang:     string(LangCSharp),
	}
}

// declaredPackage reports the package/namespace a Java or C# file declares,
// if any. Used by the registration pass to build the declared sets.
func declaredPackage(lang Language, text string) (string, bool) {
	var m []string
	switch lang {
	case LangJava:
		m = reJavaPackage.FindStringSubmatch(text)
	case LangCSharp:
		m = reCSNamespace.FindStringSubmatch(text)
	}
	if m == nil {
		return "", false
	}
	return m[1], true
}
