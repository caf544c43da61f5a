package archgraph

import (
	"regexp"
	"strings"
)

var (
	reJSImport  = regexp.MustCompile(`(?m)^\s*import\s+(?:[^'"` + "`" + `\n]+\s+from\s+)?['"]([^'"]+)['"]`)
	reJSRequire = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
)

// jsModuleID strips the source extension from a repo-relative JS/TS path.
func jsModuleID(rel string) string {
	for _, ext := range jsExts {
		if strings.HasSuffix(rel, ext) {
			return strings.TrimSuffix(rel, ext)
		}
	}
	return ""
}

// extractJS matches static `import ... from "spec"` and dynamic
// `require("spec")`. The importing node is the file path minus extension.
func extractJS(rel, text string) (string, []rawRef) {
	origin := jsModuleID(rel)
	if origin == "" {
		return "", nil
	}
	var refs []rawRef
	for _, m := range reJSImport.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			refs = append(refs, rawRef{spec: m[1]})
		}
	}
	for _, m := range reJSRequire.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			refs = append(refs, rawRef{spec: m[1]})
		}
	}
	return origin, refs
}

// externalPkgName truncates a bare specifier to its package name: scoped
// names ("@org/pkg/deep") keep two segments, others keep one.
func externalPkgName(spec string) string {
	if strings.HasPrefix(spec, "@") {
		parts := strings.SplitN(spec, "/", 3)
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1]
		}
		return spec
	}
	return strings.SplitN(spec, "/", 2)[0]
}

// resolveJS resolves relative and rooted specifiers against the checkout by
// probing; bare specifiers become external npm packages with version
// provenance from the nearest ancestor package.json.
func resolveJS(rc *resolveCtx, originRel string, ref rawRef) resolved {
	spec := strings.TrimSpace(ref.spec)
	if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		var target string
		if strings.HasPrefix(spec, "/") {
			// Rooted at the repository, not the filesystem.
			target = cleanRelPath("", strings.TrimPrefix(spec, "/"))
		} else {
			target = cleanRelPath(pathDir(originRel), spec)
		}
		return resolved{id: rc.probe(target, jsExts), internal: true, lang: string(LangJS)}
	}
	pkg := externalPkgName(spec)
	out := resolved{id: pkg, lang: langNPM}
	if ver := rc.nearestDeps(pathDir(originRel))[pkg]; ver != "" {
		out.pkg = &PkgInfo{Manager: "npm", Name: pkg, Version: ver}
	}
	return out
}
