package archgraph

import (
	"regexp"
	"strings"
)

// The import capture stays on one line; a newline ends the comma list.
var rePyImport = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+([\w\., \t]+)|^[ \t]*from[ \t]+([\w\.]+)[ \t]+import[ \t]+`)

// pyModuleID turns a repo-relative path into a dotted module id;
// "pkg/__init__.py" collapses to "pkg". Empty for a top-level __init__.py.
func pyModuleID(rel string) string {
	var base string
	switch {
	case strings.HasSuffix(rel, "__init__.py"):
		base = strings.TrimSuffix(rel, "__init__.py")
	case strings.HasSuffix(rel, ".py"):
		base = strings.TrimSuffix(rel, ".py")
	default:
		return ""
	}
	base = strings.Trim(base, "/")
	if base == "" {
		return ""
	}
	return strings.ReplaceAll(base, "/", ".")
}

// truncateDots keeps at most the first n dot segments of a module path.
func truncateDots(mod string, n int) string {
	parts := strings.Split(mod, ".")
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, ".")
}

var rePyComma = regexp.MustCompile(`\s*,\s*`)
var rePyAs = regexp.MustCompile(`\s+as\s+`)

// extractPython matches "import a, b.c as x" and "from x.y import z" shapes.
// Targets are truncated to their first three dot segments. Python targets are
// never filesystem-resolved: they only read as internal when another sampled
// file registered the same module id.
func extractPython(rel, text string) (string, []rawRef) {
	origin := pyModuleID(rel)
	if origin == "" {
		return "", nil
	}
	var refs []rawRef
	for _, m := range rePyImport.FindAllStringSubmatch(text, -1) {
		switch {
		case m[1] != "":
			for _, part := range rePyComma.Split(m[1], -1) {
				name := rePyAs.Split(strings.TrimSpace(part), 2)[0]
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				refs = append(refs, rawRef{spec: truncateDots(name, 3)})
			}
		case m[2] != "":
			refs = append(refs, rawRef{spec: truncateDots(m[2], 3)})
		}
	}
	return origin, refs
}
