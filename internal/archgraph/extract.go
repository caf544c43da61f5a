package archgraph

// rawRef is one raw import occurrence. Occurrences are deliberately not
// deduplicated: each one bumps its edge's weight, so repeated imports of the
// same target read as coupling intensity.
type rawRef struct {
	spec string
	// relative forces filesystem-style resolution regardless of the spec's
	// shape (Ruby's require_relative).
	relative bool
}

// extractFunc is a pure per-language matcher: (repo-relative path, file text)
// to the importing node id plus raw specifiers. An empty origin means the
// file contributes nothing.
type extractFunc func(rel, text string) (origin string, refs []rawRef)

// resolveFunc turns one raw specifier from a file into a resolved target.
type resolveFunc func(rc *resolveCtx, originRel string, ref rawRef) resolved

// resolved is a canonical target node: id, whether this resolution alone
// proves it internal, its language tag, and optional manager provenance.
type resolved struct {
	id       string
	internal bool
	lang     string
	pkg      *PkgInfo
}

// strategy pairs a language's extractor with its resolver. Dispatch is by
// this table, never by type inspection.
type strategy struct {
	extract extractFunc
	resolve resolveFunc
}

var strategies = map[Language]strategy{
	LangPython: {extractPython, resolvePython},
	LangJS:     {extractJS, resolveJS},
	LangGo:     {extractGo, resolveGo},
	LangJava:   {extractJava, resolveJava},
	LangCSharp: {extractCSharp, resolveCSharp},
	LangPHP:    {extractPHP, resolvePHP},
	LangRuby:   {extractRuby, resolveRuby},
}
