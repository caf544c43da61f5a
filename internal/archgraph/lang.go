package archgraph

import (
	"fmt"
	"path"
	"strings"
)

// Language is one of the seven source buckets the classifier produces.
type Language string

const (
	LangPython Language = "python"
	LangJS     Language = "js"
	LangGo     Language = "go"
	LangJava   Language = "java"
	LangCSharp Language = "csharp"
	LangPHP    Language = "php"
	LangRuby   Language = "ruby"
)

// langNPM tags external JS/TS package nodes. It is a node tag, not a file
// bucket: no file classifies into it, but the "js" selector admits it.
const langNPM = "npm"

// Languages lists the buckets in a fixed order so walk output and per-bucket
// iteration stay deterministic.
var Languages = []Language{LangPython, LangJS, LangGo, LangJava, LangCSharp, LangPHP, LangRuby}

var extToLang = map[string]Language{
	".py":   LangPython,
	".js":   LangJS,
	".jsx":  LangJS,
	".ts":   LangJS,
	".tsx":  LangJS,
	".go":   LangGo,
	".java": LangJava,
	".cs":   LangCSharp,
	".php":  LangPHP,
	".rb":   LangRuby,
}

// classify buckets a file by extension; ok is false for everything that is
// not one of the seven source languages.
func classify(rel string) (Language, bool) {
	l, ok := extToLang[strings.ToLower(path.Ext(rel))]
	return l, ok
}

// jsExts is the probe order for JS/TS relative imports; TypeScript first, as
// a .ts file shadows a same-named .js in every bundler convention we follow.
var jsExts = []string{".ts", ".tsx", ".js", ".jsx"}

// sourceExts maps each language to the extensions its resolver probes.
var sourceExts = map[Language][]string{
	LangJS:   jsExts,
	LangPHP:  {".php"},
	LangRuby: {".rb"},
}

// ParseSelector normalizes a lang request parameter. The empty string and
// "all" select every bucket. Recognized synonyms: py, javascript, npm,
// golang, cs, .net, dotnet, rb.
func ParseSelector(raw string) (Language, bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return "", true, nil
	case "python", "py":
		return LangPython, false, nil
	case "js", "javascript", "npm":
		return LangJS, false, nil
	case "go", "golang":
		return LangGo, false, nil
	case "java":
		return LangJava, false, nil
	case "csharp", "cs", ".net", "dotnet":
		return LangCSharp, false, nil
	case "php":
		return LangPHP, false, nil
	case "ruby", "rb":
		return LangRuby, false, nil
	}
	return "", false, &UnknownSelectorError{Raw: raw}
}

// UnknownSelectorError reports an unrecognized lang parameter.
type UnknownSelectorError struct{ Raw string }

func (e *UnknownSelectorError) Error() string {
	return fmt.Sprintf("archgraph: unknown language selector %q", e.Raw)
}

// selectorAdmits reports whether a node tagged tag survives the selector.
// The JS selector admits both source files ("js") and npm package nodes.
func selectorAdmits(sel Language, tag string) bool {
	if sel == LangJS {
		return tag == string(LangJS) || tag == langNPM
	}
	return tag == string(sel)
}
