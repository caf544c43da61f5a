package archgraph

import (
	"reflect"
	"testing"
)

func TestExtractPHPRequireForms(t *testing.T) {
	src := `<?php
require('./lib/util.php');
require_once("config.php");
include ( 'vendor/autoload.php' );
`
	origin, refs := extractPHP("web/index.php", src)
	if origin != "web/index" {
		t.Fatalf("origin = %q, want web/index", origin)
	}
	var specs []string
	for _, r := range refs {
		specs = append(specs, r.spec)
	}
	want := []string{"./lib/util.php", "config.php", "vendor/autoload.php"}
	if !reflect.DeepEqual(specs, want) {
		t.Fatalf("specs = %v, want %v", specs, want)
	}
}

func TestResolvePHP(t *testing.T) {
	root := writeTree(t, map[string]string{
		"web/lib/util.php": "",
	})
	rc := newResolveCtx(root)

	got := resolvePHP(rc, "web/index.php", rawRef{spec: "./lib/util.php"})
	if got.id != "web/lib/util" || !got.internal {
		t.Fatalf("./lib/util.php resolved to %+v", got)
	}

	// Rooted specifiers still resolve against the importing file's directory.
	got = resolvePHP(rc, "web/index.php", rawRef{spec: "/lib/util.php"})
	if got.id != "web/lib/util" || !got.internal {
		t.Fatalf("/lib/util.php resolved to %+v", got)
	}

	got = resolvePHP(rc, "web/index.php", rawRef{spec: "Symfony/Component/Yaml"})
	if got.id != "Symfony" || got.internal {
		t.Fatalf("bare specifier resolved to %+v, want external Symfony", got)
	}
}
