package javascript

import (
	"errors"
	"slices"
	"testing"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

func TestYarnLock_Classic(t *testing.T) {
	doc := `# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.
# yarn lockfile v1


"@babel/code-frame@^7.0.0", "@babel/code-frame@^7.10.4":
  version "7.12.13"
  resolved "https://registry.yarnpkg.com/@babel/code-frame/-/code-frame-7.12.13.tgz"
  dependencies:
    "@babel/highlight" "^7.10.4"

lodash@^4.17.20, lodash@^4.17.21:
  version "4.17.21"
  resolved "https://registry.yarnpkg.com/lodash/-/lodash-4.17.21.tgz"

string-width-cjs@npm:string-width@^4.2.0:
  version "4.2.3"
`

	pkgs, err := YarnLock{}.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []lockfile.Package{
		npm("@babel/code-frame", "7.12.13"),
		npm("lodash", "4.17.21"),
		npm("string-width-cjs", "4.2.3"),
	}
	if !slices.Equal(pkgs, want) {
		t.Errorf("Parse() = %v, want %v", pkgs, want)
	}
}

func TestYarnLock_Berry(t *testing.T) {
	doc := `# This file is generated by running "yarn install" inside your project.

__metadata:
  version: 6
  cacheKey: 8

"@types/node@npm:*, @types/node@npm:^20.0.0":
  version: 20.10.0
  resolution: "@types/node@npm:20.10.0"
  checksum: 9e9a
  languageName: node
  linkType: hard

"my-app@workspace:.":
  version: 0.0.0-use.local
  resolution: "my-app@workspace:."
  languageName: unknown
  linkType: soft

"typescript@patch:typescript@npm%3A^5.3.0#~builtin<compat/typescript>":
  version: 5.3.3
  resolution: "typescript@patch:typescript@npm%3A5.3.3#~builtin<compat/typescript>::version=5.3.3"
  languageName: node
  linkType: hard
`

	pkgs, err := YarnLock{}.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []lockfile.Package{npm("@types/node", "20.10.0"), npm("typescript", "5.3.3")}
	if !slices.Equal(pkgs, want) {
		t.Errorf("Parse() = %v, want %v", pkgs, want)
	}
}

func TestYarnLock_Empty(t *testing.T) {
	for _, doc := range []string{"", "# yarn lockfile v1\n\n", "__metadata:\n  version: 6\n"} {
		pkgs, err := YarnLock{}.Parse([]byte(doc))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", doc, err)
		}
		if len(pkgs) != 0 {
			t.Errorf("Parse(%q) = %v, want empty", doc, pkgs)
		}
	}
}

func TestYarnLock_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
	}{
		{"orphan field", "  version \"1.0.0\"\n", 1},
		{"header without colon", "# yarn lockfile v1\nlodash@^4.0.0\n", 2},
		{"unterminated quote", "\"lodash@^4.0.0:\n  version \"4.17.21\"\n", 1},
		{"berry bad indent", "__metadata:\n  version: 6\n a: [\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := YarnLock{}.Parse([]byte(tt.doc))
			if !errs.Is(err, errs.ErrCodeMalformedDocument) {
				t.Fatalf("error = %v, want MALFORMED_DOCUMENT", err)
			}
			var d *lockfile.Diagnostic
			if !errors.As(err, &d) {
				t.Fatalf("error %v carries no Diagnostic", err)
			}
			if tt.line > 0 && d.Line != tt.line {
				t.Errorf("Diagnostic.Line = %d, want %d", d.Line, tt.line)
			}
		})
	}
}

func TestDescriptorName(t *testing.T) {
	tests := map[string]string{
		"lodash@^4.17.21":          "lodash",
		"@babel/core@^7.0.0":       "@babel/core",
		"@types/node@npm:20.10.0":  "@types/node",
		"left-pad":                 "left-pad",
		"alias@npm:real-pkg@1.0.0": "alias",
	}
	for desc, want := range tests {
		if got := descriptorName(desc); got != want {
			t.Errorf("descriptorName(%q) = %q, want %q", desc, got, want)
		}
	}
}
