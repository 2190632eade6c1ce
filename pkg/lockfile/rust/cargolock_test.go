package rust

import (
	"errors"
	"slices"
	"testing"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

func TestCargoLock_Parse(t *testing.T) {
	doc := `# This file is automatically @generated by Cargo.
# It is not intended for manual editing.
version = 3

[[package]]
name = "autocfg"
version = "1.1.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "d468802bab17cbc0cc575e9b053f41e72aa36bfa6b7f55e3529ffa43161b97fa"

[[package]]
name = "myapp"
version = "0.1.0"
dependencies = [
 "serde",
]

[[package]]
name = "serde"
version = "1.0.193"
source = "registry+https://github.com/rust-lang/crates.io-index"
`

	pkgs, err := CargoLock{}.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []lockfile.Package{
		{Name: "autocfg", Version: "1.1.0", Ecosystem: lockfile.Cargo},
		{Name: "myapp", Version: "0.1.0", Ecosystem: lockfile.Cargo},
		{Name: "serde", Version: "1.0.193", Ecosystem: lockfile.Cargo},
	}
	if !slices.Equal(pkgs, want) {
		t.Errorf("Parse() = %v, want %v", pkgs, want)
	}
}

func TestCargoLock_Empty(t *testing.T) {
	pkgs, err := CargoLock{}.Parse([]byte("version = 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkgs == nil || len(pkgs) != 0 {
		t.Errorf("Parse() = %#v, want empty non-nil slice", pkgs)
	}
}

func TestCargoLock_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unterminated string", "[[package]]\nname = \"serde\nversion = \"1.0.0\"\n"},
		{"wrong type", "package = \"serde\"\n"},
		{"truncated utf-16", "\xff\xfe[\x00["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CargoLock{}.Parse([]byte(tt.doc))
			if !errs.Is(err, errs.ErrCodeMalformedDocument) {
				t.Fatalf("error = %v, want MALFORMED_DOCUMENT", err)
			}
		})
	}
}

func TestCargoLock_DiagnosticLine(t *testing.T) {
	_, err := CargoLock{}.Parse([]byte("version = 3\n\n[[package]\nname = \"serde\"\n"))
	var d *lockfile.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error %v carries no Diagnostic", err)
	}
	if d.Line != 3 {
		t.Errorf("Diagnostic.Line = %d, want 3", d.Line)
	}
}
