package python

import (
	"errors"
	"slices"
	"testing"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

func TestPoetryLock_Parse(t *testing.T) {
	doc := `# This file is automatically @generated by Poetry 1.7.1 and should not be changed by hand.

[[package]]
name = "certifi"
version = "2023.11.17"
description = "Python package for providing Mozilla's CA Bundle."
optional = false
python-versions = ">=3.6"
files = [
    {file = "certifi-2023.11.17-py3-none-any.whl", hash = "sha256:e036ab49d5b79556f99cfc2d9320b34cfbe5be05c5871b51de9329f0603b0474"},
]

[[package]]
name = "requests"
version = "2.31.0"
description = "Python HTTP for Humans."
optional = false
python-versions = ">=3.7"

[package.dependencies]
certifi = ">=2017.4.17"

[package.extras]
socks = ["PySocks (>=1.5.6,!=1.5.7)"]

[metadata]
lock-version = "2.0"
python-versions = "^3.11"
content-hash = "abc"
`

	pkgs, err := PoetryLock{}.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []lockfile.Package{pypi("certifi", "2023.11.17"), pypi("requests", "2.31.0")}
	if !slices.Equal(pkgs, want) {
		t.Errorf("Parse() = %v, want %v", pkgs, want)
	}
}

func TestPoetryLock_Empty(t *testing.T) {
	pkgs, err := PoetryLock{}.Parse([]byte("[metadata]\nlock-version = \"2.0\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkgs == nil || len(pkgs) != 0 {
		t.Errorf("Parse() = %#v, want empty non-nil slice", pkgs)
	}
}

func TestPoetryLock_Malformed(t *testing.T) {
	_, err := PoetryLock{}.Parse([]byte("[[package]]\nname = \"certifi\"\nversion = \n"))
	if !errs.Is(err, errs.ErrCodeMalformedDocument) {
		t.Fatalf("error = %v, want MALFORMED_DOCUMENT", err)
	}
	var d *lockfile.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error %v carries no Diagnostic", err)
	}
	if d.Line != 3 {
		t.Errorf("Diagnostic.Line = %d, want 3", d.Line)
	}
}
