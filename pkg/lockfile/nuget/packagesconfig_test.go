package nuget

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

func TestPackagesConfig_Supports(t *testing.T) {
	parser := PackagesConfig{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"packages.config", true},
		{"Packages.config", true},
		{"web.config", false},
		{"packages.lock.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestPackagesConfig_Parse(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="EntityFramework" version="6.4.4" targetFramework="net48" />
  <package id="jQuery" version="3.6.0" targetFramework="net48" />
  <package id="Unpinned" targetFramework="net48" />
</packages>`

	pkgs, err := PackagesConfig{}.Parse([]byte("\uFEFF" + doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []lockfile.Package{
		{Name: "EntityFramework", Version: "6.4.4", Ecosystem: lockfile.NuGet},
		{Name: "jQuery", Version: "3.6.0", Ecosystem: lockfile.NuGet},
		{Name: "Unpinned", Version: "", Ecosystem: lockfile.NuGet},
	}
	if !slices.Equal(pkgs, want) {
		t.Errorf("Parse() = %v, want %v", pkgs, want)
	}
}

func TestPackagesConfig_Malformed(t *testing.T) {
	pkgs, err := PackagesConfig{}.Parse([]byte(`<packages><package id="a" version="1"`))
	if !errs.Is(err, errs.ErrCodeMalformedDocument) {
		t.Fatalf("error = %v, want MALFORMED_DOCUMENT", err)
	}
	if pkgs != nil {
		t.Errorf("Parse() = %v, want nil", pkgs)
	}
}
