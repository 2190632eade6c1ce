package lockfile

import (
	"strings"

	"github.com/git-pkgs/packageurl-go"
)

// Ecosystem identifies a package-management convention. Values match
// package-URL type names so descriptors can be handed to purl-aware tooling
// without translation.
type Ecosystem string

const (
	Npm      Ecosystem = "npm"      // npm, yarn, pnpm
	PyPI     Ecosystem = "pypi"     // pip, pipenv, poetry
	Maven    Ecosystem = "maven"    // Maven, Gradle
	RubyGems Ecosystem = "gem"      // Bundler
	NuGet    Ecosystem = "nuget"    // MSBuild, NuGet
	Cargo    Ecosystem = "cargo"    // Cargo
	Golang   Ecosystem = "golang"   // Go modules
	Composer Ecosystem = "composer" // Composer
)

var ecosystems = []Ecosystem{Npm, PyPI, Maven, RubyGems, NuGet, Cargo, Golang, Composer}

// Ecosystems returns every supported ecosystem in a fixed order.
func Ecosystems() []Ecosystem {
	out := make([]Ecosystem, len(ecosystems))
	copy(out, ecosystems)
	return out
}

// ParseEcosystem maps a case-insensitive name back to an Ecosystem.
func ParseEcosystem(s string) (Ecosystem, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, e := range ecosystems {
		if string(e) == s {
			return e, true
		}
	}
	return "", false
}

// Valid reports whether e is one of the supported ecosystems.
func (e Ecosystem) Valid() bool {
	for _, v := range ecosystems {
		if e == v {
			return true
		}
	}
	return false
}

func (e Ecosystem) String() string { return string(e) }

// Package is the canonical, format-agnostic description of one declared
// dependency. Name and Version are copied verbatim from the source document;
// Version is empty when the manifest does not pin one.
type Package struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Ecosystem Ecosystem `json:"ecosystem"`
}

// String renders the package as name@version, or just name when unpinned.
func (p Package) String() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "@" + p.Version
}

// PURL renders the package as a package URL, splitting the name into
// namespace and name where the ecosystem has one.
// Maven coordinates become group/artifact, npm scopes and Composer vendors
// become the namespace, and Go module paths split at the last slash.
func (p Package) PURL() string {
	namespace, name := splitNamespace(p.Ecosystem, p.Name)
	return packageurl.NewPackageURL(string(p.Ecosystem), namespace, name, p.Version, nil, "").ToString()
}

func splitNamespace(eco Ecosystem, name string) (string, string) {
	switch eco {
	case Npm:
		if strings.HasPrefix(name, "@") {
			if ns, n, ok := strings.Cut(name, "/"); ok {
				return ns, n
			}
		}
	case Maven:
		if ns, n, ok := strings.Cut(name, ":"); ok {
			return ns, n
		}
	case Composer:
		if ns, n, ok := strings.Cut(name, "/"); ok {
			return ns, n
		}
	case Golang:
		if i := strings.LastIndex(name, "/"); i > 0 {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}
