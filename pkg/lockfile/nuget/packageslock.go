package nuget

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// PackagesLock parses packages.lock.json. Packages are listed per target
// framework, in the order the frameworks appear; a package resolved for two
// frameworks is reported twice.
type PackagesLock struct{}

func (PackagesLock) Type() string                  { return "packages.lock.json" }
func (PackagesLock) Ecosystem() lockfile.Ecosystem { return lockfile.NuGet }
func (PackagesLock) Supports(name string) bool {
	return strings.EqualFold(name, "packages.lock.json")
}

func (p PackagesLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var lock packagesLock
	if err := json.Unmarshal(text, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}

	pkgs := make([]lockfile.Package, 0)
	for _, framework := range lock.Dependencies {
		for _, dep := range framework.Value {
			// Project references point at sibling projects, not packages.
			if dep.Value.Type == "Project" {
				continue
			}
			pkgs = append(pkgs, lockfile.Package{
				Name:      dep.Key,
				Version:   dep.Value.Resolved,
				Ecosystem: lockfile.NuGet,
			})
		}
	}
	return pkgs, nil
}

type packagesLock struct {
	Dependencies lockfile.Entries[lockfile.Entries[lockedPackage]] `json:"dependencies"`
}

type lockedPackage struct {
	Type     string `json:"type"`
	Resolved string `json:"resolved"`
}
