package javascript

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

const nodeModules = "node_modules/"

// PackageLock parses package-lock.json and npm-shrinkwrap.json.
//
// Version 2 and 3 lockfiles are read from the flat "packages" object; the
// root project entry, workspace sources and symlinks are skipped. Version 1
// lockfiles are read from the nested "dependencies" tree, depth first.
type PackageLock struct{}

func (PackageLock) Type() string                  { return "package-lock.json" }
func (PackageLock) Ecosystem() lockfile.Ecosystem { return lockfile.Npm }
func (PackageLock) Supports(name string) bool {
	return name == "package-lock.json" || name == "npm-shrinkwrap.json"
}

func (p PackageLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var lock packageLock
	if err := json.Unmarshal(text, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}

	pkgs := make([]lockfile.Package, 0)
	if len(lock.Packages) > 0 {
		for _, e := range lock.Packages {
			if e.Value.Link || !strings.Contains(e.Key, nodeModules) {
				continue
			}
			name := e.Value.Name
			if name == "" {
				name = e.Key[strings.LastIndex(e.Key, nodeModules)+len(nodeModules):]
			}
			pkgs = append(pkgs, lockfile.Package{Name: name, Version: e.Value.Version, Ecosystem: lockfile.Npm})
		}
		return pkgs, nil
	}
	return flattenDependencies(pkgs, lock.Dependencies), nil
}

func flattenDependencies(pkgs []lockfile.Package, deps lockfile.Entries[lockDependency]) []lockfile.Package {
	for _, e := range deps {
		pkgs = append(pkgs, lockfile.Package{Name: e.Key, Version: e.Value.Version, Ecosystem: lockfile.Npm})
		pkgs = flattenDependencies(pkgs, e.Value.Dependencies)
	}
	return pkgs
}

type packageLock struct {
	Packages     lockfile.Entries[lockPackage]    `json:"packages"`
	Dependencies lockfile.Entries[lockDependency] `json:"dependencies"`
}

type lockPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Link    bool   `json:"link"`
}

type lockDependency struct {
	Version      string                           `json:"version"`
	Dependencies lockfile.Entries[lockDependency] `json:"dependencies"`
}
