// Package rust parses Cargo lockfiles.
package rust

import "github.com/matzehuels/lockfile/pkg/lockfile"

// CargoLock parses Cargo.lock, versions 1 through 4. Every [[package]]
// table is reported, the workspace crates included.
type CargoLock struct{}

func (CargoLock) Type() string                  { return "Cargo.lock" }
func (CargoLock) Ecosystem() lockfile.Ecosystem { return lockfile.Cargo }
func (CargoLock) Supports(name string) bool     { return name == "Cargo.lock" }

func (p CargoLock) Parse(data []byte) ([]lockfile.Package, error) {
	var lock cargoLock
	if err := lockfile.DecodeTOML(data, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		pkgs = append(pkgs, lockfile.Package{Name: pkg.Name, Version: pkg.Version, Ecosystem: lockfile.Cargo})
	}
	return pkgs, nil
}

type cargoLock struct {
	Packages []struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}
