package python

import "github.com/matzehuels/lockfile/pkg/lockfile"

// PoetryLock parses poetry.lock.
type PoetryLock struct{}

func (PoetryLock) Type() string                  { return "poetry.lock" }
func (PoetryLock) Ecosystem() lockfile.Ecosystem { return lockfile.PyPI }
func (PoetryLock) Supports(name string) bool     { return name == "poetry.lock" }

func (p PoetryLock) Parse(data []byte) ([]lockfile.Package, error) {
	var lock poetryLock
	if err := lockfile.DecodeTOML(data, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0, len(lock.Packages))
	for _, pkg := range lock.Packages {
		pkgs = append(pkgs, lockfile.Package{Name: pkg.Name, Version: pkg.Version, Ecosystem: lockfile.PyPI})
	}
	return pkgs, nil
}

type poetryLock struct {
	Packages []struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}
