package python

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// PipfileLock parses Pipfile.lock. Runtime packages ("default") come
// before development packages ("develop"), each in document order.
type PipfileLock struct{}

func (PipfileLock) Type() string                  { return "Pipfile.lock" }
func (PipfileLock) Ecosystem() lockfile.Ecosystem { return lockfile.PyPI }
func (PipfileLock) Supports(name string) bool     { return name == "Pipfile.lock" }

func (p PipfileLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var lock pipfileLock
	if err := json.Unmarshal(text, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}

	pkgs := make([]lockfile.Package, 0, len(lock.Default)+len(lock.Develop))
	for _, group := range []lockfile.Entries[pipfilePackage]{lock.Default, lock.Develop} {
		for _, e := range group {
			pkgs = append(pkgs, lockfile.Package{
				Name:      e.Key,
				Version:   strings.TrimLeft(e.Value.Version, "="),
				Ecosystem: lockfile.PyPI,
			})
		}
	}
	return pkgs, nil
}

type pipfileLock struct {
	Default lockfile.Entries[pipfilePackage] `json:"default"`
	Develop lockfile.Entries[pipfilePackage] `json:"develop"`
}

type pipfilePackage struct {
	Version string `json:"version"`
}
