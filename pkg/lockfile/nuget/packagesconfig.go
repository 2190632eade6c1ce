package nuget

import (
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// PackagesConfig parses the packages.config files used by projects that
// predate PackageReference.
type PackagesConfig struct{}

func (PackagesConfig) Type() string                  { return "packages.config" }
func (PackagesConfig) Ecosystem() lockfile.Ecosystem { return lockfile.NuGet }
func (PackagesConfig) Supports(name string) bool {
	return strings.EqualFold(name, "packages.config")
}

func (p PackagesConfig) Parse(data []byte) ([]lockfile.Package, error) {
	var cfg packagesConfig
	if err := lockfile.DecodeXML(data, &cfg); err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		pkgs = append(pkgs, lockfile.Package{
			Name:      pkg.ID,
			Version:   pkg.Version,
			Ecosystem: lockfile.NuGet,
		})
	}
	return pkgs, nil
}

type packagesConfig struct {
	Packages []struct {
		ID      string `xml:"id,attr"`
		Version string `xml:"version,attr"`
	} `xml:"package"`
}
