package nuget

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// CSProj parses MSBuild project files. Every PackageReference of every
// ItemGroup becomes a package, in document order.
type CSProj struct{}

func (CSProj) Type() string                  { return "csproj" }
func (CSProj) Ecosystem() lockfile.Ecosystem { return lockfile.NuGet }

func (CSProj) Supports(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csproj", ".fsproj", ".vbproj":
		return true
	}
	return false
}

func (p CSProj) Parse(data []byte) ([]lockfile.Package, error) {
	var proj project
	if err := lockfile.DecodeXML(data, &proj); err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0)
	for _, group := range proj.ItemGroups {
		for _, ref := range group.PackageReferences {
			pkgs = append(pkgs, lockfile.Package{
				Name:      ref.Include,
				Version:   ref.version(),
				Ecosystem: lockfile.NuGet,
			})
		}
	}
	return pkgs, nil
}

type project struct {
	ItemGroups []itemGroup `xml:"ItemGroup"`
}

type itemGroup struct {
	PackageReferences []packageReference `xml:"PackageReference"`
}

// packageReference accepts the version either as an attribute or as a
// nested <Version> element; the attribute wins when both are present.
type packageReference struct {
	Include        string `xml:"Include,attr"`
	VersionAttr    string `xml:"Version,attr"`
	VersionElement string `xml:"Version"`
}

func (r packageReference) version() string {
	if r.VersionAttr != "" {
		return r.VersionAttr
	}
	return strings.TrimSpace(r.VersionElement)
}
