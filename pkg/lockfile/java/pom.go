package java

import (
	"encoding/xml"
	"path"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// POM parses the direct dependencies of a Maven project model. Besides
// pom.xml it reads published *.pom files and the effective POM written by
// "mvn help:effective-pom", whose root may be a <projects> element holding
// one <project> per module.
//
// Versions are reported as written; ${property} references are not
// interpolated.
type POM struct{}

func (POM) Type() string                  { return "pom.xml" }
func (POM) Ecosystem() lockfile.Ecosystem { return lockfile.Maven }
func (POM) Supports(name string) bool {
	return name == "pom.xml" || name == "effective-pom.xml" || path.Ext(name) == ".pom"
}

func (p POM) Parse(data []byte) ([]lockfile.Package, error) {
	var root pomRoot
	if err := lockfile.DecodeXML(data, &root); err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var projects []pomProject
	switch root.XMLName.Local {
	case "project":
		projects = []pomProject{root.pomProject}
	case "projects":
		projects = root.Projects
	default:
		return nil, lockfile.Malformed(p.Type(), data,
			lockfile.At(0, 0, "unexpected root element <%s>", root.XMLName.Local))
	}

	pkgs := make([]lockfile.Package, 0)
	for _, project := range projects {
		for _, dep := range project.Dependencies {
			pkgs = append(pkgs, lockfile.Package{
				Name:      strings.TrimSpace(dep.GroupID) + ":" + strings.TrimSpace(dep.ArtifactID),
				Version:   strings.TrimSpace(dep.Version),
				Ecosystem: lockfile.Maven,
			})
		}
	}
	return pkgs, nil
}

type pomRoot struct {
	XMLName xml.Name
	pomProject
	Projects []pomProject `xml:"project"`
}

type pomProject struct {
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}
