package javascript

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// PnpmLock parses pnpm-lock.yaml. Package keys changed shape across
// lockfile versions:
//
//	v5  /@scope/name/1.0.0_peer@2.0.0
//	v6  /@scope/name@1.0.0(peer@2.0.0)
//	v9  @scope/name@1.0.0
//
// Peer dependency suffixes are dropped from the version.
type PnpmLock struct{}

func (PnpmLock) Type() string                  { return "pnpm-lock.yaml" }
func (PnpmLock) Ecosystem() lockfile.Ecosystem { return lockfile.Npm }
func (PnpmLock) Supports(name string) bool {
	return name == "pnpm-lock.yaml" || name == "pnpm-lock.yml"
}

func (p PnpmLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var lock pnpmLock
	if err := yaml.Unmarshal(text, &lock); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, yamlDiagnostic(err))
	}
	pairs, err := mappingPairs(&lock.Packages)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}

	legacy := lockMajor(lock.LockfileVersion.Value) < 6
	pkgs := make([]lockfile.Package, 0, len(pairs))
	for _, kv := range pairs {
		var entry pnpmPackage
		if err := decodeNode(kv[1], &entry); err != nil {
			return nil, lockfile.Malformed(p.Type(), text, err)
		}
		name, version := splitPnpmKey(kv[0].Value, legacy)
		if entry.Name != "" {
			name = entry.Name
		}
		if entry.Version != "" && (version == "" || entry.Name != "") {
			version = entry.Version
		}
		pkgs = append(pkgs, lockfile.Package{Name: name, Version: version, Ecosystem: lockfile.Npm})
	}
	return pkgs, nil
}

// splitPnpmKey separates a packages key into name and version. legacy
// selects the slash-separated layout used before lockfile v6.
func splitPnpmKey(key string, legacy bool) (string, string) {
	key = strings.TrimPrefix(key, "/")
	if legacy {
		i := strings.LastIndexByte(key, '/')
		if i <= 0 {
			return key, ""
		}
		version, _, _ := strings.Cut(key[i+1:], "_")
		return key[:i], version
	}
	key, _, _ = strings.Cut(key, "(")
	if i := strings.LastIndexByte(key, '@'); i > 0 {
		return key[:i], key[i+1:]
	}
	return key, ""
}

// lockMajor reads the major component of lockfileVersion, which is a bare
// number up to v5 and a quoted string afterwards. Unknown values are
// treated as current.
func lockMajor(v string) int {
	major, _, _ := strings.Cut(v, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 9
	}
	return n
}

type pnpmLock struct {
	LockfileVersion yaml.Node `yaml:"lockfileVersion"`
	Packages        yaml.Node `yaml:"packages"`
}

type pnpmPackage struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}
