// Package ruby parses Bundler lockfiles.
package ruby

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// spec matches a resolved gem, "    name (version)".
var spec = regexp.MustCompile(`^    ([^\s(]+) \(([^)]+)\)$`)

// sources are the sections whose specs list resolved gems.
var sources = map[string]bool{
	"GEM":           true,
	"GIT":           true,
	"PATH":          true,
	"PLUGIN SOURCE": true,
}

// GemfileLock parses Gemfile.lock and gems.locked. Gems are read from the
// specs: block of every source section, in file order. Versions keep any
// platform suffix ("1.15.4-x86_64-linux").
type GemfileLock struct{}

func (GemfileLock) Type() string                  { return "Gemfile.lock" }
func (GemfileLock) Ecosystem() lockfile.Ecosystem { return lockfile.RubyGems }
func (GemfileLock) Supports(name string) bool {
	return name == "Gemfile.lock" || name == "gems.locked"
}

func (p GemfileLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0)
	var section string
	var inSpecs bool

	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), max(len(text)+1, 64*1024))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimRight(sc.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch indent := len(line) - len(strings.TrimLeft(line, " ")); {
		case indent == 0:
			section, inSpecs = line, false
		case indent == 2:
			inSpecs = sources[section] && line == "  specs:"
		case indent == 4 && inSpecs:
			m := spec.FindStringSubmatch(line)
			if m == nil {
				return nil, lockfile.Malformed(p.Type(), text,
					lockfile.At(lineNo, 5, "expected \"name (version)\", got %q", strings.TrimSpace(line)))
			}
			pkgs = append(pkgs, lockfile.Package{Name: m[1], Version: m[2], Ecosystem: lockfile.RubyGems})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}
	return pkgs, nil
}
