package java

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// GradleLockfile parses the dependency lock state Gradle writes with
// --write-locks. Each line has the shape
//
//	group:artifact:version=configuration,configuration
//
// Comments and the trailing "empty=" line are skipped.
type GradleLockfile struct{}

func (GradleLockfile) Type() string                  { return "gradle.lockfile" }
func (GradleLockfile) Ecosystem() lockfile.Ecosystem { return lockfile.Maven }
func (GradleLockfile) Supports(name string) bool {
	return strings.HasSuffix(name, ".lockfile")
}

func (p GradleLockfile) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0)
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), max(len(text)+1, 64*1024))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "empty=") {
			continue
		}

		coords, _, _ := strings.Cut(line, "=")
		parts := strings.Split(coords, ":")
		if len(parts) < 3 || parts[0] == "" || parts[1] == "" {
			return nil, lockfile.Malformed(p.Type(), text,
				lockfile.At(lineNo, 1, "expected group:artifact:version, got %q", coords))
		}
		pkgs = append(pkgs, lockfile.Package{
			Name:      parts[0] + ":" + parts[1],
			Version:   parts[2],
			Ecosystem: lockfile.Maven,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}
	return pkgs, nil
}
