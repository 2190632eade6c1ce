package python

import (
	"bufio"
	"bytes"
	"path"
	"regexp"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

var (
	// distributionName is a PEP 508 project name.
	distributionName = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)
	extras           = regexp.MustCompile(`^\s*\[[^\]]*\]`)
)

// Requirements parses pip requirements files (requirements.txt,
// requirements-dev.txt, requirements.in, ...).
//
// Each requirement line has the shape
//
//	name[extras] specifiers ; marker
//
// An exact "==" or "===" pin yields the bare version. Any other specifier
// set is kept verbatim, and an unconstrained requirement has an empty
// version. Option lines, editable installs, URLs and local paths are
// skipped.
type Requirements struct{}

func (Requirements) Type() string                  { return "requirements.txt" }
func (Requirements) Ecosystem() lockfile.Ecosystem { return lockfile.PyPI }
func (Requirements) Supports(name string) bool {
	for _, pattern := range []string{"requirements*.txt", "requirements*.in"} {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (p Requirements) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	pkgs := make([]lockfile.Package, 0)
	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), max(len(text)+1, 64*1024))

	var (
		logical strings.Builder
		start   int
	)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if logical.Len() == 0 {
			start = lineNo
		}
		if cont, ok := strings.CutSuffix(line, `\`); ok {
			logical.WriteString(cont)
			logical.WriteByte(' ')
			continue
		}
		logical.WriteString(line)
		pkg, ok, err := parseRequirement(logical.String(), start)
		logical.Reset()
		if err != nil {
			return nil, lockfile.Malformed(p.Type(), text, err)
		}
		if ok {
			pkgs = append(pkgs, pkg)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}
	if logical.Len() > 0 {
		pkg, ok, err := parseRequirement(logical.String(), start)
		if err != nil {
			return nil, lockfile.Malformed(p.Type(), text, err)
		}
		if ok {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, nil
}

// parseRequirement reads one logical line. ok is false for lines that
// declare nothing.
func parseRequirement(line string, lineNo int) (lockfile.Package, bool, error) {
	if i := strings.Index(line, "#"); i >= 0 && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || skipRequirement(line) {
		return lockfile.Package{}, false, nil
	}

	// Per-requirement options such as --hash follow the specifier.
	if i := strings.Index(line, " --"); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}

	name := distributionName.FindString(line)
	if name == "" {
		return lockfile.Package{}, false, lockfile.At(lineNo, 1, "invalid requirement %q", line)
	}
	rest := line[len(name):]
	if m := extras.FindString(rest); m != "" {
		rest = rest[len(m):]
	}
	rest = strings.TrimSpace(rest)

	pkg := lockfile.Package{Name: name, Ecosystem: lockfile.PyPI}
	switch {
	case rest == "":
	case strings.HasPrefix(rest, "@"):
		// Direct reference; the URL is not a version.
	case strings.ContainsAny(rest[:1], "=<>!~("):
		pkg.Version = specifierVersion(rest)
	default:
		return lockfile.Package{}, false, lockfile.At(lineNo, len(line)-len(rest)+1, "unexpected %q after %s", rest, name)
	}
	return pkg, true, nil
}

// specifierVersion maps a specifier set to the version reported for it.
func specifierVersion(spec string) string {
	spec = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(spec, "("), ")"))
	spec = strings.Join(strings.Fields(spec), "")
	if strings.Contains(spec, ",") {
		return spec
	}
	if v, ok := strings.CutPrefix(spec, "==="); ok {
		return v
	}
	if v, ok := strings.CutPrefix(spec, "=="); ok {
		return v
	}
	return spec
}

func skipRequirement(line string) bool {
	switch {
	case strings.HasPrefix(line, "-"):
		return true
	case strings.HasPrefix(line, "."), strings.HasPrefix(line, "/"), strings.HasPrefix(line, "~"):
		return true
	case strings.Contains(line, "://"), strings.HasPrefix(line, "file:"):
		return !isDirectReference(line)
	}
	return false
}

// isDirectReference reports whether line has the PEP 508 form
// "name[extras] @ url".
func isDirectReference(line string) bool {
	name := distributionName.FindString(line)
	if name == "" {
		return false
	}
	rest := line[len(name):]
	if m := extras.FindString(rest); m != "" {
		rest = rest[len(m):]
	}
	return strings.HasPrefix(strings.TrimSpace(rest), "@")
}
