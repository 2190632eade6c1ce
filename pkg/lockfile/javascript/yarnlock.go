package javascript

import (
	"bufio"
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

var berryMetadata = regexp.MustCompile(`(?m)^"?__metadata"?:`)

var (
	errUnterminatedQuote = errors.New("unterminated quote in entry header")
	errEmptyDescriptor   = errors.New("empty descriptor in entry header")
)

// YarnLock parses yarn.lock. Files carrying a __metadata block are treated
// as the YAML syntax written by Yarn 2 and later; everything else is read as
// the classic v1 syntax. Workspace entries are skipped.
type YarnLock struct{}

func (YarnLock) Type() string                  { return "yarn.lock" }
func (YarnLock) Ecosystem() lockfile.Ecosystem { return lockfile.Npm }
func (YarnLock) Supports(name string) bool     { return name == "yarn.lock" }

func (p YarnLock) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	var pkgs []lockfile.Package
	if berryMetadata.Match(text) {
		pkgs, err = parseBerry(text)
	} else {
		pkgs, err = parseClassic(text)
	}
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), text, err)
	}
	return pkgs, nil
}

// parseClassic reads the indentation-based v1 format:
//
//	"@babel/core@^7.0.0", "@babel/core@^7.12.3":
//	  version "7.12.3"
//	  resolved "https://registry.yarnpkg.com/..."
func parseClassic(text []byte) ([]lockfile.Package, error) {
	pkgs := make([]lockfile.Package, 0)
	var cur *lockfile.Package
	flush := func() {
		if cur != nil {
			pkgs = append(pkgs, *cur)
			cur = nil
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), max(len(text)+1, 64*1024))
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent == 0 {
			if !strings.HasSuffix(trimmed, ":") {
				return nil, lockfile.At(lineNo, 1, "expected entry header, got %q", trimmed)
			}
			flush()
			name, err := headerName(strings.TrimSuffix(trimmed, ":"))
			if err != nil {
				return nil, lockfile.At(lineNo, 1, "%v", err)
			}
			cur = &lockfile.Package{Name: name, Ecosystem: lockfile.Npm}
			continue
		}

		if cur == nil {
			return nil, lockfile.At(lineNo, indent+1, "field outside of an entry")
		}
		if indent == 2 && strings.HasPrefix(trimmed, "version ") {
			v := strings.TrimSpace(strings.TrimPrefix(trimmed, "version "))
			if strings.HasPrefix(v, `"`) {
				uq, err := strconv.Unquote(v)
				if err != nil {
					return nil, lockfile.At(lineNo, indent+1, "bad version %s", v)
				}
				v = uq
			}
			cur.Version = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return pkgs, nil
}

// parseBerry reads the YAML format, where each top-level key lists the
// descriptors an entry satisfies.
func parseBerry(text []byte) ([]lockfile.Package, error) {
	root, err := decodeYAML(text)
	if err != nil {
		return nil, err
	}
	pairs, err := mappingPairs(&root)
	if err != nil {
		return nil, err
	}

	pkgs := make([]lockfile.Package, 0, len(pairs))
	for _, kv := range pairs {
		key := kv[0].Value
		if key == "__metadata" {
			continue
		}
		var entry berryEntry
		if err := decodeNode(kv[1], &entry); err != nil {
			return nil, err
		}
		if strings.Contains(key, "@workspace:") || strings.Contains(entry.Resolution, "@workspace:") {
			continue
		}

		name := descriptorName(entry.Resolution)
		if name == "" {
			if name, err = headerName(key); err != nil {
				return nil, lockfile.At(kv[0].Line, kv[0].Column, "%v", err)
			}
		}
		pkgs = append(pkgs, lockfile.Package{Name: name, Version: entry.Version, Ecosystem: lockfile.Npm})
	}
	return pkgs, nil
}

// headerName extracts the package name from the first descriptor of an
// entry header such as `"@scope/a@^1.0.0", "@scope/a@~1.2.0"`.
func headerName(header string) (string, error) {
	first, _, _ := strings.Cut(header, ",")
	first = strings.TrimSpace(first)
	if strings.HasPrefix(first, `"`) {
		uq, err := strconv.Unquote(first)
		if err != nil {
			return "", errUnterminatedQuote
		}
		first = uq
	}
	name := descriptorName(first)
	if name == "" {
		return "", errEmptyDescriptor
	}
	return name, nil
}

// descriptorName strips the range from name@range. The search starts after
// the first byte so scoped names keep their leading @.
func descriptorName(desc string) string {
	if len(desc) < 2 {
		return desc
	}
	if i := strings.IndexByte(desc[1:], '@'); i >= 0 {
		return desc[:i+1]
	}
	return desc
}

type berryEntry struct {
	Version    string `yaml:"version"`
	Resolution string `yaml:"resolution"`
}
