package lockfile

import (
	"path/filepath"

	errs "github.com/matzehuels/lockfile/pkg/errors"
)

// Parser reads one lockfile syntax into canonical package descriptors.
//
// Implementations live in ecosystem subpackages (e.g., nuget.CSProj) and must
// be pure: Parse may be called concurrently from many goroutines.
type Parser interface {
	// Parse converts a whole document into packages in document order.
	//
	// Documents without dependency entries return an empty slice and no
	// error. Structurally invalid documents return nil and an error carrying
	// [errs.ErrCodeMalformedDocument]; a partial list is never returned.
	Parse(data []byte) ([]Package, error)

	// Supports reports whether this parser claims the given file name.
	//
	// The name is the basename of a path (e.g., "packages.config"). The
	// check must not touch the file system.
	Supports(filename string) bool

	// Ecosystem returns the ecosystem every parsed package is tagged with.
	Ecosystem() Ecosystem

	// Type returns the format identifier (e.g., "csproj", "yarn.lock").
	Type() string
}

// Registry dispatches files to the first parser that claims them.
//
// Parsers are probed in registration order, so when two parsers claim the
// same name the earlier one wins. A Registry is immutable and safe for
// concurrent use.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates a Registry that probes parsers in the given order.
func NewRegistry(parsers ...Parser) *Registry {
	ps := make([]Parser, len(parsers))
	copy(ps, parsers)
	return &Registry{parsers: ps}
}

// Parsers returns the registered parsers in priority order.
func (r *Registry) Parsers() []Parser {
	ps := make([]Parser, len(r.parsers))
	copy(ps, r.parsers)
	return ps
}

// Detect finds the parser that claims path. Only the basename is inspected.
//
// Returns an error with [errs.ErrCodeUnclaimedFormat] if no parser matches.
func (r *Registry) Detect(path string) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range r.parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, errs.New(errs.ErrCodeUnclaimedFormat, "unsupported lockfile: %s", name)
}

// Lookup returns the parser registered under the format identifier typ.
func (r *Registry) Lookup(typ string) (Parser, bool) {
	for _, p := range r.parsers {
		if p.Type() == typ {
			return p, true
		}
	}
	return nil, false
}

// ForEcosystem returns the parsers that produce packages of eco, in
// priority order.
func (r *Registry) ForEcosystem(eco Ecosystem) []Parser {
	var out []Parser
	for _, p := range r.parsers {
		if p.Ecosystem() == eco {
			out = append(out, p)
		}
	}
	return out
}

// Parse detects the format of path and parses data with the matching parser.
// The parser's result is returned unchanged.
func (r *Registry) Parse(path string, data []byte) ([]Package, error) {
	p, err := r.Detect(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}

// Supports reports whether any registered parser claims path.
func (r *Registry) Supports(path string) bool {
	_, err := r.Detect(path)
	return err == nil
}
