// Package golang parses Go module files.
package golang

import (
	"errors"

	"golang.org/x/mod/modfile"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// GoMod parses go.mod. Every require directive is reported in file order,
// direct and indirect alike. Replace and exclude directives do not alter the
// result.
type GoMod struct{}

func (GoMod) Type() string                  { return "go.mod" }
func (GoMod) Ecosystem() lockfile.Ecosystem { return lockfile.Golang }
func (GoMod) Supports(name string) bool     { return name == "go.mod" }

func (p GoMod) Parse(data []byte) ([]lockfile.Package, error) {
	text, err := lockfile.Decode(data)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), data, err)
	}

	f, err := modfile.ParseLax("go.mod", text, nil)
	if err != nil {
		return nil, lockfile.Malformed(p.Type(), text, modDiagnostic(err))
	}

	pkgs := make([]lockfile.Package, 0, len(f.Require))
	for _, req := range f.Require {
		pkgs = append(pkgs, lockfile.Package{
			Name:      req.Mod.Path,
			Version:   req.Mod.Version,
			Ecosystem: lockfile.Golang,
		})
	}
	return pkgs, nil
}

func modDiagnostic(err error) error {
	var list modfile.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return &lockfile.Diagnostic{Line: list[0].Pos.Line, Column: list[0].Pos.LineRune, Err: err}
	}
	var e *modfile.Error
	if errors.As(err, &e) {
		return &lockfile.Diagnostic{Line: e.Pos.Line, Column: e.Pos.LineRune, Err: err}
	}
	return err
}
