package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// fileReport is the per-file output shared by the parse and scan commands.
type fileReport struct {
	Path      string             `json:"path"`
	Type      string             `json:"type,omitempty"`
	Ecosystem lockfile.Ecosystem `json:"ecosystem,omitempty"`
	Packages  []lockfile.Package `json:"packages"`
	Error     string             `json:"error,omitempty"`
	Code      errs.Code          `json:"code,omitempty"`
	err       error
}

func newReport(path, typ string, eco lockfile.Ecosystem, pkgs []lockfile.Package, err error) fileReport {
	r := fileReport{Path: path, Type: typ, Ecosystem: eco, Packages: pkgs, err: err}
	if r.Packages == nil {
		r.Packages = []lockfile.Package{}
	}
	if err != nil {
		r.Error = err.Error()
		r.Code = errs.GetCode(err)
	}
	return r
}

// failures counts reports that carry an error.
func failures(reports []fileReport) int {
	n := 0
	for _, r := range reports {
		if r.err != nil {
			n++
		}
	}
	return n
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeReports renders reports in the requested format.
func writeReports(w io.Writer, format string, reports []fileReport) error {
	if format == outputJSON {
		return writeJSON(w, reports)
	}
	for _, r := range reports {
		if r.err != nil {
			printError(w, "%s", StyleTitle.Render(r.Path))
			printDetail(w, "%s", errs.UserMessage(r.err))
			if cause := unwrapCause(r.err); cause != "" {
				printDetail(w, "%s", cause)
			}
			continue
		}
		printSuccess(w, "%s %s", StyleTitle.Render(r.Path),
			StyleDim.Render(fmt.Sprintf("(%s, %s, %d packages)", r.Type, r.Ecosystem, len(r.Packages))))
		for _, p := range r.Packages {
			printPackage(w, p.Name, p.Version)
		}
	}
	return nil
}

// unwrapCause returns the message of the error wrapped by a coded error, if
// any.
func unwrapCause(err error) string {
	var e *errs.Error
	if errors.As(err, &e) && e.Cause != nil {
		return e.Cause.Error()
	}
	return ""
}
