// Package scan walks a directory tree and parses every lockfile it finds.
//
// Files are matched against a [lockfile.Registry] by basename and parsed
// by a bounded pool of workers. A file that fails to parse does not stop the
// walk; its error is recorded on its [Result].
package scan

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
	"github.com/matzehuels/lockfile/pkg/observability"
)

const (
	DefaultWorkers     = 8        // Default number of concurrent parsers
	DefaultMaxFileSize = 16 << 20 // Default per-file size limit (16 MiB)
)

// DefaultSkipDirs are directory names that hold installed or generated
// content rather than manifests.
var DefaultSkipDirs = []string{".git", "node_modules", "vendor", "bin", "obj", "target", ".venv"}

// Options configures a Scanner.
type Options struct {
	Workers     int         // Concurrent parsers (default: 8)
	MaxFileSize int64       // Files above this size are not read (default: 16 MiB)
	SkipDirs    []string    // Directory names never descended into (default: DefaultSkipDirs)
	Logger      *log.Logger // Debug output (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.SkipDirs == nil {
		opts.SkipDirs = DefaultSkipDirs
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Result is the outcome for one claimed file.
type Result struct {
	Path      string             `json:"path"` // relative to the scan root, slash-separated
	Type      string             `json:"type"`
	Ecosystem lockfile.Ecosystem `json:"ecosystem"`
	Packages  []lockfile.Package `json:"packages"`
	Err       error              `json:"-"`
}

// Scanner finds and parses lockfiles below a root directory.
type Scanner struct {
	reg  *lockfile.Registry
	opts Options
}

// New creates a Scanner that dispatches files through reg.
func New(reg *lockfile.Registry, opts Options) *Scanner {
	return &Scanner{reg: reg, opts: opts.WithDefaults()}
}

type candidate struct {
	path   string
	rel    string
	parser lockfile.Parser
}

// Scan walks root and parses every file the registry claims. Results are
// sorted by path. The returned error is non-nil only when root cannot be
// walked or ctx is cancelled; per-file failures are reported in
// Result.Err.
func (s *Scanner) Scan(ctx context.Context, root string) (results []Result, err error) {
	hooks := observability.Scan()
	start := time.Now()
	hooks.OnScanStart(ctx, root)
	defer func() {
		hooks.OnScanComplete(ctx, root, len(results), time.Since(start), err)
	}()

	found, err := s.walk(ctx, root)
	if err != nil {
		return nil, err
	}
	s.opts.Logger.Debug("walk complete", "root", root, "files", len(found))

	results = make([]Result, len(found))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, c := range found {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.parse(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.opts.Logger.Debug("scan complete", "files", len(results), "elapsed", time.Since(start).Round(time.Millisecond))
	return results, nil
}

func (s *Scanner) walk(ctx context.Context, root string) ([]candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "scan %s", root)
	}
	if !info.IsDir() {
		return nil, errs.New(errs.ErrCodeInvalidPath, "scan %s: not a directory", root)
	}

	var found []candidate
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.opts.Logger.Warn("skipping unreadable entry", "path", path, "err", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && slices.Contains(s.opts.SkipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		p, err := s.reg.Detect(d.Name())
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		found = append(found, candidate{path: path, rel: filepath.ToSlash(rel), parser: p})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(found, func(a, b candidate) int { return strings.Compare(a.rel, b.rel) })
	return found, nil
}

func (s *Scanner) parse(ctx context.Context, c candidate) (res Result) {
	res = Result{Path: c.rel, Type: c.parser.Type(), Ecosystem: c.parser.Ecosystem()}
	start := time.Now()
	defer func() {
		observability.Scan().OnFileParsed(ctx, res.Path, res.Type, len(res.Packages), time.Since(start), res.Err)
	}()

	info, err := os.Stat(c.path)
	if err != nil {
		res.Err = errs.Wrap(errs.ErrCodeInvalidPath, err, "stat %s", c.rel)
		return res
	}
	if info.Size() > s.opts.MaxFileSize {
		res.Err = errs.New(errs.ErrCodeFileTooLarge, "%s is %d bytes, limit is %d", c.rel, info.Size(), s.opts.MaxFileSize)
		s.opts.Logger.Warn("file too large", "path", c.rel, "size", info.Size())
		return res
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		res.Err = errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", c.rel)
		return res
	}

	pkgs, err := safeParse(c.parser, data)
	if err != nil {
		res.Err = err
		s.opts.Logger.Debug("parse failed", "path", c.rel, "type", res.Type, "err", err)
		return res
	}
	res.Packages = pkgs
	s.opts.Logger.Debug("parsed", "path", c.rel, "type", res.Type, "packages", len(pkgs))
	return res
}

// safeParse runs p.Parse, turning a panic into an INTERNAL_ERROR so one bad
// parser cannot take down the whole scan.
func safeParse(p lockfile.Parser, data []byte) (pkgs []lockfile.Package, err error) {
	defer func() {
		if r := recover(); r != nil {
			pkgs = nil
			err = errs.New(errs.ErrCodeInternal, "%s parser panicked: %v", p.Type(), r)
		}
	}()
	return p.Parse(data)
}
