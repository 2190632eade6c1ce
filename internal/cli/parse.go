package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

type parseOpts struct {
	typ string
}

// parseCommand creates the parse command for reading individual files.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Extract packages from lockfiles",
		Long: `Extract the declared packages from one or more lockfiles or manifests.

The format is detected from each file name. Use --type to force a format
for files with unusual names; "lockfile formats" lists the identifiers.`,
		Example: `  lockfile parse package-lock.json
  lockfile parse -o json src/App/App.csproj src/App/packages.lock.json
  lockfile parse --type requirements.txt deps/prod.pip`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			reports, err := c.runParse(ctx, args, opts)
			if err != nil {
				return err
			}
			if err := writeReports(cmd.OutOrStdout(), format, reports); err != nil {
				return err
			}
			if n := failures(reports); n > 0 {
				return fmt.Errorf("%d of %d files could not be parsed", n, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.typ, "type", "t", "", "force a lockfile format instead of detecting it")
	_ = cmd.RegisterFlagCompletionFunc("type", c.completeTypes)

	return cmd
}

func (c *CLI) runParse(ctx context.Context, paths []string, opts parseOpts) ([]fileReport, error) {
	logger := loggerFromContext(ctx)

	var forced lockfile.Parser
	if opts.typ != "" {
		p, ok := c.Registry.Lookup(opts.typ)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidInput, "unknown lockfile format %q", opts.typ)
		}
		forced = p
	}

	reports := make([]fileReport, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := forced
		if p == nil {
			detected, err := c.Registry.Detect(path)
			if err != nil {
				reports = append(reports, newReport(path, "", "", nil, err))
				continue
			}
			p = detected
		}

		data, err := os.ReadFile(path)
		if err != nil {
			readErr := errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", filepath.Base(path))
			reports = append(reports, newReport(path, p.Type(), p.Ecosystem(), nil, readErr))
			continue
		}

		logger.Debug("parsing", "path", path, "type", p.Type(), "bytes", len(data))
		pkgs, err := p.Parse(data)
		reports = append(reports, newReport(path, p.Type(), p.Ecosystem(), pkgs, err))
	}
	return reports, nil
}
