package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lockfile/internal/scan"
)

type scanOpts struct {
	workers int
	maxSize int64
	skip    []string
}

// scanCommand creates the scan command for walking a directory tree.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Find and parse every lockfile below a directory",
		Long: `Walk a directory tree, parse every file a supported format claims, and
report the packages per file. Files that fail to parse are reported without
stopping the scan.`,
		Example: `  lockfile scan
  lockfile scan ./services --workers 16 -o json
  lockfile scan . --skip .git,node_modules,testdata`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			var spin *Spinner
			if format == outputText && isTerminal(os.Stderr) {
				spin = newSpinner(ctx, os.Stderr, "Scanning "+root+"...")
				spin.Start()
			}
			reports, err := c.runScan(ctx, root, opts)
			if spin != nil {
				stopSpinner(spin, os.Stderr, len(reports), err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := writeReports(out, format, reports); err != nil {
				return err
			}
			if format == outputText {
				printSummary(out, reports)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", scan.DefaultWorkers, "number of files parsed concurrently")
	cmd.Flags().Int64Var(&opts.maxSize, "max-size", scan.DefaultMaxFileSize, "skip files larger than this many bytes")
	cmd.Flags().StringSliceVar(&opts.skip, "skip", nil, "directory names to skip (replaces the defaults)")

	return cmd
}

func (c *CLI) runScan(ctx context.Context, root string, opts scanOpts) ([]fileReport, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s := scan.New(c.Registry, scan.Options{
		Workers:     opts.workers,
		MaxFileSize: opts.maxSize,
		SkipDirs:    opts.skip,
		Logger:      logger,
	})
	results, err := s.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	reports := make([]fileReport, len(results))
	for i, r := range results {
		reports[i] = newReport(r.Path, r.Type, r.Ecosystem, r.Packages, r.Err)
	}
	prog.done("Scanned %d files", len(reports))
	return reports, nil
}

// stopSpinner clears the spinner, leaving a success line in its place when
// the walk completed.
func stopSpinner(s *Spinner, w io.Writer, files int, err error) {
	if err != nil || s.Cancelled() {
		s.Stop()
		return
	}
	s.StopWithSuccess(w, fmt.Sprintf("Found %d lockfiles", files))
}

// printSummary prints totals after a text-mode scan.
func printSummary(w io.Writer, reports []fileReport) {
	total := 0
	for _, r := range reports {
		total += len(r.Packages)
	}
	switch failed := failures(reports); {
	case len(reports) == 0:
		printWarning(w, "no lockfiles found")
	case failed > 0:
		printWarning(w, "%d of %d files could not be parsed", failed, len(reports))
		printInfo(w, "%d packages in %d files", total, len(reports)-failed)
	default:
		printInfo(w, "%d packages in %d files", total, len(reports))
	}
}
