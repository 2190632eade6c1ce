// Package cli implements the lockfile command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lockfile/pkg/buildinfo"
	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
	"github.com/matzehuels/lockfile/pkg/lockfile/formats"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "lockfile"

	outputText = "text"
	outputJSON = "json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Registry *lockfile.Registry

	output string
}

// New creates a new CLI instance with a default logger and every supported
// lockfile format registered.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Registry: formats.Default(),
		output:   outputText,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Lockfile extracts declared dependencies from package manifests",
		Long:         `Lockfile reads lockfiles and manifests from npm, PyPI, Maven, RubyGems, NuGet, Cargo, Go and Composer projects and reports the packages they declare in one canonical form.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.output, "output", "o", outputText, "output format (text, json)")
	_ = root.RegisterFlagCompletionFunc("output", completeOutputs)

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// outputFormat validates the --output flag.
func (c *CLI) outputFormat() (string, error) {
	switch c.output {
	case outputText, outputJSON:
		return c.output, nil
	}
	return "", errs.New(errs.ErrCodeInvalidInput, "unknown output format %q (want %s or %s)", c.output, outputText, outputJSON)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
