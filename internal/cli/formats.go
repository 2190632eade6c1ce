package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/lockfile/pkg/errors"
	"github.com/matzehuels/lockfile/pkg/lockfile"
)

type formatInfo struct {
	Type      string             `json:"type"`
	Ecosystem lockfile.Ecosystem `json:"ecosystem"`
}

// formatsCommand lists the registered lockfile formats in detection order.
func (c *CLI) formatsCommand() *cobra.Command {
	var ecosystem string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported lockfile formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}

			parsers := c.Registry.Parsers()
			if ecosystem != "" {
				eco, ok := lockfile.ParseEcosystem(ecosystem)
				if !ok {
					return errs.New(errs.ErrCodeInvalidInput, "unknown ecosystem %q", ecosystem)
				}
				parsers = c.Registry.ForEcosystem(eco)
			}

			infos := make([]formatInfo, 0, len(parsers))
			for _, p := range parsers {
				infos = append(infos, formatInfo{Type: p.Type(), Ecosystem: p.Ecosystem()})
			}

			out := cmd.OutOrStdout()
			if format == outputJSON {
				return writeJSON(out, infos)
			}
			for _, info := range infos {
				printKeyValue(out, info.Type, info.Ecosystem.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&ecosystem, "ecosystem", "e", "", "only list formats of this ecosystem")
	_ = cmd.RegisterFlagCompletionFunc("ecosystem", completeEcosystems)

	return cmd
}
