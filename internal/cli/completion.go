package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lockfile/pkg/lockfile"
)

// completionShells maps each supported shell to its cobra generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand prints a shell completion script. The script also
// completes --type, --ecosystem and --output values.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell to stdout.

  $ source <(lockfile completion bash)
  $ lockfile completion zsh > "${fpath[1]}/_lockfile"
  $ lockfile completion fish > ~/.config/fish/completions/lockfile.fish
  PS> lockfile completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeTypes offers every registered format identifier.
func (c *CLI) completeTypes(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	parsers := c.Registry.Parsers()
	types := make([]string, len(parsers))
	for i, p := range parsers {
		types[i] = p.Type()
	}
	return types, cobra.ShellCompDirectiveNoFileComp
}

func completeEcosystems(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	ecos := lockfile.Ecosystems()
	names := make([]string, len(ecos))
	for i, e := range ecos {
		names[i] = e.String()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeOutputs(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{outputText, outputJSON}, cobra.ShellCompDirectiveNoFileComp
}
