package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its cobra generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCommand prints a shell completion script. Document arguments
// complete to .json and .toml files.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionShells))
	for s := range completionShells {
		shells = append(shells, s)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for viewstack to stdout.

  $ source <(viewstack completion bash)
  $ viewstack completion zsh > "${fpath[1]}/_viewstack"
  $ viewstack completion fish > ~/.config/fish/completions/viewstack.fish
  PS> viewstack completion powershell | Out-String | Invoke-Expression

File arguments of show, select, dims, render and browse complete to view
documents (.json, .toml).`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// documentArgs completes the FILE argument of document commands.
func documentArgs(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}
