// Package completion provides the shell completion command.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for bbc.

To load completions in your current shell session:

  source <(bbc completion bash)
  source <(bbc completion zsh)
  bbc completion fish | source
  bbc completion powershell | Out-String | Invoke-Expression

To load completions for every new session, write the script to your shell's
completion directory, e.g.:

  bbc completion bash > /etc/bash_completion.d/bbc
  bbc completion zsh > "${fpath[1]}/_bbc"
  bbc completion fish > ~/.config/fish/completions/bbc.fish`,
		Example: `  # Load in current session
  source <(bbc completion bash)

  # Install permanently (macOS with Homebrew)
  bbc completion bash > $(brew --prefix)/etc/bash_completion.d/bbc`,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
