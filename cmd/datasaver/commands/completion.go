package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(cmd *cobra.Command) error{
	"bash": func(cmd *cobra.Command) error {
		return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
	},
	"zsh": func(cmd *cobra.Command) error {
		return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
	},
	"fish": func(cmd *cobra.Command) error {
		return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
	},
	"powershell": func(cmd *cobra.Command) error {
		return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	},
}

// newCompletionCmd creates the completion subcommand
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for datasaver.

  bash:        source <(datasaver completion bash)
  zsh:         datasaver completion zsh > "${fpath[1]}/_datasaver"
  fish:        datasaver completion fish > ~/.config/fish/completions/datasaver.fish
  powershell:  datasaver completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Completion scripts do not depend on configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := completionShells[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
			return gen(cmd)
		},
	}
}
