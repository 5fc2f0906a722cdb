package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kintree.

Bash:
  $ source <(kintree completion bash)

Zsh:
  $ kintree completion zsh > "${fpath[1]}/_kintree"

Fish:
  $ kintree completion fish > ~/.config/fish/completions/kintree.fish

PowerShell:
  PS> kintree completion powershell | Out-String | Invoke-Expression

Member arguments (edit, delete, add-child, ...) complete to ids from the
configured store.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}
}

// completeMembers completes the first positional argument to member ids,
// described by full name.
func (c *CLI) completeMembers(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := c.openSession(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer s.close()

	var out []string
	for _, m := range s.tree.Members() {
		if strings.HasPrefix(m.ID, toComplete) {
			out = append(out, m.ID+"\t"+m.FullName())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeMemberFlag registers member completion for relationship flags.
func (c *CLI) completeMemberFlag(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.RegisterFlagCompletionFunc(name, func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return c.completeMembers(cmd, nil, toComplete)
		})
	}
}

// withMemberCompletion enables id completion for relationship flags and,
// when positional is set, for the first argument.
func (c *CLI) withMemberCompletion(cmd *cobra.Command, positional bool) *cobra.Command {
	if positional {
		cmd.ValidArgsFunction = c.completeMembers
	}
	for _, name := range []string{"father", "mother", "spouse"} {
		if cmd.Flags().Lookup(name) != nil {
			c.completeMemberFlag(cmd, name)
		}
	}
	return cmd
}
