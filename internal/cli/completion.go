package cli

import (
	"fmt"
	"os"

	"github.com/billmal071/finna/internal/config"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for finna.

To load completions:

Bash:
  $ source <(finna completion bash)

Zsh:
  $ finna completion zsh > "${fpath[1]}/_finna"

Fish:
  $ finna completion fish | source

PowerShell:
  PS> finna completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// Values offered for the search options
var (
	searchTypes = []string{
		"AllFields\tall fields",
		"Title\ttitle",
		"Author\tauthor",
		"Subject\tsubject",
		"isn\tISBN or ISSN",
	}
	languages = []string{
		"fi\tFinnish",
		"sv\tSwedish",
		"en-gb\tEnglish",
	}
	sortOrders = []string{
		"relevance,id asc\trelevance",
		"main_date_str desc\tnewest first",
		"main_date_str asc\toldest first",
		"title\ttitle",
		"author\tauthor",
	}
)

// registerCompletions attaches completions to flags bound in root.go
func registerCompletions() {
	completeWith := func(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}
	rootCmd.RegisterFlagCompletionFunc("type", completeWith(searchTypes))
	rootCmd.RegisterFlagCompletionFunc("lng", completeWith(languages))
	rootCmd.RegisterFlagCompletionFunc("sort", completeWith(sortOrders))
	configGetCmd.ValidArgsFunction = completeConfigKeys
	configSetCmd.ValidArgsFunction = completeConfigKeys
}

// completeConfigKeys completes the first argument with known config keys
func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}
