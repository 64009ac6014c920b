// Package commands provides CLI commands for gptchat.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/gptchat/internal/console"
)

var (
	// Global flags
	modelFlag   string
	verboseFlag bool
	noColorFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// deps is replaced in tests.
var deps = NewDependencies()

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gptchat",
	Short: "Interactive chat client for OpenAI-compatible APIs",
	Long: `gptchat is an interactive terminal chat client for the OpenAI chat
completions API. Replies stream as they are generated and conversations
can be saved, resumed and exported.

Examples:
  gptchat                       Pick a model and start chatting
  gptchat -m gpt-4o             Skip the model picker
  gptchat history list          List saved chats
  gptchat history export 1      Print the newest chat as Markdown
  gptchat models                List available chat models
  gptchat prompt --edit         Edit the system prompt`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			console.DisableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "gptchat %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runChat(cmd.Context(), deps, chatFlags{model: modelFlag, verbose: verboseFlag})
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (skips the model picker)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print diagnostic output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	rootCmd.Flags().Bool("version", false, "Show version and exit")

	rootCmd.AddCommand(NewHistoryCmd(deps))
	rootCmd.AddCommand(NewModelsCmd(deps))
	rootCmd.AddCommand(NewPromptCmd(deps))
	rootCmd.AddCommand(NewConfigCmd(deps))
}
