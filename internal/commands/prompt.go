package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/gptchat/internal/prompt"
)

// NewPromptCmd creates the prompt command.
func NewPromptCmd(d *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Show or edit the system prompt",
		Long: `Print the path of the system prompt file and the prompt that will be
sent, with comment lines removed. Use --edit to open it in an editor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepareEnvironment(d, verboseFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if edit, _ := cmd.Flags().GetBool("edit"); edit {
				if _, err := prompt.NewEditor(env.cfg.Editor).Open(env.promptPath); err != nil {
					return err
				}
			}

			text, err := prompt.Load(env.promptPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "File: %s\n\n", env.promptPath)
			if text == "" {
				fmt.Fprintln(out, "(empty)")
				return nil
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
	cmd.Flags().BoolP("edit", "e", false, "Open the prompt file in an editor first")
	return cmd
}
