package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/config"
	apierrors "github.com/diogo/gptchat/internal/errors"
)

// NewModelsCmd creates the models command.
func NewModelsCmd(d *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available chat models",
		Long: `List the chat-capable models offered by the API, sorted by name.
When the API cannot be reached a built-in fallback list is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepareEnvironment(d, verboseFlag)
			if err != nil {
				return err
			}

			key := config.APIKeyFromEnv()
			if key == "" {
				return apierrors.NewCredentialError(config.EnvAPIKey)
			}

			client, err := d.NewClient(key, env.cfg)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			for _, id := range api.FetchChatModels(cmd.Context(), client, cmd.ErrOrStderr()) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
