package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/chat"
	"github.com/diogo/gptchat/internal/config"
	"github.com/diogo/gptchat/internal/console"
	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/history"
	"github.com/diogo/gptchat/internal/models"
	"github.com/diogo/gptchat/internal/picker"
	"github.com/diogo/gptchat/internal/prompt"
	"github.com/diogo/gptchat/internal/render"
)

type chatFlags struct {
	model   string
	verbose bool
}

// environment is the prepared data directory and configuration.
type environment struct {
	cfg        config.Config
	promptPath string
	envPath    string
	store      *history.Store
	verbose    bool
}

// prepareEnvironment loads the config, creates the data directory, the
// chats directory and the prompt file, and loads .env files.
func prepareEnvironment(d *Dependencies, verbose bool) (*environment, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	verbose = verbose || cfg.Verbose

	dir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if verbose {
		fmt.Fprintf(d.Err, "[verbose] Data directory: %s\n", dir)
	}

	promptPath, err := config.GetPromptPath()
	if err != nil {
		return nil, err
	}
	created, err := prompt.EnsureFile(promptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt file: %w", err)
	}
	if created && verbose {
		fmt.Fprintf(d.Err, "[verbose] Created %s\n", promptPath)
	}

	envPath, err := config.GetEnvPath()
	if err != nil {
		return nil, err
	}
	loaded, err := config.LoadEnvFiles(envPath, ".env")
	if err != nil {
		return nil, err
	}
	if verbose {
		for _, p := range loaded {
			fmt.Fprintf(d.Err, "[verbose] Loaded environment from %s\n", p)
		}
	}

	chatsDir, err := config.GetChatsDir()
	if err != nil {
		return nil, err
	}
	store, err := history.NewStore(chatsDir)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:        cfg,
		promptPath: promptPath,
		envPath:    envPath,
		store:      store,
		verbose:    verbose,
	}, nil
}

// resolveAPIKey returns the key from the environment or asks for it.
// An empty answer is a CredentialError.
func resolveAPIKey(d *Dependencies, in console.SecretReader, envPath string) (string, error) {
	if key := config.APIKeyFromEnv(); key != "" {
		return key, nil
	}

	fmt.Fprintf(d.Out, "\n  %s not found.\n", config.EnvAPIKey)
	fmt.Fprintf(d.Out, "  Set it in your environment or in %s\n\n", envPath)

	key, err := in.PasswordPrompt("  Enter your API key: ")
	key = strings.TrimSpace(key)
	if err != nil || key == "" {
		fmt.Fprintln(d.Out, "  No API key provided. Exiting.")
		return "", apierrors.NewCredentialError(config.EnvAPIKey)
	}
	if err := config.SetAPIKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// runChat is the interactive startup: resolve the key, offer to resume a
// saved chat, pick a model and run the chat loop.
func runChat(ctx context.Context, d *Dependencies, flags chatFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := prepareEnvironment(d, flags.verbose)
	if err != nil {
		return err
	}

	historyFile, err := config.GetInputHistoryPath()
	if err != nil {
		return err
	}
	in := d.NewInput(historyFile)
	defer in.Close()

	key, err := resolveAPIKey(d, in, env.envPath)
	if err != nil {
		return err
	}

	client, err := d.NewClient(key, env.cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	if c, ok := client.(*api.Client); ok && env.verbose {
		fmt.Fprintf(d.Err, "[verbose] Endpoint: %s\n", c.BaseURL())
	}

	fmt.Fprintf(d.Out, "\n  %s\n", console.TitleStyle.Render("gptchat "+Version))

	var resumed *picker.Loaded
	saved, err := env.store.List()
	if err != nil {
		return err
	}
	if len(saved) > 0 {
		resumed, err = offerResume(d, in, env.store)
		if errors.Is(err, apierrors.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	var (
		messages []models.Message
		chatFile string
		model    string
	)
	if resumed != nil {
		model, messages, chatFile = resumed.Model, resumed.Messages, resumed.Path
	}
	if flags.model != "" {
		model = flags.model
	}
	if model == "" {
		model, err = picker.Model(ctx, in, d.Out, client, config.FallbackModel(env.cfg))
		if errors.Is(err, apierrors.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if env.verbose {
		fmt.Fprintf(d.Err, "[verbose] Model: %s\n", model)
	}

	session := chat.New(model, messages, chatFile, chat.Options{
		Client:          client,
		Store:           env.store,
		Input:           in,
		Out:             d.Out,
		Log:             d.Err,
		PromptPath:      env.promptPath,
		Editor:          prompt.NewEditor(env.cfg.Editor),
		FallbackModel:   config.FallbackModel(env.cfg),
		Verbose:         env.verbose,
		RenderMarkdown:  env.cfg.RenderMarkdown && isStdoutTTY(),
		Render:          render.OptionsFromConfig(env.cfg.Markdown).WithWidth(getTerminalWidth() - 4),
		CopyToClipboard: env.cfg.CopyToClipboard,
	})
	return session.Run(ctx)
}

// offerResume asks whether to start fresh or resume a saved chat.
func offerResume(d *Dependencies, in console.LineReader, store *history.Store) (*picker.Loaded, error) {
	fmt.Fprintln(d.Out)
	console.Info(d.Out, "1. New chat")
	console.Info(d.Out, "2. Resume a saved chat")
	fmt.Fprintln(d.Out)

	choice, err := console.Ask(in, "  Choice: ")
	if err != nil {
		return nil, err
	}
	if choice != "2" {
		return nil, nil
	}
	return picker.SavedChat(in, d.Out, store)
}
