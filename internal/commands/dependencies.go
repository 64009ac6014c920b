package commands

import (
	"io"
	"os"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/config"
	"github.com/diogo/gptchat/internal/console"
)

// Input is the interactive input used during startup and by the chat loop.
type Input interface {
	console.LineReader
	console.SecretReader
	io.Closer
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewClient builds the API client once the key is known.
	NewClient func(apiKey string, cfg config.Config) (api.ChatClient, error)

	// NewInput opens line input with history persisted to historyFile.
	NewInput func(historyFile string) Input

	Out io.Writer
	Err io.Writer
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newAPIClient,
		NewInput: func(historyFile string) Input {
			return console.NewLiner(historyFile)
		},
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

func newAPIClient(apiKey string, cfg config.Config) (api.ChatClient, error) {
	return api.NewClient(apiKey, api.WithBaseURL(config.ResolveBaseURL(cfg)))
}
