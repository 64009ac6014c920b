package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/diogo/gptchat/internal/config"
	"github.com/diogo/gptchat/internal/console"
	apierrors "github.com/diogo/gptchat/internal/errors"
)

// formatErrorMessage renders err with any status or endpoint it carries
// and a hint for the common failure classes.
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(console.ErrorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(console.DimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(console.DimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if hint := errorHint(err); hint != "" {
		sb.WriteString(console.DimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

func errorHint(err error) string {
	var parseErr *apierrors.ParseError
	switch {
	case errors.Is(err, apierrors.ErrNoCredentials):
		envPath, _ := config.GetEnvPath()
		return fmt.Sprintf("Export %s or add it to %s", config.EnvAPIKey, envPath)
	case apierrors.IsAuthError(err):
		return fmt.Sprintf("Check that %s is valid for this endpoint", config.EnvAPIKey)
	case apierrors.IsRateLimitError(err):
		return "You've hit a rate limit. Wait a moment and try again"
	case apierrors.IsTimeoutError(err):
		return "Request timed out. Try again or check your connection"
	case apierrors.IsNetworkError(err):
		return "Check your internet connection and try again"
	case errors.As(err, &parseErr):
		return "The chat file may be corrupted; inspect or delete it"
	}
	return ""
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
