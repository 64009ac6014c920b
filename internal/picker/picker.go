package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/console"
	"github.com/diogo/gptchat/internal/history"
	"github.com/diogo/gptchat/internal/models"
)

// cancelInput is the reserved answer that backs out of the saved-chat picker.
const cancelInput = "0"

// Model lists the chat models offered by lister and asks until one is
// chosen. There is no cancel answer; Ctrl+C or end of input returns
// errors.ErrAborted. When the catalog is empty, fallback is used without
// asking.
func Model(ctx context.Context, in console.LineReader, out io.Writer, lister api.ModelLister, fallback string) (string, error) {
	available := api.FetchChatModels(ctx, lister, out)
	if len(available) == 0 {
		if fallback == "" {
			fallback = models.DefaultModel
		}
		console.Info(out, "No models found. Defaulting to %s.", fallback)
		return fallback, nil
	}

	console.Separator(out, "Available Models")
	for i, name := range available {
		fmt.Fprintf(out, "  %3d. %s\n", i+1, name)
	}
	fmt.Fprintln(out)

	for {
		line, err := in.Prompt("  Select a model (number or name): ")
		if err != nil {
			return "", err
		}

		res := Resolve(line, available)
		if res.Outcome == Selected {
			console.Success(out, "Using model: %s", res.Choice)
			return res.Choice, nil
		}
		report(out, res, "Model")
	}
}

// Loaded is a conversation picked from the saved-chat list.
type Loaded struct {
	Path     string
	Model    string
	Messages []models.Message
}

// SavedChat lists saved chats newest first and loads the one chosen.
// It returns nil when there are no saved chats or the user answers "0".
// A chat that fails to load is reported and the user is asked again.
func SavedChat(in console.LineReader, out io.Writer, store *history.Store) (*Loaded, error) {
	summaries, err := store.SummarizeAll()
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		console.Info(out, "No saved chats found.")
		return nil, nil
	}

	console.Separator(out, "Saved Chats")
	names := make([]string, len(summaries))
	for i, sum := range summaries {
		names[i] = sum.Name
		printSummary(out, i+1, sum)
	}
	fmt.Fprintf(out, "  %3d. Cancel\n\n", 0)

	for {
		line, err := in.Prompt("  Select a chat (number or name): ")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == cancelInput {
			return nil, nil
		}

		res := Resolve(line, names)
		if res.Outcome != Selected {
			report(out, res, "Chat")
			continue
		}

		path := summaries[indexOf(names, res.Choice)].Path
		model, messages, err := store.Load(path)
		if err != nil {
			console.Error(out, "Could not load %s: %v", res.Choice, err)
			continue
		}

		console.Success(out, "Loaded chat (%d messages, model: %s)", len(messages), model)
		return &Loaded{Path: path, Model: model, Messages: messages}, nil
	}
}

func printSummary(out io.Writer, n int, sum history.Summary) {
	fmt.Fprintf(out, "  %3d. %s\n", n, sum.Name)
	fmt.Fprintf(out, "       %s\n", console.DimStyle.Render(
		fmt.Sprintf("[%s] %s (%d msgs)", sum.Model, sum.SavedAt, sum.MessageCount)))
	if sum.Preview != "" {
		text := sum.Preview
		if sum.Truncated {
			text += "..."
		}
		fmt.Fprintf(out, "       %q\n", text)
	}
}

// report prints the retry message for a non-selected resolution.
func report(out io.Writer, res Resolution, noun string) {
	switch res.Outcome {
	case Retry:
	case InvalidNumber:
		console.Error(out, "Invalid number. Try again.")
	case Ambiguous:
		console.Error(out, "Multiple matches: %s", strings.Join(res.Matches, ", "))
		console.Hint(out, "Be more specific or use the number.")
	case NotFound:
		console.Error(out, "%s not found. Try again.", noun)
		if res.Suggestion != "" {
			console.Hint(out, "Did you mean %s?", res.Suggestion)
		}
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
