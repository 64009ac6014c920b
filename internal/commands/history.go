package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/gptchat/internal/config"
	"github.com/diogo/gptchat/internal/history"
	"github.com/diogo/gptchat/internal/picker"
	"github.com/diogo/gptchat/internal/render"
)

// NewHistoryCmd creates the history command tree.
func NewHistoryCmd(d *Dependencies) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved chats",
		Long: `View and manage the chats saved with /save.

A chat can be named by its number in 'history list' (1 is the newest),
by its file name, or by any unique part of the file name.`,
	}

	historyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved chats, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	})
	historyCmd.AddCommand(&cobra.Command{
		Use:   "show <chat>",
		Short: "Show a saved chat",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	})
	historyCmd.AddCommand(&cobra.Command{
		Use:   "delete <chat>",
		Short: "Delete a saved chat",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	})

	exportCmd := &cobra.Command{
		Use:   "export <chat>",
		Short: "Export a saved chat as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryExport,
	}
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	historyCmd.AddCommand(exportCmd)

	historyCmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Find saved chats containing text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHistorySearch,
	})

	return historyCmd
}

func openStore() (*history.Store, error) {
	dir, err := config.GetChatsDir()
	if err != nil {
		return nil, err
	}
	store, err := history.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// resolveChat maps a list number, file name or name fragment to a path.
func resolveChat(store *history.Store, arg string) (string, error) {
	paths, err := store.List()
	if err != nil {
		return "", err
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}

	res := picker.Resolve(arg, names)
	switch res.Outcome {
	case picker.Selected:
		for i, name := range names {
			if name == res.Choice {
				return paths[i], nil
			}
		}
	case picker.InvalidNumber:
		return "", fmt.Errorf("no chat number %s (have %d)", arg, len(names))
	case picker.Ambiguous:
		return "", fmt.Errorf("%q matches several chats: %s", arg, strings.Join(res.Matches, ", "))
	}
	return "", fmt.Errorf("chat not found: %s", arg)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	summaries, err := store.SummarizeAll()
	if err != nil {
		return fmt.Errorf("failed to list chats: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No saved chats found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tNAME\tMODEL\tMESSAGES\tFIRST MESSAGE")
	_, _ = fmt.Fprintln(w, "-\t----\t-----\t--------\t-------------")

	for i, sum := range summaries {
		preview := sum.Preview
		if sum.Truncated {
			preview += "..."
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			i+1, sum.Name, sum.Model, sum.MessageCount, preview)
	}

	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	path, err := resolveChat(store, args[0])
	if err != nil {
		return err
	}

	doc, err := store.ExportMarkdown(path)
	if err != nil {
		return err
	}

	if isStdoutTTY() {
		cfg, _ := config.LoadConfig()
		opts := render.OptionsFromConfig(cfg.Markdown).WithWidth(getTerminalWidth())
		doc = render.MarkdownOrPlain(doc, opts)
	}

	fmt.Fprintln(cmd.OutOrStdout(), doc)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	path, err := resolveChat(store, args[0])
	if err != nil {
		return err
	}

	if err := store.Delete(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted chat: %s\n", filepath.Base(path))
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	path, err := resolveChat(store, args[0])
	if err != nil {
		return err
	}

	doc, err := store.ExportMarkdown(path)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", filepath.Base(path), output)
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results, err := store.Search(query)
	if err != nil {
		return fmt.Errorf("failed to search chats: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No chats contain %q.\n", query)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tMODEL\tMATCH")
	for _, r := range results {
		snippet := strings.ReplaceAll(r.MatchSnippet, "\n", " ")
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", filepath.Base(r.Path), r.Model, snippet)
	}
	return w.Flush()
}
