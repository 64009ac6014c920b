package api

import (
	"context"
	"fmt"
	"io"

	"github.com/diogo/gptchat/internal/models"
)

// FetchChatModels returns the sorted chat-capable models offered by the
// API. On any failure it reports the error to w and returns the fallback
// catalog; it never fails. The result may be empty when the API answers
// but offers no chat models.
func FetchChatModels(ctx context.Context, lister ModelLister, w io.Writer) []string {
	ids, err := lister.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(w, "\n  Could not fetch models: %v\n", err)
		return models.FallbackModels()
	}
	return models.FilterChatModels(ids)
}
