// Package picker resolves user choices against numbered lists and runs
// the interactive model and saved-chat pickers.
package picker

import (
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Outcome classifies how a line of input resolved.
type Outcome int

const (
	// Selected means Resolution.Choice holds the chosen candidate.
	Selected Outcome = iota
	// Retry means the input was empty.
	Retry
	// InvalidNumber means a numeric input fell outside the list.
	InvalidNumber
	// Ambiguous means several candidates contain the input.
	Ambiguous
	// NotFound means no candidate contains the input.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Retry:
		return "retry"
	case InvalidNumber:
		return "invalid number"
	case Ambiguous:
		return "ambiguous"
	case NotFound:
		return "not found"
	}
	return "unknown"
}

// Resolution is the result of Resolve.
type Resolution struct {
	Outcome Outcome
	Choice  string
	// Matches lists the candidates that matched an ambiguous input.
	Matches []string
	// Suggestion is the closest fuzzy match for a NotFound input, if any.
	Suggestion string
}

// Resolve maps raw input onto candidates. A numeric input is a 1-based
// index. Otherwise an exact match wins, then a unique case-insensitive
// substring match.
func Resolve(input string, candidates []string) Resolution {
	input = strings.TrimSpace(input)
	if input == "" {
		return Resolution{Outcome: Retry}
	}

	if isDigits(input) {
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(candidates) {
			return Resolution{Outcome: InvalidNumber}
		}
		return Resolution{Outcome: Selected, Choice: candidates[n-1]}
	}

	for _, c := range candidates {
		if c == input {
			return Resolution{Outcome: Selected, Choice: c}
		}
	}

	needle := strings.ToLower(input)
	var matches []string
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return Resolution{Outcome: NotFound, Suggestion: suggest(input, candidates)}
	case 1:
		return Resolution{Outcome: Selected, Choice: matches[0]}
	}
	return Resolution{Outcome: Ambiguous, Matches: matches}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// suggest returns the best fuzzy match for input, or "".
func suggest(input string, candidates []string) string {
	found := fuzzy.Find(input, candidates)
	if len(found) == 0 {
		return ""
	}
	return found[0].Str
}
