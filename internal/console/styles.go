package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorTextDim = lipgloss.Color("#565f89")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorAccent  = lipgloss.Color("#bb9af7")
	colorError   = lipgloss.Color("#f7768e")
	colorWarning = lipgloss.Color("#e0af68")
)

// Styles shared by the pickers and the chat loop. They carry no padding
// or margins so piped output stays plain text.
var (
	TitleStyle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	UserLabel      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	AssistantLabel = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	SystemLabel    = lipgloss.NewStyle().Foreground(colorWarning)
	DimStyle       = lipgloss.NewStyle().Foreground(colorTextDim)
	SuccessStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	ErrorStyle     = lipgloss.NewStyle().Foreground(colorError)
)

// Separator prints a section header, or a blank line when title is empty.
func Separator(w io.Writer, title string) {
	if title == "" {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "\n  %s\n", TitleStyle.Render("-- "+title+" --"))
}

// Info prints an indented plain line.
func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// Hint prints an indented dim line.
func Hint(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", DimStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints an indented line in the success color.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an indented line in the error color.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// DisableColor makes every style render as plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
