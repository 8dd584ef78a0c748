package ui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 80

// Logger writes tagged status lines like "[OK] map is valid".
// Errors go to the error writer; everything else goes to the output writer.
type Logger struct {
	out    io.Writer
	errOut io.Writer
	width  int
	styled bool

	infoStyle   lipgloss.Style
	okStyle     lipgloss.Style
	warnStyle   lipgloss.Style
	errorStyle  lipgloss.Style
	headerStyle lipgloss.Style
}

// NewLogger builds a logger. Styling is enabled only when out is a terminal.
func NewLogger(out, errOut io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = out
	}
	return &Logger{
		out:         out,
		errOut:      errOut,
		width:       TerminalWidth(out),
		styled:      ansiEnabled(out),
		infoStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
	}
}

// Info logs an informational line.
func (logger *Logger) Info(message string) {
	logger.line(logger.out, logger.infoStyle, "[INFO]", message)
}

// Success logs a success line.
func (logger *Logger) Success(message string) {
	logger.line(logger.out, logger.okStyle, "[OK]", message)
}

// Warn logs a warning line.
func (logger *Logger) Warn(message string) {
	logger.line(logger.out, logger.warnStyle, "[WARN]", message)
}

// Error logs an error line to the error writer.
func (logger *Logger) Error(message string) {
	logger.line(logger.errOut, logger.errorStyle, "[ERROR]", message)
}

// Header logs a bold section title preceded by a blank line.
func (logger *Logger) Header(title string) {
	io.WriteString(logger.out, "\n"+logger.render(logger.headerStyle, title)+"\n")
}

// Text logs an indented, wrapped block without a tag.
func (logger *Logger) Text(value string, indent int) {
	io.WriteString(logger.out, ReflowIndentedText(value, logger.width, indent)+"\n")
}

func (logger *Logger) line(w io.Writer, style lipgloss.Style, tag, message string) {
	prefix := logger.render(style, tag) + " "
	body := ReflowIndentedText(message, logger.width, len(tag)+1)
	body = strings.TrimLeft(body, " ")
	io.WriteString(w, prefix+body+"\n")
}

func (logger *Logger) render(style lipgloss.Style, value string) string {
	if !logger.styled {
		return value
	}
	return style.Render(value)
}

// TerminalWidth returns the width of w when it is a terminal, or a default.
func TerminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func ansiEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
