package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a console message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Reporter receives user-facing progress messages.
type Reporter interface {
	Report(msg string, level Level)
}

// Console writes "[icon] message" lines, colored when the writer is a terminal.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	icons  map[Level]string
	styles map[Level]lipgloss.Style
	header lipgloss.Style
}

// NewConsole returns a Console writing to w. A nil writer means stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)
	bold := r.NewStyle().Bold(true)

	return &Console{
		out: w,
		icons: map[Level]string{
			LevelInfo:    "[*]",
			LevelSuccess: "[+]",
			LevelWarning: "[!]",
			LevelError:   "[x]",
		},
		styles: map[Level]lipgloss.Style{
			LevelInfo:    bold.Foreground(lipgloss.Color("5")),
			LevelSuccess: bold.Foreground(lipgloss.Color("2")),
			LevelWarning: bold.Foreground(lipgloss.Color("214")),
			LevelError:   bold.Foreground(lipgloss.Color("1")),
		},
		header: bold.Foreground(lipgloss.Color("6")),
	}
}

// Report prints msg with the icon and color of level.
func (c *Console) Report(msg string, level Level) {
	icon, ok := c.icons[level]
	if !ok {
		icon, level = c.icons[LevelInfo], LevelInfo
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", icon, c.styles[level].Render(msg))
}

// Header prints a section title.
func (c *Console) Header(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\n%s\n", c.header.Render(title))
}

// Println prints an unstyled line.
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Info(msg string)    { c.Report(msg, LevelInfo) }
func (c *Console) Success(msg string) { c.Report(msg, LevelSuccess) }
func (c *Console) Warning(msg string) { c.Report(msg, LevelWarning) }
func (c *Console) Error(msg string)   { c.Report(msg, LevelError) }
