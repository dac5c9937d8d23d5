package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Console prints styled status lines for humans. Colours are dropped
// automatically when the writer is not a terminal.
type Console struct {
	out io.Writer
	tty bool

	success lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func New(out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		tty:     isTerminal(out),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted:   r.NewStyle().Faint(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) Success(format string, args ...any) {
	c.println(c.success, format, args...)
}

func (c *Console) Warn(format string, args ...any) {
	c.println(c.warn, format, args...)
}

func (c *Console) Info(format string, args ...any) {
	c.println(c.info, format, args...)
}

func (c *Console) Error(format string, args ...any) {
	c.println(c.err, format, args...)
}

func (c *Console) println(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf(format, args...)))
}
