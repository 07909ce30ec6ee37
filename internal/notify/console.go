package notify

import (
	"io"

	"github.com/fatih/color"
)

// Console prints toasts as colored lines, for the CLI.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(level Level, message string) {
	var attr color.Attribute
	prefix := "•"
	switch level {
	case LevelSuccess:
		attr, prefix = color.FgGreen, "✔"
	case LevelWarning:
		attr, prefix = color.FgYellow, "!"
	case LevelError:
		attr, prefix = color.FgRed, "✘"
	default:
		attr = color.FgCyan
	}
	color.New(attr).Fprintln(c.out, prefix+" "+message)
}
