package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal checks if the writer is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// UseColors decides whether output to w should be colored.
//
// NO_COLOR disables colors, FORCE_COLOR enables them, otherwise colors are
// used only when w is a terminal.
func UseColors(w io.Writer, noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsTerminal(w)
}
