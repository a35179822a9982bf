package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// dryRunInvoker lists the commands and the invocation instead of spawning it.
type dryRunInvoker struct {
	out      io.Writer
	commands []string
	// width caps each listing line; zero means unlimited.
	width int
}

func (d *dryRunInvoker) Invoke(name string, args []string) error {
	fmt.Fprintf(d.out, "%d commands:\n", len(d.commands))
	if err := writeListing(d.out, d.commands, d.width); err != nil {
		return err
	}
	script := ""
	if len(args) > 0 {
		script = args[0]
	}
	_, err := fmt.Fprintf(d.out, "would run: %s %s <combined commands>\n", name, script)
	return err
}

func writeListing(w io.Writer, commands []string, width int) error {
	digits := len(fmt.Sprint(len(commands)))
	for i, command := range commands {
		prefix := fmt.Sprintf("%*d  ", digits, i+1)
		if command == "" {
			command = "(blank)"
		}
		if width > 0 {
			limit := width - runewidth.StringWidth(prefix)
			if limit < 1 {
				limit = 1
			}
			command = runewidth.Truncate(command, limit, "...")
		}
		if _, err := fmt.Fprintln(w, prefix+command); err != nil {
			return err
		}
	}
	return nil
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if !writerIsTerminal(w) {
		return 0
	}
	width, _, err := term.GetSize(int(w.(*os.File).Fd()))
	if err != nil {
		return 0
	}
	return width
}
