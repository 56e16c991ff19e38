package virtopt

import (
	"fmt"
	"io"
	"strings"

	"github.com/coreyberla/virtopt/util"
)

// PrintIntrospection writes the family's recognized sub-option names to
// w, columnized to the terminal width. This backs `--disk=?` style help
// output; the caller owns where it goes.
func PrintIntrospection(w io.Writer, familyName string) error {
	f, ok := LookupFamily(familyName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFamily, familyName)
	}

	names := f.Describe()
	width := util.TerminalWidth(80)

	colWidth := 0
	for _, name := range names {
		if len(name) > colWidth {
			colWidth = len(name)
		}
	}
	colWidth += 2
	perRow := (width - 2) / colWidth
	if perRow < 1 {
		perRow = 1
	}

	fmt.Fprintf(w, "%s options:\n", f.FlagName())
	for i, name := range names {
		if i%perRow == 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, name)
		if (i+1)%perRow == 0 || i == len(names)-1 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, strings.Repeat(" ", colWidth-len(name)))
		}
	}
	fmt.Fprintln(w)

	return nil
}
