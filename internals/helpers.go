package internals

import (
	"errors"
	"fmt"
	"strings"
)

// Snippet renders err against the source it came from, with the offending line,
// one line of context on each side and a caret under the column.
// errors that aren't *Error, or that carry no position, come back as their message.
func Snippet(err error, src string) string {
	var e *Error
	if !errors.As(err, &e) || e.Row == 0 {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	row := clamp(e.Row, 1, len(lines))
	col := max(e.Col, 1)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Error())
	if row > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", row-1, lines[row-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", row, lines[row-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if row < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", row+1, lines[row])
	}
	return b.String()
}

// Colorize wraps the position prefix of an error message in the grey used by the cli
func Colorize(msg string) string {
	idx := strings.Index(msg, ": ")
	if idx < 0 || !strings.Contains(msg[:idx], ":") {
		return "\033[1;31m" + msg + "\033[0m"
	}
	return "\033[1;90m" + msg[:idx+1] + "\033[0m" + "\033[1;31m" + msg[idx+1:] + "\033[0m"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
