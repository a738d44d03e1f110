// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todomatic/internal/tasklist"
)

// FormatHeading writes the remaining-count heading.
func FormatHeading(w io.Writer, label string) {
	fmt.Fprintln(w, label)
}

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {NAME}\n" (4-wide right-aligned number, two spaces, checkbox, name)
func FormatTask(w io.Writer, num int, task tasklist.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), NormalizeName(task.Name))
}

// FormatFilterBar renders every filter, marking the active one.
// Example: "[All]  Active  Complete"
func FormatFilterBar(active tasklist.Filter) string {
	parts := make([]string, len(tasklist.Filters))
	for i, f := range tasklist.Filters {
		if f == active {
			parts[i] = "[" + f.String() + "]"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "  ")
}

// Checkbox renders a completion flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeName normalizes a task name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
