package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"todomatic/internal/idgen"
	"todomatic/internal/tasklist"
)

// TaskRef identifies a task on the command line.
type TaskRef struct {
	Num int    // 1-based position in the collection, 0 if ID is set
	ID  string // literal task id
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference.
//
// Accepted forms:
//  1. all digits (e.g. 3) → position in the collection as printed by list
//  2. a literal id starting with "task-" → passed to the store as-is
//
// Anything else is an invalid task reference.
func ParseTaskRef(arg string) (TaskRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Num: num}, nil
	}

	if strings.HasPrefix(arg, idgen.Prefix) && len(arg) > len(idgen.Prefix) {
		return TaskRef{ID: arg}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// Resolve maps the reference to a task id in tasks.
// Positions must be in range; literal ids are returned unchecked so the store
// can treat unknown ids as no-ops.
func (r TaskRef) Resolve(tasks []tasklist.Task) (string, error) {
	if r.ID != "" {
		return r.ID, nil
	}
	if r.Num < 1 || r.Num > len(tasks) {
		return "", fmt.Errorf("task number out of range: %d", r.Num)
	}
	return tasks[r.Num-1].ID, nil
}

// resolveArg parses and resolves the first positional argument, printing a
// user-facing error on failure.
func resolveArg(args []string, tasks []tasklist.Task, errOut io.Writer) (string, bool) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return "", false
	}
	ref, err := ParseTaskRef(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", false
	}
	id, err := ref.Resolve(tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", false
	}
	return id, true
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
