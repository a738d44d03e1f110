// Package tasklist holds the task collection, its filters, and the store that mutates it.
package tasklist

import (
	"fmt"
	"strings"
)

// Task represents a single to-do item.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Filter selects a subset of tasks for display.
type Filter string

const (
	FilterAll      Filter = "All"
	FilterComplete Filter = "Complete"
	FilterActive   Filter = "Active"
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterComplete}

// Match reports whether t passes the filter.
// Unknown filters match every task, same as All.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterComplete:
		return t.Completed
	case FilterActive:
		return !t.Completed
	default:
		return true
	}
}

func (f Filter) String() string {
	return string(f)
}

// ParseFilter resolves a filter name, ignoring case and surrounding space.
func ParseFilter(name string) (Filter, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Filters {
		if strings.ToLower(string(f)) == n {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter: %s", name)
}

// Apply returns the order-preserving subsequence of tasks that match f.
// The result never aliases tasks.
func Apply(f Filter, tasks []Task) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// RemainingLabel formats the heading shown above a list of n tasks.
func RemainingLabel(n int) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s remaining", n, noun)
}
