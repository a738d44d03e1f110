package service

// Task is a task as reported by the remote source.
type Task struct {
	ID        string
	Title     string
	Completed bool
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
