package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todomatic/internal/tasklist"
)

//go:embed snapshot.schema.json
var snapshotSchemaSource string

const snapshotSchemaURL = "snapshot.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func snapshotSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(snapshotSchemaURL, snapshotSchemaSource)
	})
	return schema, schemaErr
}

// SnapshotError describes why a stored snapshot was rejected.
type SnapshotError struct {
	Path string // location inside the snapshot, e.g. "[2].completed"
	Err  error
}

func (e *SnapshotError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// EncodeSnapshot serializes tasks as a JSON array with 2-space indentation.
func EncodeSnapshot(tasks []tasklist.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []tasklist.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses and validates a snapshot. It rejects content that does
// not match the snapshot schema or that repeats a task id.
func DecodeSnapshot(data []byte) ([]tasklist.Task, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &SnapshotError{Err: fmt.Errorf("parse snapshot: %w", err)}
	}

	sch, err := snapshotSchema()
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, firstSchemaError(ve)
		}
		return nil, &SnapshotError{Err: err}
	}

	var tasks []tasklist.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &SnapshotError{Err: fmt.Errorf("parse snapshot: %w", err)}
	}

	seen := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if first, ok := seen[t.ID]; ok {
			return nil, &SnapshotError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (first at [%d])", t.ID, first),
			}
		}
		seen[t.ID] = i
	}
	return tasks, nil
}

// firstSchemaError returns the deepest leaf cause of a schema failure.
func firstSchemaError(ve *jsonschema.ValidationError) *SnapshotError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SnapshotError{
		Path: pointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

// pointerToPath turns "/2/completed" into "[2].completed".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
