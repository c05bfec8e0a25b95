package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/task-tracker-demo/domain/task"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// Exporter writes the task collection as a human-readable text
// report. Export failures are reported to the caller and never touch
// in-memory state.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export writes the report and returns the path of the written file.
func (e *Exporter) Export(tasks []task.Task) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", &task.StorageError{Op: "export", Err: err}
	}

	now := time.Now()
	name := fmt.Sprintf("task-export-%s.txt", now.Format("20060102-150405"))
	path := filepath.Join(e.dir, name)

	if err := os.WriteFile(path, []byte(buildReport(tasks, now)), 0o644); err != nil {
		return "", &task.StorageError{Op: "export", Err: err}
	}
	return path, nil
}

// buildReport renders the report: a header with the export time and
// aggregate counts, then one block per task.
func buildReport(tasks []task.Task, now time.Time) string {
	completed := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
	}

	var b strings.Builder
	b.WriteString("TASK EXPORT\n")
	b.WriteString("===========\n")
	fmt.Fprintf(&b, "Exported:  %s\n", now.Format(exportTimeLayout))
	fmt.Fprintf(&b, "Total:     %d\n", len(tasks))
	fmt.Fprintf(&b, "Completed: %d\n", completed)
	fmt.Fprintf(&b, "Pending:   %d\n", len(tasks)-completed)

	for i, t := range tasks {
		fmt.Fprintf(&b, "\n[%d] %s\n", i+1, t.Title)
		if t.Description != "" {
			fmt.Fprintf(&b, "    Description: %s\n", t.Description)
		}
		fmt.Fprintf(&b, "    Priority:    %s\n", t.Priority)
		fmt.Fprintf(&b, "    Deadline:    %s\n", t.Deadline.Format(exportTimeLayout))
		fmt.Fprintf(&b, "    Status:      %s\n", t.Status)
		fmt.Fprintf(&b, "    Created:     %s\n", t.CreatedAt.Format(exportTimeLayout))
	}
	return b.String()
}
