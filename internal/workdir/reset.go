package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sebastian/job-pipeline/internal/status"
)

// ResetSummary reports what a full reset touched.
type ResetSummary struct {
	FoldersProcessed int
	FilesDeleted     int
}

// isGeneratedArtifact reports whether a file inside an item folder was
// produced by a later pipeline stage and should be removed on reset.
func isGeneratedArtifact(name string) bool {
	if name == DataFileName {
		return true
	}
	if strings.HasPrefix(name, "CV-") || strings.HasPrefix(name, "CL-") {
		return strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".pdf")
	}
	return false
}

// ResetAll rewinds every work item so the whole pipeline can run again:
// derived artifacts are deleted, both stage flags return to pending, and the
// todo log is truncated. The dedup URL log is left alone: reset re-processes
// known opportunities, it does not re-discover them.
func (d *Directory) ResetAll(todoPath string) (ResetSummary, error) {
	items, err := d.Items()
	if err != nil {
		return ResetSummary{}, err
	}

	var summary ResetSummary
	for _, item := range items {
		fmt.Printf("Resetting folder: %s\n", item.Name)
		summary.FoldersProcessed++

		entries, err := os.ReadDir(item.Path)
		if err != nil {
			fmt.Printf("  > ERROR reading %s: %v\n", item.Name, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !isGeneratedArtifact(entry.Name()) {
				continue
			}
			path := filepath.Join(item.Path, entry.Name())
			if err := os.Remove(path); err != nil {
				fmt.Printf("  > ERROR deleting %s: %v\n", entry.Name(), err)
				continue
			}
			fmt.Printf("  > Deleted: %s\n", entry.Name())
			summary.FilesDeleted++
		}

		recordPath := item.RecordPath()
		if _, err := os.Stat(recordPath); err != nil {
			fmt.Printf("  > WARNING: %s not found.\n", RecordFileName)
			continue
		}
		if err := status.WriteStage(recordPath, status.KeyStatus, status.StatePending); err != nil {
			fmt.Printf("  > ERROR resetting Status: %v\n", err)
		}
		if err := status.WriteStage(recordPath, status.KeyDataStatus, status.StatePending); err != nil {
			fmt.Printf("  > ERROR resetting Data-Status: %v\n", err)
		}
	}

	if todoPath != "" {
		if _, err := os.Stat(todoPath); err == nil {
			if err := os.WriteFile(todoPath, nil, 0644); err != nil {
				return summary, fmt.Errorf("failed to clear todo log %s: %w", todoPath, err)
			}
		}
	}

	return summary, nil
}
