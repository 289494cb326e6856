// Package runner provides the generic batch driver shared by every pipeline
// stage: scan the work-item directory, filter by stage precondition, perform
// one unit of work per item, and advance the status flag on success.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sebastian/job-pipeline/internal/status"
	"github.com/sebastian/job-pipeline/internal/workdir"
)

// ProcessFunc performs one unit of work for an item, delegating to an
// external collaborator. All artifacts must be durably written before it
// returns nil; the runner only advances the status flag afterwards.
type ProcessFunc func(ctx context.Context, item workdir.Item) error

// FailureMode controls what happens to the stage flag when Process fails.
type FailureMode int

const (
	// MarkError sets the stage to error; the item is retried on the next run
	// when the precondition treats error like pending.
	MarkError FailureMode = iota
	// LeaveState leaves the stage untouched so the failure is surfaced for
	// manual review rather than silently retried into the same wall.
	LeaveState
)

// StageRunner drives one pipeline stage over the work-item directory.
type StageRunner struct {
	Dir *workdir.Directory

	// Stage is the status key this runner owns and advances.
	Stage string
	// Eligible lists the stage states that make an item a candidate.
	Eligible []status.StageState
	// Ready re-checks an item right before processing; the scan and the
	// check can be separated by slow external calls, so the record is
	// re-read defensively. A nil Ready accepts every discovered item.
	Ready func(item workdir.Item) bool
	// SuccessState is written to Stage after Process succeeds.
	SuccessState status.StageState
	// OnFailure selects the failure-path transition.
	OnFailure FailureMode
	// MaxItems caps the number of items processed per invocation; zero
	// means unlimited. Used to pace externally rate-limited actions.
	MaxItems int

	Process ProcessFunc
}

// Summary reports the outcome of one runner invocation.
type Summary struct {
	RunID     uuid.UUID
	Scanned   int
	Processed int
	Failed    int
	Skipped   int
}

// Run executes the stage over every eligible item in deterministic order.
// A single item's failure never aborts the batch; only a configuration
// error (or a directory scan failure) does.
func (r *StageRunner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.New()}

	if r.Process == nil {
		return summary, &ConfigError{Message: "stage runner has no process function"}
	}

	items, err := r.Dir.DiscoverPending(r.Stage, r.Eligible...)
	if err != nil {
		return summary, err
	}

	fmt.Printf("[run %s] Scanning %s... %d candidate item(s) for stage %s.\n",
		shortID(summary.RunID), r.Dir.Base, len(items), r.Stage)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if r.MaxItems > 0 && summary.Processed >= r.MaxItems {
			fmt.Printf("[run %s] Reached the processing limit of %d items for this run. Stopping.\n",
				shortID(summary.RunID), r.MaxItems)
			break
		}

		summary.Scanned++
		fmt.Printf("\nChecking '%s'... %s: %s\n",
			item.Name, r.Stage, status.ReadStage(item.RecordPath(), r.Stage))

		if r.Ready != nil && !r.Ready(item) {
			summary.Skipped++
			fmt.Printf("  > Not ready, skipping.\n")
			continue
		}

		if err := r.Process(ctx, item); err != nil {
			summary.Failed++
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) {
				return summary, err
			}

			fmt.Printf("  > ERROR processing %s: %v\n", item.Name, err)
			if r.OnFailure == MarkError {
				if werr := status.WriteStage(item.RecordPath(), r.Stage, status.StateError); werr != nil {
					fmt.Printf("  > FAILED to mark %s as error: %v\n", r.Stage, werr)
				}
			}
			continue
		}

		// Artifacts are on disk by now; advancing the flag commits the item.
		if err := status.WriteStage(item.RecordPath(), r.Stage, r.SuccessState); err != nil {
			summary.Failed++
			fmt.Printf("  > FAILED to advance %s for %s: %v\n", r.Stage, item.Name, err)
			continue
		}
		summary.Processed++
		fmt.Printf("  > %s updated to '%s'.\n", r.Stage, r.SuccessState)
	}

	fmt.Printf("\n[run %s] Scan complete. Processed %d, failed %d, skipped %d.\n",
		shortID(summary.RunID), summary.Processed, summary.Failed, summary.Skipped)
	return summary, nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
