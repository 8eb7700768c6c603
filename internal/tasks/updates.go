package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchBatch Phase = iota
	ExportBatch
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchBatch:
		return "fetch_batch"
	case ExportBatch:
		return "export_batch"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingBatchesUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchBatch,
		Step:    step,
		Total:   total,
		Message: "Fetching recommendation batches...",
	}
}

func fetchBatchUpdate(step, total int, pair BatchPair) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchBatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, pair),
	}
}

func exportCompletedUpdate(step, total int, pair BatchPair, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, pair, filesCount),
	}
}

func exportFailedUpdate(step, total int, pair BatchPair, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportBatch,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, pair, err),
	}
}

func writeManifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing manifest: %s", path),
	}
}
