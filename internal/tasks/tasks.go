// package tasks implements long-running export operations over the
// recommendation gateway.
//
// The core abstraction is ExportEngine, which fetches recommendation batches
// for profile/intent pairs and writes them to disk concurrently. Operations
// emit progress updates via channels for non-blocking status reporting to the
// CLI layer.
package tasks

import (
	"context"
	"fmt"

	"github.com/rossw/tvrx/internal/formatter"
	"github.com/rossw/tvrx/internal/services"
)

// BatchPair identifies one recommendation batch to export: a profile and an
// intent, matching the query parameters of the recommendations endpoint.
type BatchPair struct {
	Profile string
	Intent  string
}

func (p BatchPair) String() string {
	return fmt.Sprintf("%s/%s", p.Profile, p.Intent)
}

// base is the filename stem used for every file written for this pair.
func (p BatchPair) base() string {
	return fmt.Sprintf("%s_%s", p.Profile, p.Intent)
}

// BatchExportJob carries a fetched batch from the producer to a worker.
type BatchExportJob struct {
	Pair   BatchPair
	Export *formatter.BatchExport
}

// BatchExportResult records the outcome of exporting one batch.
type BatchExportResult struct {
	Pair    BatchPair `json:"pair"`
	Shows   int       `json:"shows"`
	Success bool      `json:"success"`
	Files   []string  `json:"files"`
	Error   error     `json:"-"`
}

// BulkExportResult summarizes a full bulk export run.
type BulkExportResult struct {
	TotalBatches      int                 `json:"total_batches"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"manifest_path,omitempty"`
	Results           []BatchExportResult `json:"results"`
}

// BatchExporter defines the bulk export operation.
type BatchExporter interface {
	// BulkExport fetches and writes recommendation batches for every pair,
	// returning per-batch outcomes and a manifest path.
	BulkExport(ctx context.Context, prog chan<- ProgressUpdate, token string, pairs []BatchPair, opts BulkExportOpts) (*BulkExportResult, error)
}

// ExportEngine implements BatchExporter against the remote gateway.
type ExportEngine struct {
	gateway services.Gateway
}

// NewExportEngine creates an ExportEngine backed by the provided gateway.
func NewExportEngine(gateway services.Gateway) *ExportEngine {
	return &ExportEngine{gateway: gateway}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
