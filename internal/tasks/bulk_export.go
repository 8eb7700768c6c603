package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rossw/tvrx/internal/formatter"
	"github.com/rossw/tvrx/internal/services"
	"github.com/rossw/tvrx/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk batch exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: tvrx_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// BulkExport exports multiple recommendation batches concurrently with rate
// limiting and progress tracking.
//
// A worker pool writes fetched batches to disk while a single producer
// goroutine fetches them from the gateway, keeping request pacing under the
// rate limiter regardless of worker count. Partial failures are recorded
// per batch, and a manifest file summarizing the run is written last.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	token string,
	pairs []BatchPair,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.gateway == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("tvrx_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalBatches:    len(pairs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]BatchExportResult, 0, len(pairs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan BatchExportJob, len(pairs))
	results := make(chan BatchExportResult, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		e.sendProgress(prog, fetchingBatchesUpdate(1, len(pairs)))
		for i, pair := range pairs {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			e.sendProgress(prog, fetchBatchUpdate(i+1, len(pairs), pair))

			query := services.RecQuery{For: pair.Profile, Intent: pair.Intent}
			items, err := e.gateway.Recommendations(ctx, query, token)
			if err != nil {
				results <- BatchExportResult{
					Pair:    pair,
					Success: false,
					Error:   fmt.Errorf("failed to fetch batch: %w", err),
				}
				continue
			}

			jobs <- BatchExportJob{
				Pair: pair,
				Export: &formatter.BatchExport{
					Profile: pair.Profile,
					Intent:  pair.Intent,
					Items:   items,
				},
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(pairs), res.Pair, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(pairs), res.Pair, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	e.sendProgress(prog, writeManifestUpdate(manifestPath))
	if err := e.writeManifest(result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker is a worker goroutine that exports batches from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan BatchExportJob,
	results chan<- BatchExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleBatch(job, opts)
	}
}

// exportSingleBatch writes a single batch in the configured format.
func (e *ExportEngine) exportSingleBatch(j BatchExportJob, opts BulkExportOpts) BatchExportResult {
	result := BatchExportResult{
		Pair:    j.Pair,
		Shows:   len(j.Export.Items),
		Success: false,
		Files:   []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Pair.base())
		csvRes, err := formatter.WriteCSVExport(j.Export, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.ItemsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown", "md":
		mdPath := filepath.Join(opts.OutputDir, j.Pair.base()+".md")
		written, err := formatter.WriteMarkdownExport(j.Export, mdPath)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "txt", "text":
		txtPath := filepath.Join(opts.OutputDir, j.Pair.base()+".txt")
		written, err := formatter.WriteTextExport(j.Export, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, j.Pair.base()+".json")
		data, err := shared.MarshalJSON(j.Export, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// writeManifest records the run summary next to the exported files.
func (e *ExportEngine) writeManifest(result *BulkExportResult, format, path string) error {
	manifest := struct {
		*BulkExportResult
		Format     string    `json:"format"`
		ExportedAt time.Time `json:"exported_at"`
	}{
		BulkExportResult: result,
		Format:           format,
		ExportedAt:       time.Now().UTC(),
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
