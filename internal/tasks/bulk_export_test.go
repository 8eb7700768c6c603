package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/services"
	"github.com/rossw/tvrx/internal/shared"
	tu "github.com/rossw/tvrx/internal/testing"
)

func sampleItems() []models.RecommendationItem {
	year := 2022
	return []models.RecommendationItem{
		{
			ID:         "tt1",
			Title:      "Severance",
			Year:       &year,
			Rationale:  "Because you loved Dark",
			Warnings:   []string{"violence"},
			Flags:      []string{"new_season"},
			Prediction: models.Prediction{Label: models.PredictionVeryGood, Confidence: 0.91, Novelty: 0.4},
		},
		{
			ID:         "tt2",
			Title:      "Bluey",
			Prediction: models.Prediction{Label: models.PredictionAcceptable, Confidence: 0.55, Novelty: 0.1},
		},
	}
}

func newTestEngine() *ExportEngine {
	return NewExportEngine(&tu.MockGateway{RecsOut: sampleItems()})
}

func TestBulkExport_SuccessfulExport(t *testing.T) {
	tests := []struct {
		name           string
		format         string
		pairs          []BatchPair
		wantSuccess    int
		validateResult func(t *testing.T, result *BulkExportResult, tempDir string)
	}{
		{
			name:        "single batch json export",
			format:      "json",
			pairs:       []BatchPair{{Profile: "ross", Intent: "default"}},
			wantSuccess: 1,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				if len(result.Results) != 1 {
					t.Fatalf("expected 1 result, got %d", len(result.Results))
				}
				if len(result.Results[0].Files) != 1 {
					t.Errorf("expected 1 file, got %d", len(result.Results[0].Files))
				}
				tu.AssertFileExists(t, filepath.Join(tempDir, "ross_default.json"))
			},
		},
		{
			name:   "multiple batches csv export",
			format: "csv",
			pairs: []BatchPair{
				{Profile: "ross", Intent: "default"},
				{Profile: "wife", Intent: "comfort"},
				{Profile: "family", Intent: "weekend_binge"},
			},
			wantSuccess: 3,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				if len(result.Results) != 3 {
					t.Fatalf("expected 3 results, got %d", len(result.Results))
				}
				for _, res := range result.Results {
					if len(res.Files) != 2 {
						t.Errorf("CSV export should create 2 files, got %d", len(res.Files))
					}
				}
				tu.AssertFileExists(t, filepath.Join(tempDir, "wife_comfort_recs.csv"))
				tu.AssertFileExists(t, filepath.Join(tempDir, "wife_comfort_metadata.json"))
			},
		},
		{
			name:        "markdown export",
			format:      "markdown",
			pairs:       []BatchPair{{Profile: "son", Intent: "short_tonight"}},
			wantSuccess: 1,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				path := filepath.Join(tempDir, "son_short_tonight.md")
				content := tu.MustReadFile(t, path)
				if !strings.Contains(content, "**Severance**") {
					t.Errorf("markdown missing show entry: %s", content)
				}
			},
		},
		{
			name:        "text export",
			format:      "txt",
			pairs:       []BatchPair{{Profile: "ross", Intent: "surprise"}},
			wantSuccess: 1,
			validateResult: func(t *testing.T, result *BulkExportResult, tempDir string) {
				tu.AssertFileExists(t, filepath.Join(tempDir, "ross_surprise.txt"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			engine := newTestEngine()

			result, err := engine.BulkExport(context.Background(), nil, "tok", tt.pairs, BulkExportOpts{
				Format:    tt.format,
				OutputDir: tempDir,
			})
			if err != nil {
				t.Fatalf("BulkExport failed: %v", err)
			}

			if result.SuccessfulExports != tt.wantSuccess {
				t.Errorf("expected %d successful exports, got %d", tt.wantSuccess, result.SuccessfulExports)
			}
			if result.FailedExports != 0 {
				t.Errorf("expected 0 failed exports, got %d", result.FailedExports)
			}
			if result.ManifestPath == "" {
				t.Error("expected manifest path to be set")
			}
			tu.AssertFileExists(t, filepath.Join(tempDir, "export_manifest.json"))

			tt.validateResult(t, result, tempDir)
		})
	}
}

func TestBulkExport_PartialFailures(t *testing.T) {
	gateway := &tu.MockGateway{
		RecsFn: func(q services.RecQuery) ([]models.RecommendationItem, error) {
			if q.For == "wife" {
				return nil, fmt.Errorf("%w: status 500", shared.ErrAPIRequest)
			}
			return sampleItems(), nil
		},
	}
	engine := NewExportEngine(gateway)

	pairs := []BatchPair{
		{Profile: "ross", Intent: "default"},
		{Profile: "wife", Intent: "default"},
		{Profile: "son", Intent: "default"},
	}

	result, err := engine.BulkExport(context.Background(), nil, "tok", pairs, BulkExportOpts{
		Format:    "json",
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	if result.SuccessfulExports != 2 {
		t.Errorf("expected 2 successful exports, got %d", result.SuccessfulExports)
	}
	if result.FailedExports != 1 {
		t.Errorf("expected 1 failed export, got %d", result.FailedExports)
	}

	for _, res := range result.Results {
		if res.Pair.Profile == "wife" {
			if res.Success {
				t.Error("expected wife batch to fail")
			}
			if res.Error == nil || !errors.Is(res.Error, shared.ErrAPIRequest) {
				t.Errorf("expected wrapped API error, got %v", res.Error)
			}
		}
	}
}

func TestBulkExport_GatewayNotInitialized(t *testing.T) {
	engine := NewExportEngine(nil)

	_, err := engine.BulkExport(context.Background(), nil, "tok", []BatchPair{{Profile: "ross", Intent: "default"}}, BulkExportOpts{})
	if err == nil {
		t.Fatal("expected error for nil gateway")
	}
	if !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestBulkExport_DefaultOptions(t *testing.T) {
	t.Chdir(t.TempDir())
	engine := newTestEngine()

	result, err := engine.BulkExport(context.Background(), nil, "tok", []BatchPair{{Profile: "ross", Intent: "default"}}, BulkExportOpts{})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	if !strings.HasPrefix(result.OutputDirectory, "tvrx_export_") {
		t.Errorf("expected generated output directory, got %s", result.OutputDirectory)
	}
	// default format is json
	tu.AssertFileExists(t, filepath.Join(result.OutputDirectory, "ross_default.json"))
}

func TestBulkExport_WorkerPoolLimits(t *testing.T) {
	tests := []struct {
		name       string
		numWorkers int
	}{
		{name: "zero workers clamps to default", numWorkers: 0},
		{name: "negative workers clamps to default", numWorkers: -3},
		{name: "excessive workers clamps to maximum", numWorkers: 50},
	}

	pairs := []BatchPair{
		{Profile: "ross", Intent: "default"},
		{Profile: "wife", Intent: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()

			result, err := engine.BulkExport(context.Background(), nil, "tok", pairs, BulkExportOpts{
				Format:     "json",
				OutputDir:  t.TempDir(),
				NumWorkers: tt.numWorkers,
			})
			if err != nil {
				t.Fatalf("BulkExport failed: %v", err)
			}
			if result.SuccessfulExports != len(pairs) {
				t.Errorf("expected %d successful exports, got %d", len(pairs), result.SuccessfulExports)
			}
		})
	}
}

func TestBulkExport_ContextCancellation(t *testing.T) {
	engine := newTestEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.BulkExport(ctx, nil, "tok", []BatchPair{
		{Profile: "ross", Intent: "default"},
		{Profile: "wife", Intent: "default"},
	}, BulkExportOpts{Format: "json", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	if result.SuccessfulExports != 0 {
		t.Errorf("expected no exports after cancellation, got %d", result.SuccessfulExports)
	}
}

func TestBulkExport_ProgressUpdates(t *testing.T) {
	engine := newTestEngine()
	prog := make(chan ProgressUpdate, 100)

	_, err := engine.BulkExport(context.Background(), prog, "tok", []BatchPair{
		{Profile: "ross", Intent: "default"},
		{Profile: "family", Intent: "comfort"},
	}, BulkExportOpts{Format: "json", OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}
	close(prog)

	phases := map[Phase]bool{}
	for update := range prog {
		phases[update.Phase] = true
	}
	for _, want := range []Phase{FetchBatch, ExportBatch, WriteManifest} {
		if !phases[want] {
			t.Errorf("expected a %s progress update", want)
		}
	}
}

func TestBulkExport_Manifest(t *testing.T) {
	tempDir := t.TempDir()
	engine := newTestEngine()

	result, err := engine.BulkExport(context.Background(), nil, "tok", []BatchPair{
		{Profile: "ross", Intent: "default"},
	}, BulkExportOpts{Format: "csv", OutputDir: tempDir})
	if err != nil {
		t.Fatalf("BulkExport failed: %v", err)
	}

	var manifest struct {
		TotalBatches      int    `json:"total_batches"`
		SuccessfulExports int    `json:"successful_exports"`
		Format            string `json:"format"`
	}
	if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}

	if manifest.TotalBatches != 1 || manifest.SuccessfulExports != 1 {
		t.Errorf("unexpected manifest counts: %+v", manifest)
	}
	if manifest.Format != "csv" {
		t.Errorf("expected format csv, got %s", manifest.Format)
	}
}

func TestBulkExport_InvalidOutputDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	engine := newTestEngine()

	_, err := engine.BulkExport(context.Background(), nil, "tok", []BatchPair{
		{Profile: "ross", Intent: "default"},
	}, BulkExportOpts{OutputDir: filepath.Join(blocker, "nested")})
	if err == nil {
		t.Fatal("expected error creating output directory under a file")
	}
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	engine := newTestEngine()

	t.Run("nil channel does not block", func(t *testing.T) {
		done := make(chan struct{})
		go func() {
			engine.sendProgress(nil, fetchingBatchesUpdate(1, 1))
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sendProgress blocked on nil channel")
		}
	})

	t.Run("full channel drops update", func(t *testing.T) {
		full := make(chan ProgressUpdate, 1)
		full <- fetchingBatchesUpdate(1, 1)

		done := make(chan struct{})
		go func() {
			engine.sendProgress(full, fetchingBatchesUpdate(2, 2))
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sendProgress blocked on full channel")
		}
	})
}
