package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rossw/tvrx/internal/models"
)

func sampleExport() *BatchExport {
	year := 2022
	return &BatchExport{
		Profile: "ross",
		Intent:  "default",
		Items: []models.RecommendationItem{
			{
				ID:        "tt1",
				Title:     "Severance",
				Year:      &year,
				Rationale: "Slow-burn workplace mystery",
				Warnings:  []string{"violence"},
				Flags:     []string{"new_season"},
				Prediction: models.Prediction{
					Label:      models.PredictionVeryGood,
					Confidence: 0.91,
					Novelty:    0.4,
				},
				WhereToWatch: []models.WhereToWatch{{Platform: "Apple TV+", OfferType: "subscription"}},
			},
			{
				ID:    "tt2",
				Title: "Bluey",
				Prediction: models.Prediction{
					Label:      models.PredictionAcceptable,
					Confidence: 0.6,
					Novelty:    0.1,
				},
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Year,Prediction,Confidence,Novelty,Badges,Rationale") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Severance") {
			t.Errorf("CSV missing show title")
		}
		if !strings.Contains(output, "VERY GOOD") {
			t.Errorf("CSV missing prediction label")
		}
		if !strings.Contains(output, "violence; new_season") {
			t.Errorf("CSV badges should list warnings before flags, got: %s", output)
		}
		if !strings.Contains(output, "0.91") {
			t.Errorf("CSV missing confidence")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Recommendations for ross") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Intent**: default") {
			t.Errorf("Markdown missing intent")
		}
		if !strings.Contains(output, "**Severance** (2022)") {
			t.Errorf("Markdown missing titled entry with year")
		}
		if !strings.Contains(output, "violence, new_season") {
			t.Errorf("Markdown badges should list warnings before flags")
		}
		if !strings.Contains(output, "Watch on: Apple TV+") {
			t.Errorf("Markdown missing platforms")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Profile: ross") || !strings.Contains(output, "Shows: 2") {
			t.Errorf("text export missing header, got: %s", output)
		}
		if !strings.Contains(output, "1. Severance (2022) [VERY GOOD]") {
			t.Errorf("text export missing first entry, got: %s", output)
		}
		if !strings.Contains(output, "2. Bluey [ACCEPTABLE]") {
			t.Errorf("year-less entry should omit the year, got: %s", output)
		}
	})
}

func TestFileExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "out")

		result, err := WriteCSVExport(sampleExport(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		if result.ItemsFile != base+"_recs.csv" {
			t.Errorf("unexpected items file: %s", result.ItemsFile)
		}
		if !strings.HasSuffix(result.MetadataFile, "_metadata.json") {
			t.Errorf("unexpected metadata file: %s", result.MetadataFile)
		}
	})

	t.Run("WriteMarkdownExport Defaults Filename", func(t *testing.T) {
		t.Chdir(t.TempDir())

		path, err := WriteMarkdownExport(sampleExport(), "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if path != "ross_default.md" {
			t.Errorf("expected default filename, got %s", path)
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "recs.txt")

		got, err := WriteTextExport(sampleExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})
}
