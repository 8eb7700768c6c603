// package formatter provides functions to export recommendation batches to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rossw/tvrx/internal/models"
	"github.com/rossw/tvrx/internal/shared"
)

// BatchExport bundles a recommendation batch with the query parameters that
// produced it, for export to disk or the terminal.
type BatchExport struct {
	Profile string
	Intent  string
	Items   []models.RecommendationItem
}

// ExportToCSV converts a BatchExport to CSV format with columns: ID, Title, Year, Prediction, Confidence, Novelty, Badges, Rationale
func ExportToCSV(export *BatchExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Prediction", "Confidence", "Novelty", "Badges", "Rationale"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range export.Items {
		record := []string{
			item.ID,
			item.Title,
			yearString(item.Year),
			item.Prediction.Label,
			strconv.FormatFloat(item.Prediction.Confidence, 'f', 2, 64),
			strconv.FormatFloat(item.Prediction.Novelty, 'f', 2, 64),
			strings.Join(item.Badges(), "; "),
			item.Rationale,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a BatchExport to Markdown format
func ExportToMarkdown(export *BatchExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Recommendations for %s\n\n", export.Profile))
	buf.WriteString(fmt.Sprintf("**Intent**: %s\n", export.Intent))
	buf.WriteString(fmt.Sprintf("**Shows**: %d\n\n", len(export.Items)))

	buf.WriteString("## Shows\n\n")
	for i, item := range export.Items {
		buf.WriteString(fmt.Sprintf("%d. **%s**%s — %s (%.0f%%)\n", i+1, item.Title, yearSuffix(item.Year), item.Prediction.Label, item.Prediction.Confidence*100))
		if badges := item.Badges(); len(badges) > 0 {
			buf.WriteString(fmt.Sprintf("   - Badges: %s\n", strings.Join(badges, ", ")))
		}
		if item.Rationale != "" {
			buf.WriteString(fmt.Sprintf("   - %s\n", item.Rationale))
		}
		if platforms := platformNames(item.WhereToWatch); len(platforms) > 0 {
			buf.WriteString(fmt.Sprintf("   - Watch on: %s\n", strings.Join(platforms, ", ")))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a BatchExport to plain text format
func ExportToText(export *BatchExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Profile: %s\n", export.Profile))
	buf.WriteString(fmt.Sprintf("Intent: %s\n", export.Intent))
	buf.WriteString(fmt.Sprintf("Shows: %d\n\n", len(export.Items)))

	for i, item := range export.Items {
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s]\n", i+1, item.Title, yearSuffix(item.Year), item.Prediction.Label))
		if badges := item.Badges(); len(badges) > 0 {
			buf.WriteString(fmt.Sprintf("   %s\n", strings.Join(badges, ", ")))
		}
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of the query parameters (without items)
func ToMetadataJSON(export *BatchExport) ([]byte, error) {
	meta := map[string]any{
		"profile": export.Profile,
		"intent":  export.Intent,
		"shows":   len(export.Items),
	}
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ItemsFile    string
	MetadataFile string
}

// WriteCSVExport exports a batch to CSV with an accompanying metadata JSON file.
//
// Defaults to {profile}_{intent} as the base filename & creates {base}_recs.csv and {base}_metadata.json
func WriteCSVExport(export *BatchExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = fmt.Sprintf("%s_%s", export.Profile, export.Intent)
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	itemsFile := baseFilepath + "_recs.csv"
	if err := os.WriteFile(itemsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ItemsFile:    itemsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a batch to Markdown.
//
// Defaults to {profile}_{intent}.md as the filename.
func WriteMarkdownExport(export *BatchExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_%s.md", export.Profile, export.Intent)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a batch to plain text format.
//
// Defaults to {profile}_{intent}.txt as the filename.
func WriteTextExport(export *BatchExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_%s.txt", export.Profile, export.Intent)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

func yearString(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}

func yearSuffix(year *int) string {
	if year == nil {
		return ""
	}
	return fmt.Sprintf(" (%d)", *year)
}

func platformNames(offers []models.WhereToWatch) []string {
	names := make([]string, 0, len(offers))
	for _, offer := range offers {
		names = append(names, offer.Platform)
	}
	return names
}
