package stage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docrange/stratum/element"
)

// ExportFormat defines the available export formats.
type ExportFormat int

const (
	// ExportFormatJSONL exports as JSON Lines (one record per line).
	ExportFormatJSONL ExportFormat = iota
	// ExportFormatJSON exports as a JSON array.
	ExportFormatJSON
	// ExportFormatCSV exports as comma-separated values.
	ExportFormatCSV
	// ExportFormatTSV exports as tab-separated values.
	ExportFormatTSV
	// ExportFormatYAML exports as a YAML sequence.
	ExportFormatYAML
)

// String returns a human-readable representation of the export format.
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatJSON:
		return "json"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	case ExportFormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format.
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatJSONL:
		return ".jsonl"
	case ExportFormatJSON:
		return ".json"
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatTSV:
		return ".tsv"
	case ExportFormatYAML:
		return ".yaml"
	default:
		return ".txt"
	}
}

// ExportConfig holds configuration options for export.
type ExportConfig struct {
	// Format specifies the export format.
	Format ExportFormat

	// Projector controls how elements flatten into records. Nil uses the
	// default projection.
	Projector *Projector

	// CSVDelimiter specifies the delimiter for CSV export (default: comma).
	CSVDelimiter rune

	// IncludeHeader includes a header row in CSV/TSV exports.
	IncludeHeader bool

	// PrettyPrint enables pretty printing for the JSON format.
	PrettyPrint bool
}

// DefaultExportConfig returns sensible defaults for export configuration.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:        ExportFormatJSONL,
		CSVDelimiter:  ',',
		IncludeHeader: true,
	}
}

// CSVExportConfig returns config for CSV export.
func CSVExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatCSV
	return config
}

// TSVExportConfig returns config for TSV export.
func TSVExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatTSV
	config.CSVDelimiter = '\t'
	return config
}

// Exporter writes projected element records in an ingestion-friendly format.
type Exporter struct {
	config ExportConfig
}

// NewExporter creates an exporter with default configuration.
func NewExporter() *Exporter {
	return &Exporter{config: DefaultExportConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration.
func NewExporterWithConfig(config ExportConfig) *Exporter {
	if config.CSVDelimiter == 0 {
		config.CSVDelimiter = ','
	}
	return &Exporter{config: config}
}

// Export writes the projected records for elements to w.
func (e *Exporter) Export(elements []element.Element, w io.Writer) error {
	records := e.projector().Project(elements)

	switch e.config.Format {
	case ExportFormatJSONL:
		return e.exportJSONL(records, w)
	case ExportFormatJSON:
		return e.exportJSON(records, w)
	case ExportFormatCSV, ExportFormatTSV:
		return e.exportCSV(records, w)
	case ExportFormatYAML:
		return e.exportYAML(records, w)
	default:
		return fmt.Errorf("stage: unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile writes the projected records to a file.
func (e *Exporter) ExportToFile(elements []element.Element, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("stage: creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(elements, f)
}

// ExportToString returns the projected records as a string.
func (e *Exporter) ExportToString(elements []element.Element) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(elements, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) projector() *Projector {
	if e.config.Projector != nil {
		return e.config.Projector
	}
	return NewProjector()
}

// exportJSONL writes one JSON object per line.
func (e *Exporter) exportJSONL(records []map[string]any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for i, rec := range records {
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("stage: encoding record %d: %w", i, err)
		}
	}
	return nil
}

// exportJSON writes the records as one JSON array.
func (e *Exporter) exportJSON(records []map[string]any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("stage: encoding records: %w", err)
	}
	return nil
}

// exportYAML writes the records as a YAML sequence.
func (e *Exporter) exportYAML(records []map[string]any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("stage: encoding records: %w", err)
	}
	return nil
}

// exportCSV writes the records as CSV or TSV. Columns are the union of keys
// across all records: element_id, text and category first, remaining keys
// sorted for consistent output.
func (e *Exporter) exportCSV(records []map[string]any, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.config.CSVDelimiter

	columns := collectColumns(records)

	if e.config.IncludeHeader {
		if err := csvWriter.Write(columns); err != nil {
			return fmt.Errorf("stage: writing CSV header: %w", err)
		}
	}

	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			if val, ok := rec[col]; ok {
				row[j] = formatValue(val)
			}
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("stage: writing CSV row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// collectColumns determines the column set for CSV export.
func collectColumns(records []map[string]any) []string {
	columns := []string{"element_id", "text", "category"}
	fixed := map[string]bool{"element_id": true, "text": true, "category": true}

	seen := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			if !fixed[key] {
				seen[key] = true
			}
		}
	}

	extra := make([]string, 0, len(seen))
	for key := range seen {
		extra = append(extra, key)
	}
	sort.Strings(extra)

	return append(columns, extra...)
}

// formatValue formats a value for CSV output.
func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case []string:
		return "[" + strings.Join(v, ",") + "]"
	case []any:
		strs := make([]string, len(v))
		for i, item := range v {
			strs[i] = formatValue(item)
		}
		return "[" + strings.Join(strs, ",") + "]"
	case map[string]any:
		// Nested objects in CSV cells serialize as JSON.
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}
