package outwriter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/huangsam/tempo/core"
	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
)

// jsonReport is the JSON output envelope: the report itself plus the merged
// comparison table so downstream tooling does not re-derive it.
type jsonReport struct {
	Report     *schema.Report     `json:"report"`
	Comparison []schema.Archetype `json:"comparison"`
	Label      string             `json:"label"`
}

// writeReportJSON emits the full report record to the configured file or stdout.
func writeReportJSON(report *schema.Report, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, jsonReport{
			Report:     report,
			Comparison: core.ComparisonTable(report),
			Label:      contract.GetPlainLabel(report.Index),
		})
	}, "Wrote JSON")
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
