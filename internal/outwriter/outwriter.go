// Package outwriter has output and writer logic for analysis reports.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport emits the analysis report in the configured output format.
func (ow *OutWriter) WriteReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case contract.JSONOut:
		return writeReportJSON(report, cfg)
	case contract.HTMLOut:
		return WriteHTMLReport(report, cfg)
	default:
		return printReportSummary(os.Stdout, report, cfg, duration)
	}
}

// writeWithFile opens the configured output file (or stdout), runs the writer
// against it, and reports where the output landed.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// terminalWidth returns the usable terminal width, honoring the configured
// override and falling back to a conservative default for CI and pipes.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80
	}
	return detected
}
