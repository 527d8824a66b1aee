package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/tempo/core"
	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printReportSummary writes the human-readable analysis summary: the headline
// numbers (when the sample is reliable), per-source rows for aggregates, and
// the archetype comparison table with the computed row marked.
func printReportSummary(w io.Writer, report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	title := color.New(color.Bold).Sprint(report.Name)
	fmt.Fprintf(w, "📊 Work-pattern analysis: %s\n", title)
	fmt.Fprintf(w, "Range: %s → %s | Commits: %d\n",
		report.StartTime.Format(contract.DateFormat),
		report.EndTime.Format(contract.DateFormat),
		report.TotalCommits,
	)

	if report.Reliable {
		fmt.Fprintf(w, "\nOvertime index: %s %s\n",
			color.New(color.Bold).Sprintf("%d", report.Index),
			fmt.Sprintf("(%s)", contract.GetColorLabel(report.Index)),
		)
		fmt.Fprintf(w, "Estimated pattern: %s (%s)\n", report.Estimate.Pattern, describeWindow(report))
		underUtilized := ""
		if report.Index < 0 {
			underUtilized = " (under-utilized)"
		}
		fmt.Fprintf(w, "Overtime share: %d%%%s\n", report.OvertimeRatio, underUtilized)
		fmt.Fprintf(w, "%s\n", report.Description)
	} else {
		fmt.Fprintln(w, "\nNot enough commits for a confident estimate; showing basic information only.")
	}

	if len(report.Sources) > 0 {
		fmt.Fprintln(w)
		if err := writeSourcesTable(w, report.Sources, maxSourceWidth(cfg)); err != nil {
			return err
		}
	}
	for _, failure := range report.Failures {
		contract.LogWarn(fmt.Sprintf("Source %s skipped: %s", failure.Source, failure.Reason), nil)
	}

	fmt.Fprintln(w)
	if err := writeArchetypeTable(w, report); err != nil {
		return err
	}

	fmt.Fprintf(w, "Analysis completed in %v with %d workers.\n", duration.Round(time.Millisecond), cfg.Workers)
	return nil
}

// describeWindow renders the window and work days in words, with question
// marks for undetected sides.
func describeWindow(report *schema.Report) string {
	opening := "?"
	if report.Window.HasOpening {
		opening = fmt.Sprintf("%d:00", report.Window.Opening)
	}
	closing := "?"
	if report.Window.HasClosing {
		closing = fmt.Sprintf("%d:00", report.Window.Closing)
	}
	return fmt.Sprintf("opens %s, closes %s, %d days/week", opening, closing, report.WorkDays)
}

// maxSourceWidth bounds the source name column by the terminal width, leaving
// room for the numeric columns and table chrome.
func maxSourceWidth(cfg *contract.Config) int {
	available := terminalWidth(cfg) - 45
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// writeSourcesTable lists the per-source sub-reports of an aggregate run.
func writeSourcesTable(w io.Writer, sources []schema.Report, nameWidth int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Source", "Commits", "Ratio", "Index", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, src := range sources {
		data = append(data, []string{
			contract.TruncateName(src.Name, nameWidth),
			strconv.Itoa(src.TotalCommits),
			fmt.Sprintf("%d%%", src.OvertimeRatio),
			strconv.Itoa(src.Index),
			contract.GetColorLabel(src.Index),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteArchetypeReference renders the static archetype table on its own,
// without a computed row.
func WriteArchetypeReference(w io.Writer) error {
	return renderArchetypeRows(w, schema.Archetypes(), "")
}

// writeArchetypeTable renders the reference table with the computed row
// inserted and the whole set sorted by index.
func writeArchetypeTable(w io.Writer, report *schema.Report) error {
	return renderArchetypeRows(w, core.ComparisonTable(report),
		"The marked row holds this project's estimated figures.")
}

func renderArchetypeRows(w io.Writer, rows []schema.Archetype, note string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Pattern", "Daily(h)", "Weekly(h)", "Overtime(h)", "Ratio", "Index"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	marked := color.New(color.FgRed, color.Bold)
	var data [][]string
	for _, row := range rows {
		pattern := row.Pattern
		if row.Computed {
			pattern = marked.Sprintf("%s ←", pattern)
		}
		data = append(data, []string{
			pattern,
			formatHours(row.DailyHours),
			formatHours(row.WeeklyHours),
			formatHours(row.OvertimeHours),
			fmt.Sprintf("%d%%", row.Ratio),
			strconv.Itoa(row.Index),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if note != "" {
		fmt.Fprintln(w, note)
	}
	return nil
}

// formatHours trims trailing zeros from hour figures (7.5 stays, 45.0 → 45).
func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
