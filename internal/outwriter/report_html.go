package outwriter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/huangsam/tempo/core"
	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
	"github.com/pkg/browser"
)

const (
	echartsAssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

	chartWidth  = "100%"
	chartHeight = "420px"

	coreColor     = "#5470c6"
	overtimeColor = "#ee6666"
	weekendColor  = "#fac858"
)

// htmlPage is the template input for the standalone report page.
type htmlPage struct {
	Title       string
	Range       string
	Commits     int
	Reliable    bool
	Index       int
	Label       string
	Pattern     string
	Window      string
	Ratio       int
	Description string
	Charts      []template.HTML
	Comparison  []schema.Archetype
	Failures    []schema.SourceFailure
	AssetURL    string
}

// WriteHTMLReport renders a standalone HTML page with the summary figures,
// hour and weekday distributions, split charts and the archetype table.
func WriteHTMLReport(report *schema.Report, cfg *contract.Config) error {
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = contract.DefaultReportFile
	}

	page := htmlPage{
		Title:       report.Name,
		Range:       fmt.Sprintf("%s → %s", report.StartTime.Format(contract.DateFormat), report.EndTime.Format(contract.DateFormat)),
		Commits:     report.TotalCommits,
		Reliable:    report.Reliable,
		Index:       report.Index,
		Label:       contract.GetPlainLabel(report.Index),
		Pattern:     report.Estimate.Pattern,
		Window:      describeWindow(report),
		Ratio:       report.OvertimeRatio,
		Description: report.Description,
		Comparison:  core.ComparisonTable(report),
		Failures:    report.Failures,
		AssetURL:    echartsAssetURL,
	}

	builders := []func(*schema.Report) chartRenderable{
		hourDistributionChart,
		weekDistributionChart,
		workSplitChart,
		weekSplitChart,
	}
	for _, build := range builders {
		fragment, err := renderChartFragment(build(report))
		if err != nil {
			return err
		}
		page.Charts = append(page.Charts, fragment)
	}

	if err := writeWithFile(outputFile, func(w io.Writer) error {
		return reportTemplate.Execute(w, page)
	}, "Wrote HTML report"); err != nil {
		return err
	}

	if cfg.OpenBrowser {
		if err := browser.OpenFile(outputFile); err != nil {
			contract.LogWarn("Could not open browser", err)
		}
	}
	return nil
}

// chartRenderable is the slice of the echarts API the page needs.
type chartRenderable interface {
	Render(w io.Writer) error
}

// hourDistributionChart plots commits per hour across the full day so the
// work window and the off-hours tail are both visible.
func hourDistributionChart(report *schema.Report) chartRenderable {
	labels := make([]string, 24)
	data := make([]opts.BarData, 24)
	for h := range 24 {
		labels[h] = fmt.Sprintf("%02d:00", h)
		data[h] = opts.BarData{Value: report.Hours[h]}
	}

	bar := newBarChart("Commits by hour")
	bar.SetXAxis(labels)
	bar.AddSeries("Commits", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: coreColor}))
	return bar
}

// weekDistributionChart plots commits per weekday, Monday first.
func weekDistributionChart(report *schema.Report) chartRenderable {
	data := make([]opts.BarData, len(report.Week))
	for i, count := range report.Week {
		data[i] = opts.BarData{Value: count}
	}

	bar := newBarChart("Commits by weekday")
	bar.SetXAxis(schema.WeekdayNames[:])
	bar.AddSeries("Commits", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: coreColor}))
	return bar
}

// workSplitChart shows the core versus overtime hour split.
func workSplitChart(report *schema.Report) chartRenderable {
	return newPieChart("Core vs overtime commits", []opts.PieData{
		{Name: "Core hours", Value: report.WorkSplit.Core, ItemStyle: &opts.ItemStyle{Color: coreColor}},
		{Name: "Overtime hours", Value: report.WorkSplit.Overtime, ItemStyle: &opts.ItemStyle{Color: overtimeColor}},
	})
}

// weekSplitChart shows the workday versus weekend split.
func weekSplitChart(report *schema.Report) chartRenderable {
	return newPieChart("Workday vs weekend commits", []opts.PieData{
		{Name: "Workdays", Value: report.WeekSplit.Workday, ItemStyle: &opts.ItemStyle{Color: coreColor}},
		{Name: "Weekends", Value: report.WeekSplit.Weekend, ItemStyle: &opts.ItemStyle{Color: weekendColor}},
	})
}

func newBarChart(title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	return bar
}

func newPieChart(title string, data []opts.PieData) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)
	pie.AddSeries(title, data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c} ({d}%)",
		}))
	return pie
}

// renderChartFragment renders a chart and keeps only the container div and
// init script so the fragment can live inside the report page.
func renderChartFragment(chart chartRenderable) (template.HTML, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return template.HTML(extractChartContent(buf.String())), nil
}

// extractChartContent pulls the chart element and script out of the full
// echarts page so it can be embedded. Fragments pass through unchanged.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	end := strings.Index(html, `</body>`)
	if start == -1 || end == -1 || start > end {
		return html
	}
	content := html[start:end]
	return strings.ReplaceAll(content, `class="container"`, `class="chart-box"`)
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Work pattern: {{.Title}}</title>
<script src="{{.AssetURL}}"></script>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem auto; max-width: 960px; color: #24292f; }
h1 { font-size: 1.6rem; }
.meta { color: #57606a; margin-bottom: 1.5rem; }
.headline { font-size: 1.2rem; margin: 1rem 0; }
.headline .index { font-weight: bold; font-size: 1.5rem; }
.notice { background: #fff8c5; border: 1px solid #d4a72c; padding: 0.75rem 1rem; border-radius: 6px; }
.warn { color: #9a6700; }
.chart-box { margin: 1.5rem 0; }
table { border-collapse: collapse; margin: 1.5rem 0; width: 100%; }
th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
tr.computed { background: #ddf4ff; font-weight: bold; }
</style>
</head>
<body>
<h1>Work pattern: {{.Title}}</h1>
<div class="meta">Range: {{.Range}} | Commits: {{.Commits}}</div>
{{if .Reliable}}
<div class="headline">
Overtime index: <span class="index">{{.Index}}</span> ({{.Label}})<br>
Estimated pattern: {{.Pattern}} ({{.Window}})<br>
Overtime share: {{.Ratio}}%{{if lt .Index 0}} (under-utilized){{end}}<br>
{{.Description}}
</div>
{{else}}
<div class="notice">Not enough commits for a confident estimate; the charts below show basic information only.</div>
{{end}}
{{range .Failures}}<div class="warn">Source {{.Source}} skipped: {{.Reason}}</div>
{{end}}
{{range .Charts}}{{.}}
{{end}}
<table>
<tr><th>Pattern</th><th>Daily(h)</th><th>Weekly(h)</th><th>Overtime(h)</th><th>Ratio</th><th>Index</th></tr>
{{range .Comparison}}<tr{{if .Computed}} class="computed"{{end}}><td>{{.Pattern}}{{if .Computed}} ←{{end}}</td><td>{{.DailyHours}}</td><td>{{.WeeklyHours}}</td><td>{{.OvertimeHours}}</td><td>{{.Ratio}}%</td><td>{{.Index}}</td></tr>
{{end}}</table>
</body>
</html>
`))
