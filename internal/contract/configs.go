package contract

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/huangsam/tempo/schema"
)

// Default values for configuration.
const (
	DefaultStartDate  = "2022-01-01" // Historical floor when no start date is given
	DefaultWorkers    = 4
	DefaultOutput     = TextOut
	DefaultReportFile = "tempo_report.html"
	MaxWorkers        = 32
)

// DateFormat is the calendar-date representation accepted on the CLI.
const DateFormat = "2006-01-02"

// Output format names.
const (
	TextOut = "text"
	JSONOut = "json"
	HTMLOut = "html"
)

// Config holds the validated runtime configuration for an analysis run.
// Simple fields are copied straight from flags; fields that need parsing
// (dates, sources) are set by ProcessAndValidate.
type Config struct {
	Sources     []schema.Source   // Repositories to analyze, in CLI order
	StartTime   time.Time         // Inclusive start of the analyzed range
	EndTime     time.Time         // Inclusive end of the analyzed range
	Author      string            // Optional commit author filter
	Name        string            // Display name for the (aggregate) report
	Workers     int               // Worker pool size for source retrieval
	Output      string            // Output format: text, json or html
	OutputFile  string            // Report destination for html/json output
	OpenBrowser bool              // Open the HTML report after writing it
	NoCache     bool              // Bypass the bucket cache entirely
	CachePath   string            // Override for the cache database location
	Width       int               // Terminal width override for table output
	Thresholds  schema.Thresholds // Pipeline tuning constants
}

// ConfigRawInput holds the raw inputs from flags/env that require parsing or
// validation before they land in Config.
type ConfigRawInput struct {
	// Positional repo paths/URLs; filled from args, not from Viper.
	Repos []string

	StartStr    string `mapstructure:"start"`
	EndStr      string `mapstructure:"end"`
	Author      string `mapstructure:"author"`
	Name        string `mapstructure:"name"`
	Workers     int    `mapstructure:"workers"`
	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	OpenBrowser bool   `mapstructure:"open"`
	NoCache     bool   `mapstructure:"no-cache"`
	CachePath   string `mapstructure:"cache-path"`
	Width       int    `mapstructure:"width"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and fills in the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Workers ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Output format ---
	cfg.Output = strings.ToLower(input.Output)
	validOutputs := map[string]bool{TextOut: true, JSONOut: true, HTMLOut: true}
	if _, ok := validOutputs[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, html", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == HTMLOut && cfg.OutputFile == "" {
		cfg.OutputFile = DefaultReportFile
	}
	cfg.OpenBrowser = input.OpenBrowser

	// --- 3. Date range ---
	start, err := time.ParseInLocation(DateFormat, DefaultStartDate, time.Local)
	if err != nil {
		return err
	}
	cfg.StartTime = start
	cfg.EndTime = time.Now()

	if input.StartStr != "" {
		t, err := time.ParseInLocation(DateFormat, input.StartStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid start date '%s'. must be YYYY-MM-DD: %w", input.StartStr, err)
		}
		cfg.StartTime = t
	}
	if input.EndStr != "" {
		t, err := time.ParseInLocation(DateFormat, input.EndStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid end date '%s'. must be YYYY-MM-DD: %w", input.EndStr, err)
		}
		// Make the end date inclusive: range runs to the end of that day.
		cfg.EndTime = t.Add(24*time.Hour - time.Second)
	}
	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)",
			cfg.StartTime.Format(DateFormat), cfg.EndTime.Format(DateFormat))
	}

	// --- 4. Sources ---
	repos := input.Repos
	if len(repos) == 0 {
		repos = []string{"."}
	}
	cfg.Sources = make([]schema.Source, 0, len(repos))
	seen := make(map[string]bool, len(repos))
	for _, repo := range repos {
		repo = strings.TrimSpace(repo)
		if repo == "" || seen[repo] {
			continue
		}
		seen[repo] = true
		cfg.Sources = append(cfg.Sources, ParseSource(repo))
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("no sources to analyze")
	}

	// --- 5. Remaining passthrough fields ---
	cfg.Author = input.Author
	cfg.NoCache = input.NoCache
	cfg.CachePath = input.CachePath
	cfg.Width = input.Width
	cfg.Thresholds = schema.DefaultThresholds()

	cfg.Name = input.Name
	if cfg.Name == "" {
		if len(cfg.Sources) == 1 {
			cfg.Name = cfg.Sources[0].Name
		} else {
			cfg.Name = fmt.Sprintf("%d repositories", len(cfg.Sources))
		}
	}
	return nil
}

// ParseSource classifies one repo argument as a local path or a remote URL
// and derives its display name from the last path element.
func ParseSource(repo string) schema.Source {
	kind := schema.LocalSource
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		kind = schema.RemoteSource
	}

	name := strings.TrimSuffix(path.Base(strings.ReplaceAll(repo, ":", "/")), ".git")
	if name == "." || name == "/" || name == "" {
		name = "current repository"
	}
	return schema.Source{Name: name, Path: repo, Kind: kind}
}
