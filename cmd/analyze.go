package cmd

import (
	"time"

	"github.com/huangsam/tempo/core"
	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/internal/iocache"
	"github.com/huangsam/tempo/internal/outwriter"
	"github.com/huangsam/tempo/schema"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the work-pattern analysis over one or more repositories.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo ...]",
	Short: "Analyze commit timestamps and estimate the work pattern.",
	Long: `Read Git commit timestamps for one or more repositories, detect the
daily work window, and estimate the overtime index.

Accepts local paths and clone URLs. With no arguments the current
repository is analyzed. Multiple repositories are retrieved on a worker
pool and merged into one aggregate report with per-source rows.

Examples:
  # Analyze the current repository
  tempo analyze

  # Analyze a specific range and author
  tempo analyze --start 2023-01-01 --end 2023-12-31 --author alice

  # Aggregate several repositories under one name
  tempo analyze ~/src/api ~/src/web --name backend

  # Write an HTML report and open it
  tempo analyze --output html --open

  # Remote repositories work too (shallow, blobless clones)
  tempo analyze https://github.com/org/repo.git`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runAnalyze(); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}

// runAnalyze wires the git client, cache and writer around the core pipeline.
func runAnalyze() error {
	client := contract.NewLocalGitClient()

	var cache contract.BucketCache
	if !cfg.NoCache {
		store, err := iocache.NewBucketStore(cfg.CachePath)
		if err != nil {
			contract.LogWarn("Bucket cache unavailable, continuing without it", err)
		} else {
			cache = store
			defer func() { _ = store.Close() }()
		}
	}

	started := time.Now()
	var report *schema.Report
	var err error
	if len(cfg.Sources) == 1 {
		report, err = core.AnalyzeSource(rootCtx, cfg, client, cache, cfg.Sources[0])
	} else {
		report, err = core.AnalyzeSources(rootCtx, cfg, client, cache)
	}
	if err != nil {
		return err
	}

	return outwriter.NewOutWriter().WriteReport(report, cfg, time.Since(started))
}
