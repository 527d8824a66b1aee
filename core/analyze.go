package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
)

// ErrNoCommits is returned when the analyzed range contains no commit events.
var ErrNoCommits = errors.New("no commits found in the analyzed range")

// ErrAllSourcesFailed is returned when no source of an aggregate run could be
// analyzed.
var ErrAllSourcesFailed = errors.New("no source could be analyzed")

// DeriveReport runs detection, classification, index calculation and workload
// estimation once over a pair of buckets. Both the single-source and the
// aggregate paths go through this exact function, so their thresholds cannot
// diverge. Date range, name and per-source bookkeeping are filled in by the
// caller.
func DeriveReport(hours schema.HourBucket, week schema.WeekBucket, kind schema.SampleKind, t schema.Thresholds) schema.Report {
	window := DetectWorkWindow(hours, t)
	workSplit := SplitWorkHours(hours, window, t)
	workDays, weekSplit := ClassifyWeekPattern(week)
	index, ratio, reliable := ComputeOvertimeIndex(workSplit, weekSplit, hours.ActiveHours(), kind, t)

	return schema.Report{
		TotalCommits:  hours.Total(),
		Hours:         hours,
		Week:          week,
		WorkSplit:     workSplit,
		WeekSplit:     weekSplit,
		Window:        window,
		WorkDays:      workDays,
		OvertimeRatio: ratio,
		Index:         index,
		Reliable:      reliable,
		Description:   schema.DescribeIndex(index),
		Estimate:      EstimateWorkload(window, workDays, ratio, t),
	}
}

// AnalyzeSource runs the full pipeline for a single source. A source with no
// commits in range is fatal here; aggregate runs handle that case themselves.
func AnalyzeSource(ctx context.Context, cfg *contract.Config, client contract.GitClient, cache contract.BucketCache, src schema.Source) (*schema.Report, error) {
	hours, week, err := retrieveBuckets(ctx, cfg, client, cache, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}
	if hours.Total() == 0 {
		return nil, fmt.Errorf("%s: %w", src.Name, ErrNoCommits)
	}

	report := DeriveReport(hours, week, schema.SingleSample, cfg.Thresholds)
	report.Name = src.Name
	report.StartTime = cfg.StartTime
	report.EndTime = cfg.EndTime
	return &report, nil
}

// sourceOutcome carries either a per-source sub-report or a recorded failure
// from a retrieval worker back to the merge step.
type sourceOutcome struct {
	report  *schema.Report
	failure *schema.SourceFailure
}

// AnalyzeSources runs the single-source pipeline independently per source on a
// bounded worker pool, merges the bucket counts of all successful sources
// key-wise, and re-derives every downstream value once over the merged totals.
// The merge is a commutative, associative fold applied after all workers have
// joined, so retrieval order and pool size never affect the result. Failed or
// canceled sources are recorded and skipped; the run is fatal only when no
// source contributes any commits.
func AnalyzeSources(ctx context.Context, cfg *contract.Config, client contract.GitClient, cache contract.BucketCache) (*schema.Report, error) {
	sources := cfg.Sources

	srcCh := make(chan schema.Source, len(sources))
	outCh := make(chan sourceOutcome, len(sources))
	var wg sync.WaitGroup

	workers := cfg.Workers
	if workers > len(sources) {
		workers = len(sources)
	}
	for range workers {
		wg.Go(func() {
			for src := range srcCh {
				outCh <- analyzeOne(ctx, cfg, client, cache, src)
			}
		})
	}
	for _, src := range sources {
		srcCh <- src
	}
	close(srcCh)
	wg.Wait()
	close(outCh)

	var subReports []schema.Report
	var failures []schema.SourceFailure
	for out := range outCh {
		if out.failure != nil {
			failures = append(failures, *out.failure)
			continue
		}
		subReports = append(subReports, *out.report)
	}
	sort.Slice(subReports, func(i, j int) bool { return subReports[i].Name < subReports[j].Name })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Source < failures[j].Source })

	if len(subReports) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAllSourcesFailed, summarizeFailures(failures))
	}

	mergedHours := make(schema.HourBucket)
	var mergedWeek schema.WeekBucket
	for _, sub := range subReports {
		mergedHours = schema.MergeHourBuckets(mergedHours, sub.Hours)
		mergedWeek = schema.MergeWeekBuckets(mergedWeek, sub.Week)
	}
	if mergedHours.Total() == 0 {
		return nil, ErrNoCommits
	}

	report := DeriveReport(mergedHours, mergedWeek, schema.AggregateSample, cfg.Thresholds)
	report.Name = cfg.Name
	report.StartTime = cfg.StartTime
	report.EndTime = cfg.EndTime
	report.Sources = subReports
	report.Failures = failures
	return &report, nil
}

// analyzeOne retrieves and analyzes one source for an aggregate run. A source
// whose retrieval fails or is canceled becomes a recorded failure with its
// data discarded entirely. A source that retrieves cleanly but has no commits
// is a success with an empty contribution, not a failure.
func analyzeOne(ctx context.Context, cfg *contract.Config, client contract.GitClient, cache contract.BucketCache, src schema.Source) sourceOutcome {
	if err := ctx.Err(); err != nil {
		return sourceOutcome{failure: &schema.SourceFailure{Source: src.Name, Reason: err.Error()}}
	}

	hours, week, err := retrieveBuckets(ctx, cfg, client, cache, src)
	if err != nil {
		return sourceOutcome{failure: &schema.SourceFailure{Source: src.Name, Reason: err.Error()}}
	}

	sub := DeriveReport(hours, week, schema.SingleSample, cfg.Thresholds)
	sub.Name = src.Name
	sub.StartTime = cfg.StartTime
	sub.EndTime = cfg.EndTime
	return sourceOutcome{report: &sub}
}

// retrieveBuckets fetches the commit timestamps for one source and projects
// them into buckets, going through the cache for local sources when one is
// configured. Remote sources are fetched into a temporary clone that is
// removed before returning.
func retrieveBuckets(ctx context.Context, cfg *contract.Config, client contract.GitClient, cache contract.BucketCache, src schema.Source) (schema.HourBucket, schema.WeekBucket, error) {
	path := src.Path
	cacheable := cache != nil && src.Kind == schema.LocalSource

	if src.Kind == schema.RemoteSource {
		tmp, cleanup, err := client.CloneTemp(ctx, src.Path)
		if err != nil {
			return nil, schema.WeekBucket{}, fmt.Errorf("clone %s: %w", src.Path, err)
		}
		defer cleanup()
		path = tmp
	} else {
		root, err := client.RepoRoot(ctx, path)
		if err != nil {
			return nil, schema.WeekBucket{}, err
		}
		path = root
	}

	opts := contract.LogOptions{Start: cfg.StartTime, End: cfg.EndTime, Author: cfg.Author}

	var cacheKey string
	if cacheable {
		head, err := client.HeadHash(ctx, path)
		if err == nil {
			cacheKey = contract.CacheKey(head, opts)
			if hours, week, ok, cacheErr := cache.Get(cacheKey); cacheErr == nil && ok {
				return hours, week, nil
			}
		}
	}

	records, err := client.CommitTimestamps(ctx, path, opts)
	if err != nil {
		return nil, schema.WeekBucket{}, err
	}
	hours, week := BucketRecords(records)

	if cacheable && cacheKey != "" {
		if err := cache.Set(cacheKey, hours, week); err != nil {
			contract.LogWarn("Bucket cache write failed", err)
		}
	}
	return hours, week, nil
}

// summarizeFailures flattens recorded failures into one error message.
func summarizeFailures(failures []schema.SourceFailure) string {
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = fmt.Sprintf("%s (%s)", f.Source, f.Reason)
	}
	return strings.Join(parts, "; ")
}
