package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// regularRecords builds n commits spread evenly across the given hours, all on
// weekdays.
func regularRecords(hours []int, perHour int) []schema.TimestampRecord {
	var records []schema.TimestampRecord
	i := 0
	for _, h := range hours {
		for range perHour {
			records = append(records, schema.TimestampRecord{Hour: h, Weekday: i%5 + 1})
			i++
		}
	}
	return records
}

// testConfig returns a minimal validated config for the given sources.
func testConfig(sources ...schema.Source) *contract.Config {
	return &contract.Config{
		Sources:    sources,
		StartTime:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Name:       "test",
		Workers:    2,
		Thresholds: schema.DefaultThresholds(),
	}
}

// expectLocalSource programs the mock for one local source retrieval.
func expectLocalSource(client *contract.MockGitClient, path string, records []schema.TimestampRecord, err error) {
	if err != nil {
		client.On("RepoRoot", mock.Anything, path).Return("", err)
		return
	}
	client.On("RepoRoot", mock.Anything, path).Return(path, nil)
	client.On("CommitTimestamps", mock.Anything, path, mock.Anything).Return(records, err)
}

// TestAnalyzeSourceRegularSchedule tests a single repo with a clean nine-to-six
// weekday history.
func TestAnalyzeSourceRegularSchedule(t *testing.T) {
	src := schema.Source{Name: "repo", Path: "/repo", Kind: schema.LocalSource}
	cfg := testConfig(src)
	client := new(contract.MockGitClient)
	records := regularRecords([]int{9, 10, 11, 12, 13, 14, 15, 16, 17, 18}, 10)
	expectLocalSource(client, "/repo", records, nil)

	report, err := AnalyzeSource(context.Background(), cfg, client, nil, src)
	require.NoError(t, err)

	assert.Equal(t, "repo", report.Name)
	assert.Equal(t, 100, report.TotalCommits)
	assert.Equal(t, 9, report.Window.Opening)
	assert.Equal(t, 18, report.Window.Closing)
	assert.Equal(t, 5, report.WorkDays)
	assert.Equal(t, 0, report.OvertimeRatio)
	assert.Equal(t, 0, report.Index)
	assert.True(t, report.Reliable)
	assert.Equal(t, "965", report.Estimate.Pattern)
	assert.Equal(t, schema.DescExcellent, report.Description)
	client.AssertExpectations(t)
}

// TestAnalyzeSourceNightShift tests a history committed entirely around
// midnight: no opening is detected and everything counts as overtime.
func TestAnalyzeSourceNightShift(t *testing.T) {
	src := schema.Source{Name: "night", Path: "/night", Kind: schema.LocalSource}
	cfg := testConfig(src)
	client := new(contract.MockGitClient)
	records := append(
		regularRecords([]int{23}, 30),
		regularRecords([]int{0}, 30)...,
	)
	expectLocalSource(client, "/night", records, nil)

	report, err := AnalyzeSource(context.Background(), cfg, client, nil, src)
	require.NoError(t, err)

	assert.False(t, report.Window.HasOpening)
	assert.True(t, report.Window.HasClosing)
	assert.Equal(t, 23, report.Window.Closing)
	assert.Equal(t, 0, report.WorkSplit.Core)
	assert.Equal(t, 60, report.WorkSplit.Overtime)
	assert.Equal(t, 100, report.OvertimeRatio)
	assert.Equal(t, 300, report.Index)
	assert.False(t, report.Reliable, "index past the ceiling must not be reliable")
	assert.Equal(t, schema.DescTerrible, report.Description)
}

// TestAnalyzeSourceNoCommits tests that an empty single-source run is fatal.
func TestAnalyzeSourceNoCommits(t *testing.T) {
	src := schema.Source{Name: "empty", Path: "/empty", Kind: schema.LocalSource}
	cfg := testConfig(src)
	client := new(contract.MockGitClient)
	expectLocalSource(client, "/empty", nil, nil)

	_, err := AnalyzeSource(context.Background(), cfg, client, nil, src)
	assert.ErrorIs(t, err, ErrNoCommits)
}

// TestAnalyzeSourceCacheHit tests that a warm cache skips the log traversal.
func TestAnalyzeSourceCacheHit(t *testing.T) {
	src := schema.Source{Name: "repo", Path: "/repo", Kind: schema.LocalSource}
	cfg := testConfig(src)
	client := new(contract.MockGitClient)
	client.On("RepoRoot", mock.Anything, "/repo").Return("/repo", nil)
	client.On("HeadHash", mock.Anything, "/repo").Return("abc123", nil)

	hours := make(schema.HourBucket)
	var week schema.WeekBucket
	for range 60 {
		hours.Add(12)
		week.Add(2)
	}
	cache := &memoryCache{entries: map[string][2]any{}}
	opts := contract.LogOptions{Start: cfg.StartTime, End: cfg.EndTime}
	require.NoError(t, cache.Set(contract.CacheKey("abc123", opts), hours, week))

	report, err := AnalyzeSource(context.Background(), cfg, client, cache, src)
	require.NoError(t, err)
	assert.Equal(t, 60, report.TotalCommits)
	// CommitTimestamps was never programmed; reaching it would fail the test.
	client.AssertExpectations(t)
}

// TestAnalyzeSourcesAggregate tests merging several sources and the order
// independence of the result.
func TestAnalyzeSourcesAggregate(t *testing.T) {
	alpha := schema.Source{Name: "alpha", Path: "/a", Kind: schema.LocalSource}
	beta := schema.Source{Name: "beta", Path: "/b", Kind: schema.LocalSource}
	alphaRecords := regularRecords([]int{9, 10, 11, 12}, 10)
	betaRecords := regularRecords([]int{14, 15, 16, 17, 18}, 4)

	run := func(sources ...schema.Source) *schema.Report {
		cfg := testConfig(sources...)
		client := new(contract.MockGitClient)
		expectLocalSource(client, "/a", alphaRecords, nil)
		expectLocalSource(client, "/b", betaRecords, nil)
		report, err := AnalyzeSources(context.Background(), cfg, client, nil)
		require.NoError(t, err)
		return report
	}

	first := run(alpha, beta)
	second := run(beta, alpha)

	assert.Equal(t, 60, first.TotalCommits)
	require.Len(t, first.Sources, 2)
	assert.Equal(t, "alpha", first.Sources[0].Name)
	assert.Equal(t, "beta", first.Sources[1].Name)
	assert.Equal(t, 40, first.Sources[0].TotalCommits)
	assert.Equal(t, 20, first.Sources[1].TotalCommits)

	// Source order must not change any derived value.
	assert.Equal(t, first.Hours, second.Hours)
	assert.Equal(t, first.Week, second.Week)
	assert.Equal(t, first.Index, second.Index)
	assert.Equal(t, first.OvertimeRatio, second.OvertimeRatio)
	assert.Equal(t, first.Sources[0].Name, second.Sources[0].Name)
}

// TestAnalyzeSourcesPartialFailure tests that failed sources are recorded and
// skipped while empty sources still count as contributors.
func TestAnalyzeSourcesPartialFailure(t *testing.T) {
	good := schema.Source{Name: "good", Path: "/good", Kind: schema.LocalSource}
	empty := schema.Source{Name: "empty", Path: "/empty", Kind: schema.LocalSource}
	bad := schema.Source{Name: "bad", Path: "/bad", Kind: schema.LocalSource}

	goodRecords := regularRecords([]int{9, 10, 11, 12}, 10)
	cfg := testConfig(good, empty, bad)
	client := new(contract.MockGitClient)
	expectLocalSource(client, "/good", goodRecords, nil)
	expectLocalSource(client, "/empty", nil, nil)
	expectLocalSource(client, "/bad", nil, errors.New("not a git repository"))

	report, err := AnalyzeSources(context.Background(), cfg, client, nil)
	require.NoError(t, err)

	assert.Equal(t, 40, report.TotalCommits)
	require.Len(t, report.Sources, 2, "the empty source still contributes a sub-report")
	assert.Equal(t, 1, report.FailedSources())
	assert.Equal(t, "bad", report.Failures[0].Source)
	assert.Contains(t, report.Failures[0].Reason, "not a git repository")
	assert.True(t, report.Reliable, "40 commits clear the aggregate minimum")

	// The failed and empty sources must not perturb the merged statistics:
	// the aggregate matches a standalone run over the surviving source.
	soloClient := new(contract.MockGitClient)
	expectLocalSource(soloClient, "/good", goodRecords, nil)
	solo, err := AnalyzeSource(context.Background(), testConfig(good), soloClient, nil, good)
	require.NoError(t, err)

	assert.Equal(t, solo.Hours, report.Hours)
	assert.Equal(t, solo.Week, report.Week)
	assert.Equal(t, solo.WorkSplit, report.WorkSplit)
	assert.Equal(t, solo.WeekSplit, report.WeekSplit)
	assert.Equal(t, solo.OvertimeRatio, report.OvertimeRatio)
	assert.Equal(t, solo.Index, report.Index)
}

// TestAnalyzeSourcesAllFailed tests the fatal path when nothing contributes.
func TestAnalyzeSourcesAllFailed(t *testing.T) {
	bad := schema.Source{Name: "bad", Path: "/bad", Kind: schema.LocalSource}
	cfg := testConfig(bad)
	client := new(contract.MockGitClient)
	expectLocalSource(client, "/bad", nil, errors.New("boom"))

	_, err := AnalyzeSources(context.Background(), cfg, client, nil)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	assert.Contains(t, err.Error(), "bad")
}

// TestAnalyzeSourcesCanceled tests that a canceled context fails every source
// without touching the git client.
func TestAnalyzeSourcesCanceled(t *testing.T) {
	src := schema.Source{Name: "repo", Path: "/repo", Kind: schema.LocalSource}
	cfg := testConfig(src)
	client := new(contract.MockGitClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AnalyzeSources(ctx, cfg, client, nil)
	assert.ErrorIs(t, err, ErrAllSourcesFailed)
	client.AssertExpectations(t)
}

// TestAnalyzeSourcesRemote tests that remote sources are cloned into a
// temporary directory that gets cleaned up.
func TestAnalyzeSourcesRemote(t *testing.T) {
	src := schema.Source{Name: "repo", Path: "https://example.com/repo.git", Kind: schema.RemoteSource}
	cfg := testConfig(src)
	client := new(contract.MockGitClient)

	cleaned := false
	cleanup := func() error { cleaned = true; return nil }
	client.On("CloneTemp", mock.Anything, "https://example.com/repo.git").Return("/tmp/clone", cleanup, nil)
	client.On("CommitTimestamps", mock.Anything, "/tmp/clone", mock.Anything).
		Return(regularRecords([]int{9, 10, 11, 12, 13, 14}, 10), nil)

	report, err := AnalyzeSource(context.Background(), cfg, client, nil, src)
	require.NoError(t, err)
	assert.Equal(t, 60, report.TotalCommits)
	assert.True(t, cleaned, "temporary clone must be removed")
	client.AssertExpectations(t)
}

// TestDeriveReportConsistency tests that the report totals always line up with
// their buckets and splits.
func TestDeriveReportConsistency(t *testing.T) {
	hours := schema.HourBucket{9: 20, 13: 15, 22: 5}
	week := schema.WeekBucket{10, 10, 10, 5, 0, 3, 2}
	report := DeriveReport(hours, week, schema.SingleSample, schema.DefaultThresholds())

	assert.Equal(t, hours.Total(), report.TotalCommits)
	assert.Equal(t, report.TotalCommits, report.WorkSplit.Core+report.WorkSplit.Overtime)
	assert.Equal(t, week.Total(), report.WeekSplit.Workday+report.WeekSplit.Weekend)
	assert.Equal(t, schema.DescribeIndex(report.Index), report.Description)
}

// memoryCache is a map-backed BucketCache for tests.
type memoryCache struct {
	entries map[string][2]any
}

var _ contract.BucketCache = &memoryCache{} // Compile-time check

func (c *memoryCache) Get(key string) (schema.HourBucket, schema.WeekBucket, bool, error) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, schema.WeekBucket{}, false, nil
	}
	return entry[0].(schema.HourBucket), entry[1].(schema.WeekBucket), true, nil
}

func (c *memoryCache) Set(key string, hours schema.HourBucket, week schema.WeekBucket) error {
	c.entries[key] = [2]any{hours, week}
	return nil
}

func (c *memoryCache) Close() error { return nil }
