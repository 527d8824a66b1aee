// Package schema has models, enums and shared reference data for all parts of tempo.
package schema

import (
	"strconv"
	"time"
)

// TimestampRecord is a single commit event reduced to its local clock position:
// the hour of day it was made and the ISO weekday it fell on.
type TimestampRecord struct {
	Hour    int // Local hour of day (0-23)
	Weekday int // ISO weekday (1=Monday .. 7=Sunday)
}

// HourBucket maps an hour of day (0-23) to the number of commits observed in it.
// The domain is sparse: hours with no commits are absent, and that sparsity is
// meaningful downstream (the small-sample correction counts distinct observed
// hours, not 24).
type HourBucket map[int]int

// Add records one commit at the given hour.
func (b HourBucket) Add(hour int) {
	b[hour]++
}

// Total returns the number of commits across all observed hours.
func (b HourBucket) Total() int {
	total := 0
	for _, c := range b {
		total += c
	}
	return total
}

// ActiveHours returns the number of distinct hours with at least one commit.
func (b HourBucket) ActiveHours() int {
	return len(b)
}

// Clone returns an independent copy of the bucket.
func (b HourBucket) Clone() HourBucket {
	out := make(HourBucket, len(b))
	for h, c := range b {
		out[h] = c
	}
	return out
}

// MergeHourBuckets sums two hour buckets key-wise into a new bucket.
// The operation is commutative and associative, so multi-source merges are
// independent of source order.
func MergeHourBuckets(a, b HourBucket) HourBucket {
	out := a.Clone()
	for h, c := range b {
		out[h] += c
	}
	return out
}

// WeekBucket holds commit counts per ISO weekday. Unlike HourBucket the domain
// is dense: all seven days are always materialized, zero-filled.
// Index 0 is Monday, index 6 is Sunday.
type WeekBucket [7]int

// Add records one commit on the given ISO weekday (1=Monday .. 7=Sunday).
// Out-of-range weekdays are ignored.
func (b *WeekBucket) Add(weekday int) {
	if weekday >= 1 && weekday <= 7 {
		b[weekday-1]++
	}
}

// Total returns the number of commits across all days.
func (b WeekBucket) Total() int {
	total := 0
	for _, c := range b {
		total += c
	}
	return total
}

// Workdays returns the commit count for Monday through Friday.
func (b WeekBucket) Workdays() int {
	total := 0
	for _, c := range b[:5] {
		total += c
	}
	return total
}

// Weekends returns the commit count for Saturday and Sunday.
func (b WeekBucket) Weekends() int {
	return b[5] + b[6]
}

// MergeWeekBuckets sums two week buckets day-wise.
func MergeWeekBuckets(a, b WeekBucket) WeekBucket {
	var out WeekBucket
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// WeekdayNames are the display labels for WeekBucket entries, Monday first.
var WeekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WorkWindow is the detected opening/closing hour pair. Either side may be
// absent when no hour in its candidate range cleared the detection threshold.
type WorkWindow struct {
	Opening    int  // Detected opening hour (valid only if HasOpening)
	Closing    int  // Detected closing hour, 24h clock (valid only if HasClosing)
	HasOpening bool // Whether an opening hour was detected
	HasClosing bool // Whether a closing hour was detected
}

// Pattern renders the "996"-style work pattern label, e.g. opening 9,
// closing 21 and 6 work days yield "996". Missing sides render as "?".
func (w WorkWindow) Pattern(workDays int) string {
	opening := "?"
	if w.HasOpening {
		opening = strconv.Itoa(w.Opening)
	}
	closing := "?"
	if w.HasClosing {
		closing = strconv.Itoa(w.Closing % 12)
	}
	return opening + closing + strconv.Itoa(workDays)
}

// WorkSplit partitions commits into core-hours versus overtime activity.
type WorkSplit struct {
	Core     int // Commits inside the core working window
	Overtime int // Commits outside it
}

// WeekSplit partitions commits into workday versus weekend activity.
type WeekSplit struct {
	Workday int // Commits on Monday-Friday
	Weekend int // Commits on Saturday-Sunday
}

// SampleKind distinguishes single-source runs from aggregated runs; the two
// use different minimum-sample thresholds for the reliability flag.
type SampleKind string

// Sample kinds.
const (
	SingleSample    SampleKind = "single"
	AggregateSample SampleKind = "aggregate"
)

// SourceKind tags how a source's history is retrieved.
type SourceKind string

// Source kinds.
const (
	LocalSource  SourceKind = "local"  // Path to a working tree or bare repo on disk
	RemoteSource SourceKind = "remote" // Clone URL fetched into a temporary repo
)

// Source identifies one repository to analyze.
type Source struct {
	Name string     // Display name (defaults to the path/URL basename)
	Path string     // Filesystem path or clone URL
	Kind SourceKind // Retrieval strategy
}

// SourceFailure records a source that could not contribute to an aggregate.
type SourceFailure struct {
	Source string `json:"source"` // Source display name
	Reason string `json:"reason"` // Human-readable failure reason
}

// Report is the immutable result of one analysis run, single-source or
// aggregated. It is constructed once, handed to a writer, and never mutated.
type Report struct {
	Name          string          `json:"name"`               // Source or aggregate display name
	StartTime     time.Time       `json:"start_time"`         // Inclusive start of the analyzed range
	EndTime       time.Time       `json:"end_time"`           // Inclusive end of the analyzed range
	TotalCommits  int             `json:"total_commits"`      // Commits analyzed; equals both bucket totals
	Hours         HourBucket      `json:"hours"`              // Commits per observed hour of day
	Week          WeekBucket      `json:"week"`               // Commits per weekday, Monday first
	WorkSplit     WorkSplit       `json:"work_split"`         // Core vs overtime commits
	WeekSplit     WeekSplit       `json:"week_split"`         // Workday vs weekend commits
	Window        WorkWindow      `json:"window"`             // Detected work window
	WorkDays      int             `json:"work_days"`          // Inferred nominal work days per week
	OvertimeRatio int             `json:"overtime_ratio"`     // Percent of activity classified as overtime; may be negative
	Index         int             `json:"index"`              // Overtime index (ratio * 3); may be negative
	Reliable      bool            `json:"reliable"`           // Whether headline numbers should be shown
	Description   string          `json:"description"`        // Qualitative tier description for Index
	Estimate      Estimate        `json:"estimate"`           // Comparable hour figures for the archetype table
	Sources       []Report        `json:"sources,omitempty"`  // Per-source sub-reports (aggregate runs only)
	Failures      []SourceFailure `json:"failures,omitempty"` // Sources that failed retrieval
}

// FailedSources returns the number of sources that could not contribute.
func (r *Report) FailedSources() int {
	return len(r.Failures)
}

// Estimate carries presentation-comparable workload figures derived from the
// detected window, for display against the archetype reference table.
type Estimate struct {
	Pattern        string  `json:"pattern"`         // "996"-style label for this project
	DailyWork      float64 `json:"daily_work"`      // Estimated effective hours worked per day
	WeeklyWork     float64 `json:"weekly_work"`     // Estimated hours worked per week
	WeeklyOvertime float64 `json:"weekly_overtime"` // Estimated overtime hours per week
}
