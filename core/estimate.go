package core

import (
	"math"
	"sort"

	"github.com/huangsam/tempo/schema"
)

// Break deductions applied to attendance hours. Finishing after lateClosing
// assumes a dinner break on top of the lunch break.
const (
	lunchBreakHours  = 1.5
	fullBreakHours   = 2.5
	lateClosing      = 19
	earlyClosingWrap = 7
	shortAttendance  = 10
)

// EstimateWorkload derives comparable daily/weekly/overtime-hour figures from
// the detected window and inferred work days, for display against the
// archetype reference table. Missing window sides fall back to the default
// core window. Attendance wraps past midnight when the closing hour does not
// exceed the opening hour.
func EstimateWorkload(window schema.WorkWindow, workDays, ratio int, t schema.Thresholds) schema.Estimate {
	opening := t.FallbackOpening
	if window.HasOpening {
		opening = window.Opening
	}
	closing := t.FallbackClosing
	if window.HasClosing {
		closing = window.Closing
	}

	attendance := closing - opening
	if closing <= opening {
		attendance = 12 - opening + closing
	}

	daily := float64(attendance) - fullBreakHours
	if closing <= lateClosing || (closing <= earlyClosingWrap && attendance <= shortAttendance) {
		daily = float64(attendance) - lunchBreakHours
	}
	if daily < 0 {
		daily = 0
	}

	weekly := round1(daily * float64(workDays))
	return schema.Estimate{
		Pattern:        window.Pattern(workDays),
		DailyWork:      round1(daily),
		WeeklyWork:     weekly,
		WeeklyOvertime: round1(float64(ratio) * 0.01 * weekly),
	}
}

// ComparisonTable inserts the report's computed row into the static archetype
// table and returns the whole table sorted by index.
func ComparisonTable(r *schema.Report) []schema.Archetype {
	rows := schema.Archetypes()
	rows = append(rows, schema.Archetype{
		Pattern:       r.Estimate.Pattern,
		DailyHours:    r.Estimate.DailyWork,
		WeeklyHours:   r.Estimate.WeeklyWork,
		OvertimeHours: r.Estimate.WeeklyOvertime,
		Ratio:         r.OvertimeRatio,
		Index:         r.Index,
		Computed:      true,
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
