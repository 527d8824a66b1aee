package core

import (
	"math"

	"github.com/huangsam/tempo/schema"
)

// indexPerRatioPoint scales the overtime ratio into the headline index, so a
// full 996 schedule (ratio 34) lands near index 100.
const indexPerRatioPoint = 3

// ComputeOvertimeIndex combines the hour split and week split into the
// overtime ratio and index.
//
// A share of core-hours activity is first redistributed into the overtime
// count, proportional to how much of all activity falls on weekends; this
// corrects for teams whose weekday commits look regular while their weekend
// share is high. The ratio is the ceiling percentage of the amended overtime
// count over all commits.
//
// When the ratio lands at zero and commits spread across fewer distinct hours
// than SparseHourLimit, the sample is too thin to trust: the observed volume
// is projected onto a full-width day and the shortfall becomes a negative
// ratio. That negative value is an explicit under-utilization signal, not an
// error, and is never clamped.
//
// The reliable flag requires the index to stay under ReliableIndexMax and the
// commit count to exceed the minimum sample for the run kind.
func ComputeOvertimeIndex(work schema.WorkSplit, week schema.WeekSplit, activeHours int, kind schema.SampleKind, t schema.Thresholds) (index, ratio int, reliable bool) {
	core := work.Core
	overtime := work.Overtime
	total := core + overtime
	if total == 0 {
		return 0, 0, false
	}

	amended := float64(overtime)
	if weekTotal := week.Workday + week.Weekend; weekTotal > 0 {
		amended = math.Round(float64(overtime) + float64(core)*float64(week.Weekend)/float64(weekTotal))
	}
	ratio = int(math.Ceil(amended / float64(total) * 100))

	if ratio == 0 && activeHours > 0 && activeHours < t.SparseHourLimit {
		average := float64(total) / float64(activeHours)
		mockTotal := average * float64(t.SparseHourLimit)
		if mockTotal > 0 {
			ratio = int(math.Ceil(float64(total)/mockTotal*100)) - 100
		}
	}

	index = ratio * indexPerRatioPoint
	reliable = index < t.ReliableIndexMax && total > t.SampleMin(kind)
	return index, ratio, reliable
}
