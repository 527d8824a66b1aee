package core

import "github.com/huangsam/tempo/schema"

// Workday-ratio cutoffs for inferring nominal work days per week.
// A ratio between large-small week alternation (79) and a solid six-day week
// (85) still reads as six days.
const (
	fiveDayRatio = 90
	sixDayRatio  = 85
	altWeekRatio = 79
	sevenDayTurn = 72
)

// SplitWorkHours partitions the hour bucket into core-hours and overtime
// commits. With a detected opening hour h the core window is the inclusive
// span [h, h+CoreSpanHours]; without one the fixed fallback window applies.
// The split always sums to the bucket total.
func SplitWorkHours(hours schema.HourBucket, window schema.WorkWindow, t schema.Thresholds) schema.WorkSplit {
	start, end := t.FallbackOpening, t.FallbackClosing
	if window.HasOpening {
		start = window.Opening
		end = window.Opening + t.CoreSpanHours
	}

	var split schema.WorkSplit
	for hour, count := range hours {
		if hour >= start && hour <= end {
			split.Core += count
		} else {
			split.Overtime += count
		}
	}
	return split
}

// ClassifyWeekPattern partitions the week bucket into workday and weekend
// commits and infers the nominal number of work days per week from the
// workday share. An empty bucket returns the five-day default with an empty
// split; the caller treats zero totals as a no-data condition.
func ClassifyWeekPattern(week schema.WeekBucket) (int, schema.WeekSplit) {
	total := week.Total()
	if total == 0 {
		return 5, schema.WeekSplit{}
	}

	split := schema.WeekSplit{
		Workday: week.Workdays(),
		Weekend: week.Weekends(),
	}
	workdayRatio := float64(split.Workday) / float64(total) * 100

	var workDays int
	switch {
	case workdayRatio >= fiveDayRatio:
		workDays = 5
	case workdayRatio >= sixDayRatio:
		workDays = 6
	case workdayRatio >= altWeekRatio:
		workDays = 6
	case workdayRatio >= sevenDayTurn:
		workDays = 7
	default:
		workDays = 7
	}
	return workDays, split
}
