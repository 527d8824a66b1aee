package core

import (
	"math"

	"github.com/huangsam/tempo/schema"
)

// DetectWorkWindow derives the probable opening and closing hours from the
// hour bucket. An hour counts as active when its commit count is at least
// ActiveHourScore times the quadratic mean (RMS) of all observed hour counts.
// The earliest active hour inside the opening range becomes the opening hour;
// the latest active hour inside the closing range becomes the closing hour.
// Either side is absent when no hour in its range qualifies, and an empty
// bucket yields an empty window without touching the statistics.
func DetectWorkWindow(hours schema.HourBucket, t schema.Thresholds) schema.WorkWindow {
	var window schema.WorkWindow
	if hours.Total() == 0 {
		return window
	}

	rms := quadraticMean(hours)
	if rms == 0 {
		return window
	}

	for hour, count := range hours {
		if float64(count)/rms < t.ActiveHourScore {
			continue
		}
		if hour >= t.OpeningMin && hour <= t.OpeningMax {
			if !window.HasOpening || hour < window.Opening {
				window.Opening = hour
				window.HasOpening = true
			}
		}
		if hour >= t.ClosingMin && hour <= t.ClosingMax {
			if !window.HasClosing || hour > window.Closing {
				window.Closing = hour
				window.HasClosing = true
			}
		}
	}
	return window
}

// quadraticMean computes the root mean square of the counts across the
// distinct observed hours.
func quadraticMean(hours schema.HourBucket) float64 {
	if len(hours) == 0 {
		return 0
	}
	sum := 0.0
	for _, count := range hours {
		sum += float64(count) * float64(count)
	}
	return math.Sqrt(sum / float64(len(hours)))
}
