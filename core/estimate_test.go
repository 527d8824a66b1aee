package core

import (
	"testing"

	"github.com/huangsam/tempo/schema"
	"github.com/stretchr/testify/assert"
)

// TestEstimateWorkload tests the comparable-hours estimation.
func TestEstimateWorkload(t *testing.T) {
	thresholds := schema.DefaultThresholds()

	t.Run("996 schedule", func(t *testing.T) {
		window := schema.WorkWindow{Opening: 9, Closing: 21, HasOpening: true, HasClosing: true}
		est := EstimateWorkload(window, 6, 34, thresholds)
		assert.Equal(t, "996", est.Pattern)
		// 12 attendance hours minus the lunch and dinner breaks.
		assert.Equal(t, 9.5, est.DailyWork)
		assert.Equal(t, 57.0, est.WeeklyWork)
		assert.Equal(t, 19.4, est.WeeklyOvertime)
	})

	t.Run("965 schedule", func(t *testing.T) {
		window := schema.WorkWindow{Opening: 9, Closing: 18, HasOpening: true, HasClosing: true}
		est := EstimateWorkload(window, 5, 0, thresholds)
		assert.Equal(t, "965", est.Pattern)
		assert.Equal(t, 7.5, est.DailyWork)
		assert.Equal(t, 37.5, est.WeeklyWork)
		assert.Equal(t, 0.0, est.WeeklyOvertime)
	})

	t.Run("late closing deducts dinner break", func(t *testing.T) {
		window := schema.WorkWindow{Opening: 10, Closing: 20, HasOpening: true, HasClosing: true}
		est := EstimateWorkload(window, 5, 10, thresholds)
		assert.Equal(t, 7.5, est.DailyWork)
	})

	t.Run("attendance wraps past the opening hour", func(t *testing.T) {
		window := schema.WorkWindow{Opening: 11, Closing: 7, HasOpening: true, HasClosing: true}
		est := EstimateWorkload(window, 5, 0, thresholds)
		// 12 - 11 + 7 = 8 attendance hours, short day keeps the lunch-only break.
		assert.Equal(t, 6.5, est.DailyWork)
	})

	t.Run("missing window uses the fallback span", func(t *testing.T) {
		est := EstimateWorkload(schema.WorkWindow{}, 5, 0, thresholds)
		assert.Equal(t, 7.5, est.DailyWork)
		assert.Equal(t, "??5", est.Pattern)
	})

	t.Run("negative ratio yields negative overtime", func(t *testing.T) {
		window := schema.WorkWindow{Opening: 9, Closing: 18, HasOpening: true, HasClosing: true}
		est := EstimateWorkload(window, 5, -66, thresholds)
		assert.Less(t, est.WeeklyOvertime, 0.0)
	})
}

// TestComparisonTable tests merging the computed row into the reference table.
func TestComparisonTable(t *testing.T) {
	report := &schema.Report{
		OvertimeRatio: 20,
		Index:         60,
		Estimate: schema.Estimate{
			Pattern:        "975",
			DailyWork:      8.5,
			WeeklyWork:     42.5,
			WeeklyOvertime: 8.5,
		},
	}
	rows := ComparisonTable(report)
	assert.Len(t, rows, len(schema.Archetypes())+1)

	computed := 0
	for i, row := range rows {
		if row.Computed {
			computed++
			assert.Equal(t, "975", row.Pattern)
		}
		if i > 0 {
			assert.GreaterOrEqual(t, row.Index, rows[i-1].Index, "rows must be sorted by index")
		}
	}
	assert.Equal(t, 1, computed)
}
