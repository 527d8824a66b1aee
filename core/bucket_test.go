package core

import (
	"testing"

	"github.com/huangsam/tempo/schema"
	"github.com/stretchr/testify/assert"
)

// TestBucketRecords tests the record-to-bucket projection.
func TestBucketRecords(t *testing.T) {
	t.Run("both buckets sum to record count", func(t *testing.T) {
		records := []schema.TimestampRecord{
			{Hour: 9, Weekday: 1},
			{Hour: 9, Weekday: 2},
			{Hour: 22, Weekday: 6},
		}
		hours, week := BucketRecords(records)
		assert.Equal(t, 3, hours.Total())
		assert.Equal(t, 3, week.Total())
		assert.Equal(t, 2, hours[9])
		assert.Equal(t, 1, week[5]) // Saturday
	})

	t.Run("invalid fields skipped", func(t *testing.T) {
		records := []schema.TimestampRecord{
			{Hour: -1, Weekday: 1},
			{Hour: 24, Weekday: 1},
			{Hour: 9, Weekday: 0},
			{Hour: 9, Weekday: 8},
			{Hour: 9, Weekday: 1},
		}
		hours, week := BucketRecords(records)
		assert.Equal(t, 1, hours.Total())
		assert.Equal(t, 1, week.Total())
	})

	t.Run("empty input yields empty buckets", func(t *testing.T) {
		hours, week := BucketRecords(nil)
		assert.Equal(t, 0, hours.Total())
		assert.Equal(t, 0, week.Total())
		assert.Equal(t, 0, hours.ActiveHours())
	})
}
