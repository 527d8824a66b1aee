// Package core has the statistical pipeline: bucketing, work-window detection,
// workload classification, overtime index derivation and multi-source
// aggregation.
package core

import "github.com/huangsam/tempo/schema"

// BucketRecords projects an event stream into its two bucket views: commits
// per observed hour of day and commits per weekday. The hour bucket stays
// sparse; the week bucket is always fully materialized. Both buckets sum to
// the number of records with valid fields.
func BucketRecords(records []schema.TimestampRecord) (schema.HourBucket, schema.WeekBucket) {
	hours := make(schema.HourBucket)
	var week schema.WeekBucket
	for _, rec := range records {
		if rec.Hour < 0 || rec.Hour > 23 || rec.Weekday < 1 || rec.Weekday > 7 {
			continue
		}
		hours.Add(rec.Hour)
		week.Add(rec.Weekday)
	}
	return hours, week
}
