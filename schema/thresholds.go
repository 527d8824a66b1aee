package schema

// Thresholds are the tunable constants of the statistical pipeline. They are
// passed in by the caller rather than compiled into the analysis functions so
// the single-source and aggregate paths can never diverge silently.
type Thresholds struct {
	ActiveHourScore float64 // Minimum count/rms score for an hour to count as active

	OpeningMin int // Earliest plausible opening hour
	OpeningMax int // Latest plausible opening hour
	ClosingMin int // Earliest plausible closing hour
	ClosingMax int // Latest plausible closing hour

	CoreSpanHours   int // Inclusive span of core hours anchored at the opening hour
	FallbackOpening int // Core window start when no opening hour was detected
	FallbackClosing int // Core window end when no opening hour was detected

	SparseHourLimit int // Active-hour count below which the small-sample correction applies

	ReliableIndexMax   int // Index at or above which a result is never reliable
	SingleSampleMin    int // Commit count that must be exceeded for a reliable single-source run
	AggregateSampleMin int // Commit count that must be exceeded for a reliable aggregate run
}

// DefaultThresholds returns the tuned defaults for single-team development
// history.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ActiveHourScore:    0.45,
		OpeningMin:         8,
		OpeningMax:         12,
		ClosingMin:         17,
		ClosingMax:         23,
		CoreSpanHours:      9,
		FallbackOpening:    9,
		FallbackClosing:    18,
		SparseHourLimit:    9,
		ReliableIndexMax:   200,
		SingleSampleMin:    50,
		AggregateSampleMin: 30,
	}
}

// SampleMin returns the minimum-sample threshold for the given run kind.
func (t Thresholds) SampleMin(kind SampleKind) int {
	if kind == AggregateSample {
		return t.AggregateSampleMin
	}
	return t.SingleSampleMin
}
