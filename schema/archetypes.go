package schema

// Archetype is one static reference row in the work-pattern comparison table.
// The values are fixed reference data, not computed by the pipeline.
type Archetype struct {
	Pattern       string  `json:"pattern"`        // Named work pattern, e.g. "996"
	DailyHours    float64 `json:"daily_hours"`    // Effective hours worked per day
	WeeklyHours   float64 `json:"weekly_hours"`   // Hours worked per week
	OvertimeHours float64 `json:"overtime_hours"` // Overtime hours per week
	Ratio         int     `json:"ratio"`          // Overtime ratio percent
	Index         int     `json:"index"`          // Overtime index
	Computed      bool    `json:"computed"`       // True for the analyzed project's row
}

// archetypes is the canonical reference table. Negative values signal
// under-utilization relative to a standard 9-6-5 week and are intentional.
var archetypes = []Archetype{
	{Pattern: "955", DailyHours: 6.5, WeeklyHours: 32.5, OvertimeHours: -5, Ratio: -11, Index: -33},
	{Pattern: "965", DailyHours: 7.5, WeeklyHours: 37.5, OvertimeHours: 0, Ratio: 0, Index: 0},
	{Pattern: "966", DailyHours: 7.5, WeeklyHours: 45, OvertimeHours: 7.5, Ratio: 16, Index: 48},
	{Pattern: "995", DailyHours: 9.5, WeeklyHours: 47.5, OvertimeHours: 10, Ratio: 21, Index: 63},
	{Pattern: "996", DailyHours: 9.5, WeeklyHours: 57, OvertimeHours: 19.5, Ratio: 34, Index: 100},
	{Pattern: "997", DailyHours: 9.5, WeeklyHours: 66.5, OvertimeHours: 29, Ratio: 44, Index: 130},
	{Pattern: "9126", DailyHours: 12.5, WeeklyHours: 75, OvertimeHours: 37.5, Ratio: 50, Index: 150},
}

// Archetypes returns a copy of the reference table so callers can append the
// computed row and re-sort without touching the canonical data.
func Archetypes() []Archetype {
	out := make([]Archetype, len(archetypes))
	copy(out, archetypes)
	return out
}

// Index tier boundaries for qualitative descriptions.
const (
	tierExcellentMax = 10
	tierGoodMax      = 50
	tierMediumMax    = 90
	tierPoorMax      = 110
)

// Qualitative tier descriptions, best to worst.
const (
	DescExcellent = "An enviable schedule with essentially no overtime"
	DescGood      = "Mostly regular hours with occasional overtime"
	DescMedium    = "Sustained overtime pressure"
	DescPoor      = "Heavy overtime, close to a full 996 schedule"
	DescTerrible  = "Extreme overtime beyond 996"
)

// DescribeIndex maps an overtime index onto its qualitative tier description.
func DescribeIndex(index int) string {
	switch {
	case index <= tierExcellentMax:
		return DescExcellent
	case index <= tierGoodMax:
		return DescGood
	case index <= tierMediumMax:
		return DescMedium
	case index <= tierPoorMax:
		return DescPoor
	default:
		return DescTerrible
	}
}
