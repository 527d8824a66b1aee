package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGetPlainLabel tests the severity tiers, including negative indexes.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{-198, RelaxedValue},
		{0, RelaxedValue},
		{10, RelaxedValue},
		{11, BalancedValue},
		{50, BalancedValue},
		{51, StrainedValue},
		{90, StrainedValue},
		{91, SevereValue},
		{110, SevereValue},
		{111, ExtremeValue},
		{300, ExtremeValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainLabel(tt.index), "index %d", tt.index)
	}
}

// TestGetColorLabel tests that colored labels carry the plain text.
func TestGetColorLabel(t *testing.T) {
	for _, index := range []int{0, 30, 70, 100, 200} {
		assert.Contains(t, GetColorLabel(index), GetPlainLabel(index))
	}
}

// TestTruncateName tests the leading-ellipsis name shortening.
func TestTruncateName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short name unchanged", "repo", 15, "repo"},
		{"exact fit unchanged", "abcde", 5, "abcde"},
		{"long name keeps tail", "organization/very-long-repository", 15, "...g-repository"},
		{"tiny limit keeps raw tail", "abcdef", 2, "ef"},
		{"zero limit unchanged", "abcdef", 0, "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateName(tt.input, tt.maxLen)
			assert.Equal(t, tt.want, got)
			if tt.maxLen > 0 {
				assert.LessOrEqual(t, len([]rune(got)), max(tt.maxLen, len([]rune(tt.input))))
			}
		})
	}
}
