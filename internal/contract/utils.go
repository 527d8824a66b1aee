package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Severity label constants for the overtime index.
const (
	RelaxedValue  = "Relaxed"
	BalancedValue = "Balanced"
	StrainedValue = "Strained"
	SevereValue   = "Severe"
	ExtremeValue  = "Extreme"
)

// Color variables for console output.
var (
	RelaxedColor  = color.New(color.FgCyan)                // relaxed represents little to no overtime.
	BalancedColor = color.New(color.FgGreen)               // balanced represents a sustainable schedule.
	StrainedColor = color.New(color.FgYellow)              // strained represents standard caution, not bold.
	SevereColor   = color.New(color.FgMagenta, color.Bold) // severe represents strong, distinct warning.
	ExtremeColor  = color.New(color.FgRed, color.Bold)     // extreme represents standard danger.
)

// GetPlainLabel returns a plain text severity label for an overtime index.
// This is the core logic shared by JSON, table and summary printing.
func GetPlainLabel(index int) string {
	switch {
	case index <= 10:
		return RelaxedValue
	case index <= 50:
		return BalancedValue
	case index <= 90:
		return StrainedValue
	case index <= 110:
		return SevereValue
	default:
		return ExtremeValue
	}
}

// GetColorLabel returns a colored severity label for console output.
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(index int) string {
	text := GetPlainLabel(index)

	switch text {
	case RelaxedValue:
		return RelaxedColor.Sprint(text)
	case BalancedValue:
		return BalancedColor.Sprint(text)
	case StrainedValue:
		return StrainedColor.Sprint(text)
	case SevereValue:
		return SevereColor.Sprint(text)
	default: // "Extreme"
		return ExtremeColor.Sprint(text)
	}
}

// TruncateName shortens a display name to maxLen runes, marking the cut with
// a leading ellipsis so the distinctive tail stays visible.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if maxLen <= 0 || len(runes) <= maxLen {
		return name
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path, falling back to stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
