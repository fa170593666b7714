package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Kind      *color.Color
	Project   *color.Color
	Metric    *color.Color
	TagKey    *color.Color
	TagValue  *color.Color
	Value     *color.Color
	Success   *color.Color
	Error     *color.Color
	Highlight *color.Color
	Muted     *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Kind:      color.New(color.FgBlue, color.Bold),
		Project:   color.New(color.FgMagenta),
		Metric:    color.New(color.FgCyan, color.Bold),
		TagKey:    color.New(color.FgYellow),
		TagValue:  color.New(color.FgWhite),
		Value:     color.New(color.FgGreen, color.Bold),
		Success:   color.New(color.FgGreen),
		Error:     color.New(color.FgRed),
		Highlight: color.New(color.FgMagenta, color.Bold),
		Muted:     color.New(color.Faint),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	// Disable all colors
	scheme.Kind.DisableColor()
	scheme.Project.DisableColor()
	scheme.Metric.DisableColor()
	scheme.TagKey.DisableColor()
	scheme.TagValue.DisableColor()
	scheme.Value.DisableColor()
	scheme.Success.DisableColor()
	scheme.Error.DisableColor()
	scheme.Highlight.DisableColor()
	scheme.Muted.DisableColor()

	return scheme
}

// SchemeFor returns NoColorScheme when noColor is set, DefaultColorScheme otherwise.
func SchemeFor(noColor bool) *ColorScheme {
	if noColor {
		return NoColorScheme()
	}
	return DefaultColorScheme()
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}

// InfoIcon returns an info symbol with appropriate color
func InfoIcon(noColor bool) string {
	if noColor {
		return "ℹ"
	}
	return color.New(color.FgBlue).Sprint("ℹ")
}
