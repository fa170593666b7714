package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorSchemes(t *testing.T) {
	for name, scheme := range map[string]*ColorScheme{
		"default":  DefaultColorScheme(),
		"no color": NoColorScheme(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, scheme.Kind)
			assert.NotNil(t, scheme.Project)
			assert.NotNil(t, scheme.Metric)
			assert.NotNil(t, scheme.TagKey)
			assert.NotNil(t, scheme.TagValue)
			assert.NotNil(t, scheme.Value)
			assert.NotNil(t, scheme.Success)
			assert.NotNil(t, scheme.Error)
			assert.NotNil(t, scheme.Highlight)
			assert.NotNil(t, scheme.Muted)
		})
	}

	assert.Equal(t, "plain", NoColorScheme().Metric.Sprint("plain"))
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "✓", SuccessIcon(true))
	assert.Equal(t, "✗", ErrorIcon(true))
	assert.Equal(t, "ℹ", InfoIcon(true))
	assert.Contains(t, SuccessIcon(false), "✓")
	assert.Contains(t, ErrorIcon(false), "✗")
}

func TestUseColors(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, UseColors(&buf, true), "flag disables colors")

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, UseColors(&buf, false))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColors(&buf, false))

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	assert.False(t, UseColors(&buf, false), "buffers are not terminals")
}
