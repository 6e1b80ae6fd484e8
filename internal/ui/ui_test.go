package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Render without escape sequences so assertions see plain text
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestIsTTY_WithBuffer_ReturnsFalse(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestIsTTY_WithNil_ReturnsFalse(t *testing.T) {
	assert.False(t, IsTTY(nil))
}

func TestNewConfig_Defaults(t *testing.T) {
	// Given: default config
	cfg := NewConfig(&bytes.Buffer{})

	// Then: has sensible defaults
	assert.NotNil(t, cfg.Output)
	assert.False(t, cfg.ForcePlain)
	assert.False(t, cfg.NoColor)
	assert.Equal(t, DefaultCommentWidth, cfg.CommentWidth)
	assert.Equal(t, DefaultViewportWidth, cfg.ViewportWidth)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(&bytes.Buffer{},
		WithForcePlain(true),
		WithNoColor(true),
		WithCommentWidth(30),
		WithViewportWidth(0), // ignored
	)

	assert.True(t, cfg.ForcePlain)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, 30, cfg.CommentWidth)
	assert.Equal(t, DefaultViewportWidth, cfg.ViewportWidth)
}

func TestConfig_Interactive_FalseForBuffer(t *testing.T) {
	assert.False(t, NewConfig(&bytes.Buffer{}).Interactive())
	assert.False(t, NewConfig(os.Stdout, WithForcePlain(true)).Interactive())
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, DetectCI())
}

func TestGetStyles(t *testing.T) {
	// Matched text must be distinguishable in both modes
	assert.True(t, DefaultStyles().Matched.GetBackground() != lipgloss.NoColor{})
	assert.True(t, NoColorStyles().Matched.GetUnderline())
	assert.True(t, GetStyles(true).Matched.GetUnderline())
	assert.False(t, GetStyles(false).Matched.GetUnderline())
}
