package sgnlog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseSGNLOGLEVELHandlesMultipleComponents(t *testing.T) {
	levels := parseSGNLOGLEVEL("pipeline:debug,subprocess:MEMPROF")
	assert.Equal(t, zerolog.DebugLevel, levels["pipeline"])
	assert.Equal(t, zerolog.TraceLevel, levels["subprocess"])
}

func TestParseSGNLOGLEVELIgnoresMalformedEntries(t *testing.T) {
	levels := parseSGNLOGLEVEL("justacomponent,pipeline:not-a-level,subprocess:warn")
	_, ok := levels["justacomponent"]
	assert.False(t, ok)
	_, ok = levels["pipeline"]
	assert.False(t, ok)
	assert.Equal(t, zerolog.WarnLevel, levels["subprocess"])
}

func TestParseSGNLOGLEVELEmptyStringYieldsNoOverrides(t *testing.T) {
	assert.Empty(t, parseSGNLOGLEVEL(""))
}

func TestNewDefaultsToInfoLevel(t *testing.T) {
	l := New("unconfigured-component")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
