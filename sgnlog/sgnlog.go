// Package sgnlog provides the structured logging used across this module,
// grounded on zerolog the way github.com/gsoultan/Hermod's pkg/engine
// wraps it, and on the per-component level parsing implied by
// original_source's SGNLOGLEVEL environment variable (seen set as
// "pipeline:MEMPROF" in its test suite: a component name and a level,
// comma-separated for more than one component).
package sgnlog

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// extraLevels are sgn-specific levels below zerolog's own granularity,
// treated as aliases for zerolog.TraceLevel so they still print when a
// component is tuned this verbose. MEMPROF traces memory-profiling detail
// the way the original's custom level did.
const (
	levelMemprof = "MEMPROF"
)

// componentLevels holds the per-component level overrides parsed from
// SGNLOGLEVEL, e.g. "pipeline:debug,subprocess:MEMPROF".
var componentLevels = parseSGNLOGLEVEL(os.Getenv("SGNLOGLEVEL"))

func parseSGNLOGLEVEL(raw string) map[string]zerolog.Level {
	out := map[string]zerolog.Level{}
	if raw == "" {
		return out
	}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		component := strings.TrimSpace(parts[0])
		levelStr := strings.ToUpper(strings.TrimSpace(parts[1]))
		if levelStr == levelMemprof {
			out[component] = zerolog.TraceLevel
			continue
		}
		lvl, err := zerolog.ParseLevel(strings.ToLower(levelStr))
		if err != nil {
			continue
		}
		out[component] = lvl
	}
	return out
}

// New returns a zerolog.Logger for component, writing structured JSON to
// stderr at the level given by SGNLOGLEVEL for that component, or
// zerolog.InfoLevel if the component has no override.
func New(component string) zerolog.Logger {
	level, ok := componentLevels[component]
	if !ok {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
