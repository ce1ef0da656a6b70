// Package config loads the engine's tunable thresholds from a YAML
// file, falling back to spec-exact defaults for any field the file
// omits.
package config

import (
	"fmt"
	"os"

	"github.com/banfr/geofr/internal/engine"
	"gopkg.in/yaml.v3"
)

// Config is the full set of operator-tunable knobs.
type Config struct {
	Thresholds engine.Thresholds
	CacheSize  int
}

// C is the active configuration, read by package geofr's Position and
// PositionCached; Load replaces it.
var C = Default()

// Default returns the built-in configuration: spec.md's exact
// thresholds and engine.DefaultCacheSize.
func Default() Config {
	return Config{Thresholds: engine.DefaultThresholds(), CacheSize: engine.DefaultCacheSize}
}

// thresholdsFile mirrors engine.Thresholds with pointer fields so Load
// can tell "omitted" apart from "explicitly zero".
type thresholdsFile struct {
	PostalFallbackWindow *int `yaml:"postal_fallback_window"`

	CommuneNarrowWindow    *int     `yaml:"commune_narrow_window"`
	CommuneNarrowThreshold *float64 `yaml:"commune_narrow_threshold"`
	CommuneWideThreshold   *float64 `yaml:"commune_wide_threshold"`

	CommuneFallbackWindow    *int     `yaml:"commune_fallback_window"`
	CommuneFallbackThreshold *float64 `yaml:"commune_fallback_threshold"`

	VoieNarrowWindow    *int     `yaml:"voie_narrow_window"`
	VoieNarrowThreshold *float64 `yaml:"voie_narrow_threshold"`
	VoieWideThreshold   *float64 `yaml:"voie_wide_threshold"`

	VoieFallbackWindow           *int     `yaml:"voie_fallback_window"`
	VoieFallbackCommuneThreshold *float64 `yaml:"voie_fallback_commune_threshold"`
}

type fileConfig struct {
	Thresholds thresholdsFile `yaml:"thresholds"`
	CacheSize  *int           `yaml:"cache_size"`
}

// Load reads path, merges it over Default(), and installs the result
// as C. A missing or empty file field keeps its default value.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg := Default()
	applyOverrides(&cfg, fc)
	C = cfg
	return nil
}

func applyOverrides(cfg *Config, fc fileConfig) {
	t := &cfg.Thresholds
	setInt(&t.PostalFallbackWindow, fc.Thresholds.PostalFallbackWindow)
	setInt(&t.CommuneNarrowWindow, fc.Thresholds.CommuneNarrowWindow)
	setFloat(&t.CommuneNarrowThreshold, fc.Thresholds.CommuneNarrowThreshold)
	setFloat(&t.CommuneWideThreshold, fc.Thresholds.CommuneWideThreshold)
	setInt(&t.CommuneFallbackWindow, fc.Thresholds.CommuneFallbackWindow)
	setFloat(&t.CommuneFallbackThreshold, fc.Thresholds.CommuneFallbackThreshold)
	setInt(&t.VoieNarrowWindow, fc.Thresholds.VoieNarrowWindow)
	setFloat(&t.VoieNarrowThreshold, fc.Thresholds.VoieNarrowThreshold)
	setFloat(&t.VoieWideThreshold, fc.Thresholds.VoieWideThreshold)
	setInt(&t.VoieFallbackWindow, fc.Thresholds.VoieFallbackWindow)
	setFloat(&t.VoieFallbackCommuneThreshold, fc.Thresholds.VoieFallbackCommuneThreshold)
	setInt(&cfg.CacheSize, fc.CacheSize)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
