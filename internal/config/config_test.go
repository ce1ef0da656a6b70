package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesOverridesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geofr.yaml")
	yaml := "thresholds:\n  commune_narrow_threshold: 0.8\ncache_size: 100\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	require.NoError(t, Load(path))
	assert.Equal(t, 0.8, C.Thresholds.CommuneNarrowThreshold)
	assert.Equal(t, 100, C.CacheSize)
	// untouched fields keep their spec default
	assert.Equal(t, Default().Thresholds.VoieNarrowThreshold, C.Thresholds.VoieNarrowThreshold)
	assert.Equal(t, Default().Thresholds.PostalFallbackWindow, C.Thresholds.PostalFallbackWindow)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
