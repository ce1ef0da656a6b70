package main

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDispatchUnknownCommandErrors(t *testing.T) {
	err := dispatch(context.Background(), "bogus", nil, zap.NewNop())
	assert.Error(t, err)
}

func TestDispatchIndexAndReverseRunOnEmptyDatabase(t *testing.T) {
	rawDir := t.TempDir()
	dbDir := t.TempDir()
	viperSetDefaults(rawDir, dbDir)

	err := dispatch(context.Background(), "index", nil, zap.NewNop())
	assert.NoError(t, err)

	err = dispatch(context.Background(), "reverse", nil, zap.NewNop())
	assert.NoError(t, err)
}

func viperSetDefaults(rawDir, dbDir string) {
	loadConfig()
	viper.Set("raw_dir", rawDir)
	viper.Set("database_dir", dbDir)
}
