// Command geofr drives the indexing pipeline and the query engine: it
// downloads and decompresses the upstream BAN export, builds the
// on-disk database, builds the reverse-geocoding k-d tree, and exposes
// one-off geocode/locate lookups against an already-built database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/banfr/geofr/internal/ingest"
	"go.uber.org/zap"
)

func main() {
	loadConfig()
	logger := initLogger()
	defer logger.Sync()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if err := dispatch(context.Background(), args[0], args[1:], logger); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: geofr {download|decompress|index|reverse|update|geocode|locate} [args...]")
}

func dispatch(ctx context.Context, cmd string, args []string, logger *zap.Logger) error {
	rawDir := viperString("raw_dir")
	dbDir := viperString("database_dir")

	switch cmd {
	case "download":
		return downloadBAN(rawDir, logger)
	case "decompress":
		return decompressBAN(rawDir, logger)
	case "index":
		return runIndex(rawDir, dbDir, logger)
	case "reverse":
		return runReverse(dbDir, logger)
	case "update":
		return runUpdate(rawDir, dbDir, logger)
	case "geocode":
		return runGeocode(ctx, dbDir, args)
	case "locate":
		return runLocate(ctx, dbDir, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runIndex(rawDir, dbDir string, logger *zap.Logger) error {
	stats, err := ingest.Index(rawDir, dbDir, logger)
	if err != nil {
		return err
	}
	logger.Info("index complete",
		zap.Int("departments", stats.DepartmentsProcessed), zap.Int("accepted", stats.RowsAccepted))
	return nil
}

func runReverse(dbDir string, logger *zap.Logger) error {
	if err := ingest.BuildKDTree(dbDir); err != nil {
		return err
	}
	logger.Info("kdtree built", zap.String("database_dir", dbDir))
	return nil
}

// runUpdate runs every build step in order, per spec.md §6, stopping at
// the first failure.
func runUpdate(rawDir, dbDir string, logger *zap.Logger) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"download", func() error { return downloadBAN(rawDir, logger) }},
		{"decompress", func() error { return decompressBAN(rawDir, logger) }},
		{"index", func() error { return runIndex(rawDir, dbDir, logger) }},
		{"reverse", func() error { return runReverse(dbDir, logger) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("update step %q: %w", s.name, err)
		}
	}
	return nil
}
