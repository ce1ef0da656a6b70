package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// decompressBAN gunzips every *.csv.gz under rawDir in place,
// producing the ban_*.csv files the indexing pipeline reads.
func decompressBAN(rawDir string, logger *zap.Logger) error {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return fmt.Errorf("read raw directory %s: %w", rawDir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv.gz") {
			continue
		}
		src := filepath.Join(rawDir, e.Name())
		dest := strings.TrimSuffix(src, ".gz")
		if err := decompressOne(src, dest); err != nil {
			return fmt.Errorf("decompress %s: %w", src, err)
		}
		logger.Info("decompressed file", zap.String("file", e.Name()))
	}
	return nil
}

func decompressOne(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	gr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer gr.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, gr)
	return err
}
