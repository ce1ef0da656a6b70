package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const banURLTemplate = "https://adresse.data.gouv.fr/data/ban/export-api-gestion/latest/ban/ban-%s.csv.gz"

// departments is the full list of BAN export codes: the 96 metropolitan
// departments (with Corsica split into 2A/2B) plus the six overseas
// codes 971 to 976.
var departments = []string{
	"01", "02", "03", "04", "05", "06", "07", "08", "09", "10",
	"11", "12", "13", "14", "15", "16", "17", "18", "19",
	"21", "22", "23", "24", "25", "26", "27", "28", "29", "2A", "2B",
	"30", "31", "32", "33", "34", "35", "36", "37", "38", "39",
	"40", "41", "42", "43", "44", "45", "46", "47", "48", "49",
	"50", "51", "52", "53", "54", "55", "56", "57", "58", "59",
	"60", "61", "62", "63", "64", "65", "66", "67", "68", "69",
	"70", "71", "72", "73", "74", "75", "76", "77", "78", "79",
	"80", "81", "82", "83", "84", "85", "86", "87", "88", "89",
	"90", "91", "92", "93", "94", "95",
	"971", "972", "973", "974", "975", "976",
}

// downloadBAN fetches every department's compressed BAN export into
// rawDir. It is deliberately minimal: no resumable transfer, no retry,
// no checksum comparison against the server's published content file —
// an operator re-runs the verb on failure.
func downloadBAN(rawDir string, logger *zap.Logger) error {
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return fmt.Errorf("create raw directory: %w", err)
	}
	client := &http.Client{}
	for _, dept := range departments {
		url := fmt.Sprintf(banURLTemplate, dept)
		dest := filepath.Join(rawDir, fmt.Sprintf("ban_%s.csv.gz", dept))
		if err := fetchFile(client, url, dest); err != nil {
			return fmt.Errorf("download department %s: %w", dept, err)
		}
		logger.Info("downloaded department", zap.String("department", dept))
	}
	return nil
}

func fetchFile(client *http.Client, url, dest string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, resp.Body)
	return err
}
