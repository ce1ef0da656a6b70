package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/banfr/geofr/internal/dbformat"
	"github.com/banfr/geofr/internal/similarity"
	"go.uber.org/zap"
)

// Stats summarizes one indexing run, surfaced to the operator instead of
// silently discarding per-row rejection counts.
type Stats struct {
	DepartmentsProcessed int
	RowsAccepted         int
	RowsRejected         map[string]int
}

// departmentCode derives a department's code from its raw CSV filename,
// the last "_"-separated, extension-stripped component — matching the
// original pipeline's file-naming convention (e.g. "ban_91.csv" -> "91").
func departmentCode(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")
	return parts[len(parts)-1]
}

func discoverDepartmentFiles(rawDir string) ([]string, error) {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return nil, fmt.Errorf("read raw directory %s: %w", rawDir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(rawDir, e.Name()))
	}
	sort.Slice(files, func(i, j int) bool {
		return departmentCode(files[i]) < departmentCode(files[j])
	})
	return files, nil
}

// Index runs the full indexing pipeline: parse every department CSV
// under rawDir, aggregate, and write the five content tables plus the
// three sort-index tables into databaseDir.
func Index(rawDir, databaseDir string, logger *zap.Logger) (Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := discoverDepartmentFiles(rawDir)
	if err != nil {
		return Stats{}, err
	}
	if err := os.MkdirAll(databaseDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create database directory: %w", err)
	}

	t := newTables()
	stats := Stats{RowsRejected: make(map[string]int)}

	for _, path := range files {
		code := departmentCode(path)
		acc, accepted, rejected, err := parseDepartmentFile(path)
		if err != nil {
			return stats, fmt.Errorf("department %s: %w", code, err)
		}
		emitDepartment(code, acc, t)

		stats.DepartmentsProcessed++
		stats.RowsAccepted += accepted
		for reason, n := range rejected {
			stats.RowsRejected[reason] += n
		}
		logger.Info("indexed department",
			zap.String("code", code), zap.Int("accepted", accepted), zap.Int("rejected", sumCounts(rejected)))

		reportNearDuplicateCommunes(logger, code, acc)
	}

	if err := writeContentTables(databaseDir, t); err != nil {
		return stats, err
	}
	if err := writeIndexTables(databaseDir, t); err != nil {
		return stats, err
	}

	logger.Info("indexing complete",
		zap.Int("departments", stats.DepartmentsProcessed),
		zap.Int("accepted", stats.RowsAccepted),
		zap.Int("rejected", sumCounts(stats.RowsRejected)))
	return stats, nil
}

func sumCounts(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func parseDepartmentFile(path string) (*accumulator, int, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	acc := newAccumulator()
	accepted := 0
	rejected := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue // header line
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		r, reason, ok := parseRow(fields)
		if !ok {
			rejected[string(reason)]++
			continue
		}
		acc.add(r)
		accepted++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return acc, accepted, rejected, nil
}

// reportNearDuplicateCommunes flags sibling communes in this department
// whose normalized names are suspiciously close under edit distance but
// imperfect under the Jaccard scorer — likely BAN data-entry duplicates,
// never a signal the query engine itself consults.
func reportNearDuplicateCommunes(logger *zap.Logger, deptCode string, acc *accumulator) {
	var names []string
	seen := make(map[string]bool)
	for _, communes := range acc.byPostal {
		for ck := range communes {
			if !seen[ck.normalise] {
				seen[ck.normalise] = true
				names = append(names, ck.normalise)
			}
		}
	}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			d := similarity.Diagnose(names[i], names[j])
			if d.NearDuplicate {
				logger.Warn("possible duplicate commune names",
					zap.String("departement", deptCode),
					zap.String("a", names[i]), zap.String("b", names[j]),
					zap.Int("levenshtein", d.Levenshtein))
			}
		}
	}
}

func writeContentTables(dir string, t *tables) error {
	writes := []struct {
		name string
		fn   func() error
	}{
		{"departement.dat", func() error { return t.departement.WriteFile(filepath.Join(dir, "departement.dat")) }},
		{"postal.dat", func() error { return t.postal.WriteFile(filepath.Join(dir, "postal.dat")) }},
		{"commune.dat", func() error { return t.commune.WriteFile(filepath.Join(dir, "commune.dat")) }},
		{"voie.dat", func() error { return t.voie.WriteFile(filepath.Join(dir, "voie.dat")) }},
		{"localisation.dat", func() error { return t.localisation.WriteFile(filepath.Join(dir, "localisation.dat")) }},
	}
	for _, w := range writes {
		if err := w.fn(); err != nil {
			return fmt.Errorf("write %s: %w", w.name, err)
		}
	}
	return nil
}

func writeIndexTables(dir string, t *tables) error {
	postalIdx := sortIndex(t.postal.Len(), func(i, j int) bool {
		return t.postal.At(i).Code < t.postal.At(j).Code
	})
	communeIdx := sortIndex(t.commune.Len(), func(i, j int) bool {
		return t.commune.At(i).Normalise < t.commune.At(j).Normalise
	})
	voieIdx := sortIndex(t.voie.Len(), func(i, j int) bool {
		return t.voie.At(i).Normalise < t.voie.At(j).Normalise
	})

	if err := writeIndexFile(filepath.Join(dir, "postal_index.dat"), postalIdx); err != nil {
		return err
	}
	if err := writeIndexFile(filepath.Join(dir, "commune_index.dat"), communeIdx); err != nil {
		return err
	}
	if err := writeIndexFile(filepath.Join(dir, "voie_index.dat"), voieIdx); err != nil {
		return err
	}
	return nil
}

// sortIndex returns a stable, ascending permutation of [0, n) under
// less, tie-broken by original row order.
func sortIndex(n int, less func(i, j int) bool) []int32 {
	idx := make([]int32, n)
	for i := range idx {
		idx[i] = int32(i)
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(int(idx[i]), int(idx[j])) })
	return idx
}

func writeIndexFile(path string, idx []int32) error {
	w := dbformat.NewIndexWriter()
	for _, i := range idx {
		w.Append(dbformat.IndexEntry(i))
	}
	if err := w.WriteFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
