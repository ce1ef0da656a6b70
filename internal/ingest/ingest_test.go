package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banfr/geofr/internal/coord"
	"github.com/banfr/geofr/internal/dbformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csvLine(numero, repetition, voie, codePostal, commune, insee, complementaire, lon, lat string) string {
	fields := make([]string, fieldCount)
	fields[colNumero] = numero
	fields[colRepetition] = repetition
	fields[colNomVoie] = voie
	fields[colCodePostal] = codePostal
	fields[colNomCommune] = commune
	fields[colCodeInsee] = insee
	fields[colNomComplementaire] = complementaire
	fields[colLongitude] = lon
	fields[colLatitude] = lat
	return strings.Join(fields, ";")
}

func writeDeptFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "header_ignored\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexBuildsExpectedHierarchy(t *testing.T) {
	rawDir := t.TempDir()
	dbDir := t.TempDir()

	writeDeptFile(t, rawDir, "ban_91.csv", []string{
		csvLine("12", "", "Boulevard des Marechaux", "91120", "Palaiseau", "91477", "", "2.21", "48.0"),
		csvLine("14", "", "Boulevard des Marechaux", "91120", "Palaiseau", "91477", "", "2.2101", "48.0001"),
		csvLine("3", "", "Rue de Paris", "91120", "Palaiseau", "91477", "", "2.22", "48.01"),
	})

	stats, err := Index(rawDir, dbDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DepartmentsProcessed)
	assert.Equal(t, 3, stats.RowsAccepted)

	deptTbl, err := dbformat.OpenDepartement(filepath.Join(dbDir, "departement.dat"))
	require.NoError(t, err)
	defer deptTbl.Close()
	require.Equal(t, 1, deptTbl.Len())
	assert.Equal(t, "91", deptTbl.At(0).Code)

	postalTbl, err := dbformat.OpenPostal(filepath.Join(dbDir, "postal.dat"))
	require.NoError(t, err)
	defer postalTbl.Close()
	require.Equal(t, 1, postalTbl.Len())
	assert.Equal(t, int32(91120), postalTbl.At(0).Code)

	communeTbl, err := dbformat.OpenCommune(filepath.Join(dbDir, "commune.dat"))
	require.NoError(t, err)
	defer communeTbl.Close()
	require.Equal(t, 1, communeTbl.Len())
	assert.Equal(t, "PALAISEAU", communeTbl.At(0).Normalise)
	assert.Equal(t, "91477", communeTbl.At(0).CodeInsee)

	voieTbl, err := dbformat.OpenVoie(filepath.Join(dbDir, "voie.dat"))
	require.NoError(t, err)
	defer voieTbl.Close()
	require.Equal(t, 2, voieTbl.Len())
	// voies sorted by normalise: BOULEVARDMARECHAUX < RUEPARIS
	assert.Equal(t, "BOULEVARDMARECHAUX", voieTbl.At(0).Normalise)
	assert.Equal(t, int32(2), voieTbl.At(0).End-voieTbl.At(0).Start)

	locTbl, err := dbformat.OpenLocalisation(filepath.Join(dbDir, "localisation.dat"))
	require.NoError(t, err)
	defer locTbl.Close()
	require.Equal(t, 3, locTbl.Len())
	assert.Equal(t, int16(12), locTbl.At(0).Numero)
	assert.Equal(t, int16(14), locTbl.At(1).Numero)

	idxTbl, err := dbformat.OpenIndex(filepath.Join(dbDir, "commune_index.dat"))
	require.NoError(t, err)
	defer idxTbl.Close()
	require.Equal(t, 1, idxTbl.Len())
	assert.Equal(t, dbformat.IndexEntry(0), idxTbl.At(0))
}

func TestIndexRejectsMalformedRows(t *testing.T) {
	rawDir := t.TempDir()
	dbDir := t.TempDir()

	longVoie := strings.Repeat("RUEDELONGUEINDICATIONDADRESSEQUIDEPASSELESQUARANTESEPTOCTETS", 1)
	writeDeptFile(t, rawDir, "ban_91.csv", []string{
		csvLine("12", "", "Rue de Paris", "91120", "Palaiseau", "91477", "", "2.21", "48.0"),
		csvLine("abc", "", "Rue de Paris", "91120", "Palaiseau", "91477", "", "2.21", "48.0"),
		csvLine("1", "", longVoie, "91120", "Palaiseau", "91477", "", "2.21", "48.0"),
		"too;few;fields",
	})

	stats, err := Index(rawDir, dbDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RowsAccepted)
	assert.True(t, stats.RowsRejected["parse_int"] >= 1)
	assert.True(t, stats.RowsRejected["voie_too_long"] >= 1)
	assert.True(t, stats.RowsRejected["field_count"] >= 1)
}

func TestVoieCentroidIsIntegerMeanOfLocalisations(t *testing.T) {
	rawDir := t.TempDir()
	dbDir := t.TempDir()

	writeDeptFile(t, rawDir, "ban_91.csv", []string{
		csvLine("10", "", "Rue de Paris", "91120", "Palaiseau", "91477", "", "2.0", "48.0"),
		csvLine("20", "", "Rue de Paris", "91120", "Palaiseau", "91477", "", "2.0000002", "48.0"),
	})
	_, err := Index(rawDir, dbDir, nil)
	require.NoError(t, err)

	voieTbl, err := dbformat.OpenVoie(filepath.Join(dbDir, "voie.dat"))
	require.NoError(t, err)
	defer voieTbl.Close()

	lonA, lonB := coord.ToInt(2.0), coord.ToInt(2.0000002)
	want := (int64(lonA) + int64(lonB)) / 2
	assert.Equal(t, int32(want), voieTbl.At(0).Lon)
}
