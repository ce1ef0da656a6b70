package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banfr/geofr/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csvLine builds one BAN-format row; column indices mirror
// internal/ingest's unexported layout (numero=5, repetition=6,
// nom_voie=7, code_postal=8, nom_commune=9, code_insee=10,
// nom_afnor/complementaire=11, longitude=14, latitude=15).
func csvLine(numero, voie, codePostal, commune, insee, lon, lat string) string {
	const fieldCount = 19
	fields := make([]string, fieldCount)
	fields[5] = numero
	fields[7] = voie
	fields[8] = codePostal
	fields[9] = commune
	fields[10] = insee
	fields[14] = lon
	fields[15] = lat
	return strings.Join(fields, ";")
}

func buildTestDatabase(t *testing.T) *Database {
	t.Helper()
	rawDir := t.TempDir()
	dbDir := t.TempDir()

	lines := []string{
		csvLine("10", "Rue de Paris", "91120", "Palaiseau", "91477", "2.20", "48.00"),
		csvLine("12", "Rue de Paris", "91120", "Palaiseau", "91477", "2.21", "48.00"),
		csvLine("14", "Rue de Paris", "91120", "Palaiseau", "91477", "2.22", "48.00"),
		csvLine("5", "Boulevard des Marechaux", "91120", "Palaiseau", "91477", "2.25", "48.05"),
	}
	content := "header_ignored\n" + strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "ban_91.csv"), []byte(content), 0o644))

	_, err := ingest.Index(rawDir, dbDir, nil)
	require.NoError(t, err)
	require.NoError(t, ingest.BuildKDTree(dbDir))

	db, err := Open(dbDir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func intp(v int) *int { return &v }

func TestPositionExactMatchResolvesLocalisation(t *testing.T) {
	db := buildTestDatabase(t)
	r := db.Position(context.Background(), intp(91120), "Palaiseau", "12 Rue de Paris")
	require.Equal(t, QualityLocalisation, r.Quality)
	require.NotNil(t, r.Localisation)
	assert.Equal(t, int16(12), r.Localisation.Numero)
	require.NotNil(t, r.Voie)
	assert.Equal(t, "RUE DE PARIS", r.Voie.Nom)
	require.NotNil(t, r.Commune)
	assert.Equal(t, "91477", r.Commune.CodeInsee)
	require.NotNil(t, r.Longitude)
}

func TestPositionVoieWithoutNumeroResolvesQuality3(t *testing.T) {
	db := buildTestDatabase(t)
	r := db.Position(context.Background(), intp(91120), "Palaiseau", "Rue de Paris")
	require.Equal(t, QualityVoie, r.Quality)
	assert.Nil(t, r.Localisation)
	require.NotNil(t, r.Voie)
	assert.Equal(t, "RUE DE PARIS", r.Voie.Nom)
}

func TestPositionUnknownNumeroResolvesQuality2(t *testing.T) {
	db := buildTestDatabase(t)
	r := db.Position(context.Background(), intp(91120), "Palaiseau", "999 Rue de Paris")
	require.Equal(t, QualityVoieNumero, r.Quality)
	assert.Nil(t, r.Localisation)
	require.NotNil(t, r.Voie)
}

func TestPositionToleratesCommuneTypoViaFallback(t *testing.T) {
	db := buildTestDatabase(t)
	r := db.Position(context.Background(), intp(91120), "Palaisau", "12 Rue de Paris")
	require.Equal(t, QualityLocalisation, r.Quality)
	require.NotNil(t, r.Commune)
	assert.Equal(t, "PALAISEAU", r.Commune.Nom)
}

func TestPositionUnresolvableReturnsQuality6(t *testing.T) {
	db := buildTestDatabase(t)
	r := db.Position(context.Background(), intp(99999), "Nonexistent City", "1 Rue Inconnue")
	assert.Equal(t, QualityNone, r.Quality)
	assert.Nil(t, r.Departement)
	assert.Nil(t, r.Longitude)
}

func TestReverseFindsNearestLocalisation(t *testing.T) {
	db := buildTestDatabase(t)
	r := db.Reverse(context.Background(), 2.2101, 48.0001)
	require.Equal(t, QualityLocalisation, r.Quality)
	require.NotNil(t, r.Localisation)
	assert.Equal(t, int16(12), r.Localisation.Numero)
}

func TestPositionCachedReturnsSameResultAsPosition(t *testing.T) {
	db := buildTestDatabase(t)
	ctx := context.Background()
	want := db.Position(ctx, intp(91120), "Palaiseau", "12 Rue de Paris")
	got := db.PositionCached(ctx, intp(91120), "Palaiseau", "12 Rue de Paris")
	assert.Equal(t, want, got)
	// second call exercises the cache hit path
	got2 := db.PositionCached(ctx, intp(91120), "Palaiseau", "12 Rue de Paris")
	assert.Equal(t, want, got2)
}
