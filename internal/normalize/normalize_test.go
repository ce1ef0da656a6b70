package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformCommuneDiacritics(t *testing.T) {
	assert.Equal(t, "PALAISEAU", UniformCommune("Paláiseau"))
	assert.Equal(t, "SAINTETIENNE", UniformCommune("Saint-Étienne"))
}

func TestNormalizationIdempotence(t *testing.T) {
	inputs := []string{
		"12, Bd des Maréchaux", "Paláiseau", "Saint-Étienne (Loire)",
		"Rue du 8 Mai 1945 / Annexe", "", "   ",
	}
	for _, in := range inputs {
		once := UniformAdresse(in)
		twice := UniformAdresse(once)
		assert.Equal(t, once, twice, "not idempotent for %q", in)
	}
}

func TestMineAbbreviationExpansion(t *testing.T) {
	m, ok := Mine("12 Bd des Maréchaux")
	assert.True(t, ok)
	assert.True(t, m.HasNumero)
	assert.Equal(t, 12, m.Numero)
	assert.Equal(t, "BOULEVARDMARECHAUX", m.Voie)
	assert.Equal(t, "BOULEVARD", m.VoieType)
}

func TestMineNoNumero(t *testing.T) {
	m, ok := Mine("Boulevard des Maréchaux")
	assert.True(t, ok)
	assert.False(t, m.HasNumero)
	assert.Equal(t, "BOULEVARDMARECHAUX", m.Voie)
}

func TestMineEmpty(t *testing.T) {
	_, ok := Mine("   ")
	assert.False(t, ok)
}

func TestMineNumeroWithinToken(t *testing.T) {
	m, ok := Mine("12BIS Rue de Paris")
	assert.True(t, ok)
	assert.True(t, m.HasNumero)
	assert.Equal(t, 12, m.Numero)
	assert.Equal(t, "RUEPARIS", m.Voie)

	m, ok = Mine("14TER Avenue Foch")
	assert.True(t, ok)
	assert.True(t, m.HasNumero)
	assert.Equal(t, 14, m.Numero)
}

func TestNomKeepsSpacesAndHyphens(t *testing.T) {
	assert.Equal(t, "RUE DE LA PAIX", Nom("Rue de la Paix"))
	assert.Equal(t, "SAINT-ETIENNE", Nom("Saint-Étienne"))
}

func TestNomDropsParenthesizedAndSlash(t *testing.T) {
	assert.Equal(t, "RUE DE LA PAIX ", Nom("Rue de la Paix (ancien tracé)"))
	assert.Equal(t, "RUE DE LA PAIX ", Nom("Rue de la Paix / Annexe"))
}

func TestRemoveSeparatorsDropsParenthesized(t *testing.T) {
	assert.Equal(t, "RUEPAIX", UniformAdresse("Rue de la Paix (ancien tracé)"))
}

func TestRemoveSeparatorsTruncatesAtSlash(t *testing.T) {
	assert.Equal(t, "RUEPAIX", UniformAdresse("Rue de la Paix / Annexe"))
}
