package engine

import (
	"context"

	"github.com/banfr/geofr/internal/normalize"
	"github.com/banfr/geofr/internal/similarity"
)

// Position resolves a postal code, a free-form commune name, and a
// free-form street address into the best-matching point in the
// database, per spec.md §4.6. Every argument is optional: pass nil for
// codePostal and "" for commune/adresse when not supplied. Position
// never fails; an unresolvable query returns quality 6. ctx is accepted
// for API consistency with the rest of the module and is never
// inspected for cancellation, since every step below is an in-memory
// lookup against already-mapped tables.
func (db *Database) Position(ctx context.Context, codePostal *int, commune, adresse string) Result {
	return db.position(codePostal, commune, adresse, DefaultThresholds())
}

// PositionWithThresholds is Position with caller-supplied tuning, used
// by internal/config to apply operator overrides.
func (db *Database) PositionWithThresholds(ctx context.Context, codePostal *int, commune, adresse string, th Thresholds) Result {
	return db.position(codePostal, commune, adresse, th)
}

func (db *Database) position(codePostal *int, commune, adresse string, th Thresholds) Result {
	communeNormalise := normalize.UniformCommune(commune)
	hasCommune := communeNormalise != ""
	communeProfile := similarity.New(communeNormalise)

	mined, minedOK := normalize.Mine(adresse)
	hasVoieQuery := minedOK && mined.Voie != ""

	postalID, havePostal := db.resolvePostal(codePostal, th)
	communeID, haveCommuneID := db.resolveCommune(postalID, havePostal, communeNormalise, hasCommune, communeProfile, th)
	voieID, haveVoieID := db.resolveVoie(communeID, haveCommuneID, havePostal, mined, hasVoieQuery, communeNormalise, codePostal, th)

	var locID int32
	haveLocID := false
	if haveVoieID && mined.HasNumero {
		v := db.voie.At(int(voieID))
		n := int(v.End - v.Start)
		target := int32(mined.Numero)
		pos, found := lowerBoundRange(n, func(i int) int {
			return compareInt32(int32(db.localisation.At(int(v.Start)+i).Numero), target)
		})
		if found {
			locID, haveLocID = v.Start+int32(pos), true
		}
	}

	switch {
	case haveLocID:
		return db.assembleResult(levelLocalisation, locID, QualityLocalisation)
	case haveVoieID:
		quality := QualityVoie
		if mined.HasNumero {
			quality = QualityVoieNumero
		}
		return db.assembleResult(levelVoie, voieID, quality)
	case haveCommuneID:
		return db.assembleResult(levelCommune, communeID, QualityCommune)
	case havePostal:
		return db.assembleResult(levelPostal, postalID, QualityPostal)
	default:
		return noMatch()
	}
}

func (db *Database) resolvePostal(codePostal *int, th Thresholds) (int32, bool) {
	if codePostal == nil {
		return 0, false
	}
	target := int32(*codePostal)
	pos, row, found := lowerBoundIndex(db.postalIndex, func(r int) int {
		return compareInt32(db.postal.At(r).Code, target)
	})
	if found {
		return int32(row), true
	}
	best, bestDiff, ok := -1, int32(0), false
	consider := func(p int) {
		if p < 0 || p >= db.postalIndex.Len() {
			return
		}
		row := int(db.postalIndex.At(p))
		diff := db.postal.At(row).Code - target
		if diff < 0 {
			diff = -diff
		}
		if !ok || diff < bestDiff {
			best, bestDiff, ok = row, diff, true
		}
	}
	consider(pos - 1)
	consider(pos)
	if ok && bestDiff <= int32(th.PostalFallbackWindow) {
		return int32(best), true
	}
	return 0, false
}

func (db *Database) resolveCommune(postalID int32, havePostal bool, communeNormalise string, hasCommune bool, profile similarity.Profile, th Thresholds) (int32, bool) {
	if !hasCommune {
		return 0, false
	}
	normaliseAt := func(i int) string { return db.commune.At(i).Normalise }

	if havePostal {
		p := db.postal.At(int(postalID))
		n := int(p.End - p.Start)
		pos, found := lowerBoundRange(n, func(i int) int {
			return compareString(db.commune.At(int(p.Start)+i).Normalise, communeNormalise)
		})
		if found {
			return p.Start + int32(pos), true
		}
		abs := int(p.Start) + pos
		nStart := max(int(p.Start), abs-th.CommuneNarrowWindow)
		nEnd := min(int(p.End), abs+th.CommuneNarrowWindow)
		if idx, ok := heuristicSearch(profile, nStart, nEnd, normaliseAt, th.CommuneNarrowThreshold); ok {
			return int32(idx), true
		}
		if idx, ok := heuristicSearch(profile, int(p.Start), int(p.End), normaliseAt, th.CommuneWideThreshold); ok {
			return int32(idx), true
		}
	}

	pos, row, found := lowerBoundIndex(db.communeIndex, func(r int) int {
		return compareString(db.commune.At(r).Normalise, communeNormalise)
	})
	if found {
		return int32(row), true
	}
	nStart := max(0, pos-th.CommuneFallbackWindow)
	nEnd := min(db.communeIndex.Len(), pos+th.CommuneFallbackWindow)
	indexNormaliseAt := func(i int) string { return db.commune.At(int(db.communeIndex.At(i))).Normalise }
	if idx, ok := heuristicSearch(profile, nStart, nEnd, indexNormaliseAt, th.CommuneFallbackThreshold); ok {
		return int32(db.communeIndex.At(idx)), true
	}
	return 0, false
}

func (db *Database) resolveVoie(communeID int32, haveCommuneID, havePostal bool, mined normalize.Mined, hasVoieQuery bool, communeNormalise string, codePostal *int, th Thresholds) (int32, bool) {
	if !hasVoieQuery {
		return 0, false
	}
	voieProfile := similarity.New(mined.Voie)
	normaliseAt := func(i int) string { return db.voie.At(i).Normalise }

	if haveCommuneID {
		c := db.commune.At(int(communeID))
		n := int(c.End - c.Start)
		pos, found := lowerBoundRange(n, func(i int) int {
			return compareString(db.voie.At(int(c.Start)+i).Normalise, mined.Voie)
		})
		if found {
			return c.Start + int32(pos), true
		}
		abs := int(c.Start) + pos
		var nStart, nEnd int
		if mined.HasVoieType {
			nStart, nEnd = prefixWindow(int(c.Start), int(c.End), abs, mined.VoieType, normaliseAt)
		}
		if !mined.HasVoieType || nEnd-nStart <= 1 {
			nStart = max(int(c.Start), abs-th.VoieNarrowWindow)
			nEnd = min(int(c.End), abs+th.VoieNarrowWindow)
		}
		if idx, ok := heuristicSearch(voieProfile, nStart, nEnd, normaliseAt, th.VoieNarrowThreshold); ok {
			return int32(idx), true
		}
		if idx, ok := heuristicSearch(voieProfile, int(c.Start), int(c.End), normaliseAt, th.VoieWideThreshold); ok {
			return int32(idx), true
		}
	}

	pos, row, found := lowerBoundIndex(db.voieIndex, func(r int) int {
		return compareString(db.voie.At(r).Normalise, mined.Voie)
	})
	exactOnly := !havePostal && !haveCommuneID

	var candidates []int
	switch {
	case found && exactOnly:
		return int32(row), true
	case found:
		l, r := pos, pos
		for r < db.voieIndex.Len() && db.voie.At(int(db.voieIndex.At(r))).Normalise == mined.Voie {
			r++
		}
		candidates = indexRange(l, r)
	case !exactOnly:
		nStart := max(0, pos-th.VoieFallbackWindow)
		nEnd := min(db.voieIndex.Len(), pos+th.VoieFallbackWindow)
		candidates = indexRange(nStart, nEnd)
	default:
		return 0, false
	}
	return db.pickVoieCandidate(candidates, communeNormalise, codePostal, th)
}

func indexRange(a, b int) []int {
	out := make([]int, 0, b-a)
	for i := a; i < b; i++ {
		out = append(out, i)
	}
	return out
}

// pickVoieCandidate resolves the global voie_index fallback's remaining
// ambiguity: among candidates (positions into db.voieIndex), prefer the
// one whose parent commune best matches the query commune text; if none
// clear the threshold, fall back to the first whose postal code shares
// the query's thousands digit.
func (db *Database) pickVoieCandidate(candidates []int, communeNormalise string, codePostal *int, th Thresholds) (int32, bool) {
	communeProfile := similarity.New(communeNormalise)
	best, bestScore := -1, -1.0
	for _, pos := range candidates {
		row := int(db.voieIndex.At(pos))
		c := db.commune.At(int(db.voie.At(row).RefID))
		score := communeProfile.Score(c.Normalise)
		if score > bestScore {
			best, bestScore = row, score
		}
	}
	if best != -1 && bestScore >= th.VoieFallbackCommuneThreshold {
		return int32(best), true
	}
	if codePostal != nil {
		wantThousands := int32(*codePostal) / 1000
		for _, pos := range candidates {
			row := int(db.voieIndex.At(pos))
			c := db.commune.At(int(db.voie.At(row).RefID))
			p := db.postal.At(int(c.RefID))
			if p.Code/1000 == wantThousands {
				return int32(row), true
			}
		}
	}
	return 0, false
}
