package ingest

import "sort"

type communeKey struct {
	normalise, nom, codeInsee string
}

type voieKey struct {
	normalise, nom string
}

type locTuple struct {
	numero     int
	repetition string
	lon, lat   int32
}

// accumulator holds every accepted row of a single department in
// memory, grouped by the (postal -> commune -> voie) hierarchy spec.md
// §4.4 describes, ready for ordered emission. One department's worth of
// accepted rows is bounded by its address count, never the whole
// country's.
type accumulator struct {
	byPostal map[int]map[communeKey]map[voieKey]map[locTuple]struct{}
}

func newAccumulator() *accumulator {
	return &accumulator{byPostal: make(map[int]map[communeKey]map[voieKey]map[locTuple]struct{})}
}

func (a *accumulator) add(r row) {
	ck := communeKey{r.communeNormalise, r.communeNom, r.codeInsee}
	vk := voieKey{r.voieNormalise, r.voieNom}
	lt := locTuple{r.numero, r.repetition, r.lon, r.lat}

	communes, ok := a.byPostal[r.codePostal]
	if !ok {
		communes = make(map[communeKey]map[voieKey]map[locTuple]struct{})
		a.byPostal[r.codePostal] = communes
	}
	voies, ok := communes[ck]
	if !ok {
		voies = make(map[voieKey]map[locTuple]struct{})
		communes[ck] = voies
	}
	locs, ok := voies[vk]
	if !ok {
		locs = make(map[locTuple]struct{})
		voies[vk] = locs
	}
	locs[lt] = struct{}{}
}

func sortedPostalCodes(m map[int]map[communeKey]map[voieKey]map[locTuple]struct{}) []int {
	codes := make([]int, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

func sortedCommuneKeys(m map[communeKey]map[voieKey]map[locTuple]struct{}) []communeKey {
	keys := make([]communeKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].normalise != keys[j].normalise {
			return keys[i].normalise < keys[j].normalise
		}
		if keys[i].nom != keys[j].nom {
			return keys[i].nom < keys[j].nom
		}
		return keys[i].codeInsee < keys[j].codeInsee
	})
	return keys
}

func sortedVoieKeys(m map[voieKey]map[locTuple]struct{}) []voieKey {
	keys := make([]voieKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].normalise != keys[j].normalise {
			return keys[i].normalise < keys[j].normalise
		}
		return keys[i].nom < keys[j].nom
	})
	return keys
}

func sortedLocTuples(m map[locTuple]struct{}) []locTuple {
	tuples := make([]locTuple, 0, len(m))
	for t := range m {
		tuples = append(tuples, t)
	}
	sort.Slice(tuples, func(i, j int) bool {
		a, b := tuples[i], tuples[j]
		if a.numero != b.numero {
			return a.numero < b.numero
		}
		if a.repetition != b.repetition {
			return a.repetition < b.repetition
		}
		if a.lon != b.lon {
			return a.lon < b.lon
		}
		return a.lat < b.lat
	})
	return tuples
}

// tupleMean computes the integer arithmetic mean of a column, truncating
// toward zero exactly as Python's int(numpy.mean(...)) does — which Go's
// native integer division already does for exact-rational means.
func tupleMean(values []int32) int32 {
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return int32(sum / int64(len(values)))
}
