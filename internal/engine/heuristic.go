package engine

import (
	"strings"

	"github.com/banfr/geofr/internal/similarity"
)

// heuristicSearch scans candidates in [start, end), scoring each
// against profile, and accepts the best-scoring candidate if its score
// clears threshold. Ties break to the lowest index (the first max seen,
// since later equal scores never replace it). Short-circuits on a
// perfect match, per spec.md §4.6.1.
func heuristicSearch(profile similarity.Profile, start, end int, normaliseAt func(i int) string, threshold float64) (int, bool) {
	best, bestScore := -1, -1.0
	for i := start; i < end; i++ {
		score := profile.Score(normaliseAt(i))
		if score > bestScore {
			best, bestScore = i, score
			if score == 1.0 {
				break
			}
		}
	}
	if best == -1 || bestScore < threshold {
		return -1, false
	}
	return best, true
}

// prefixWindow finds the maximal contiguous run of indices within
// [start, end) whose normaliseAt value starts with prefix, anchored
// around the binary-search insertion point lo (checking lo itself, then
// its immediate predecessor, since an insertion point conventionally
// sits between the two nearest candidates).
func prefixWindow(start, end, lo int, prefix string, normaliseAt func(i int) string) (int, int) {
	hasPrefix := func(i int) bool {
		return i >= start && i < end && strings.HasPrefix(normaliseAt(i), prefix)
	}
	l, r := lo, lo
	switch {
	case hasPrefix(lo):
		r = lo + 1
	case hasPrefix(lo - 1):
		l, r = lo-1, lo
	default:
		return lo, lo
	}
	for hasPrefix(l - 1) {
		l--
	}
	for hasPrefix(r) {
		r++
	}
	return l, r
}
