package engine

import "github.com/banfr/geofr/internal/dbformat"

// lowerBoundRange performs a classic binary search for the lower bound
// of target within the n physically-sorted rows starting at the
// caller-supplied offset: cmp(i) must return <0, 0, or >0 comparing the
// i-th row (0-based within the range) to target. It returns the
// position of the first row not less than target, and whether that row
// is an exact match. Used whenever a content table's own row order
// within a parent's [start, end) range already satisfies the column
// being searched, per spec.md §4.8's "sorted" mode.
func lowerBoundRange(n int, cmp func(i int) int) (pos int, found bool) {
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(mid) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < n && cmp(lo) == 0
}

// lowerBoundIndex binary searches a sort-index table whose entries are
// row indices into some content table, ordered by the column cmp
// compares. cmp(row) compares the content row referenced by a given
// index entry to target. It returns the position within the index
// table, the content row at min(pos, len-1) (spec.md §4.8's clamped
// fallback candidate), and whether pos is an exact match.
func lowerBoundIndex(idx *dbformat.Table[dbformat.IndexEntry], cmp func(row int) int) (pos int, row int, found bool) {
	n := idx.Len()
	if n == 0 {
		return 0, 0, false
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if cmp(int(idx.At(mid))) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	clamped := lo
	if clamped >= n {
		clamped = n - 1
	}
	row = int(idx.At(clamped))
	found = lo < n && cmp(int(idx.At(lo))) == 0
	return lo, row, found
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
