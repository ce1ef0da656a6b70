package kdtree

import (
	"math/rand"
	"path/filepath"
	"sort"
	"testing"

	"github.com/banfr/geofr/internal/coord"
	"github.com/banfr/geofr/internal/dbformat"
	"github.com/banfr/geofr/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var franceBounds = Bounds{
	LimitLeft:   coord.ToInt(-62),
	LimitRight:  coord.ToInt(55),
	LimitBottom: coord.ToInt(-22),
	LimitTop:    coord.ToInt(52),
}

func buildTestTree(t *testing.T, points []Point) *dbformat.Table[dbformat.KDNode] {
	t.Helper()
	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lon < sorted[j].Lon })

	b := NewBuilder()
	for _, i := range PreOrder(len(sorted)) {
		b.Insert(sorted[i], franceBounds)
	}

	w := dbformat.NewKDTreeWriter()
	for _, n := range b.Nodes() {
		w.Append(n)
	}
	path := filepath.Join(t.TempDir(), "kdtree.dat")
	require.NoError(t, w.WriteFile(path))
	tbl, err := dbformat.OpenKDTree(path)
	require.NoError(t, err)
	t.Cleanup(func() { tbl.Close() })
	return tbl
}

func randomFrancePoints(n int, seed int64) []Point {
	r := rand.New(rand.NewSource(seed))
	pts := make([]Point, n)
	for i := range pts {
		lon := -62 + r.Float64()*(55-(-62))
		lat := -22 + r.Float64()*(52-(-22))
		pts[i] = Point{Lon: coord.ToInt(lon), Lat: coord.ToInt(lat), RefID: int32(i)}
	}
	return pts
}

func bruteForceNearest(points []Point, query [2]float64) Point {
	best := points[0]
	bestDist := geo.Spherical(query, [2]float64{coord.ToDegrees(best.Lon), coord.ToDegrees(best.Lat)})
	for _, p := range points[1:] {
		d := geo.Spherical(query, [2]float64{coord.ToDegrees(p.Lon), coord.ToDegrees(p.Lat)})
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func TestNearestAgreesWithBruteForce(t *testing.T) {
	points := randomFrancePoints(300, 42)
	tbl := buildTestTree(t, points)

	queries := randomFrancePoints(1000, 7)
	for _, q := range queries {
		query := [2]float64{coord.ToDegrees(q.Lon), coord.ToDegrees(q.Lat)}
		got, ok := Nearest(tbl, query)
		require.True(t, ok)

		want := bruteForceNearest(points, query)
		wantDist := geo.Spherical(query, [2]float64{coord.ToDegrees(want.Lon), coord.ToDegrees(want.Lat)})

		assert.InDelta(t, wantDist, got.Distance, 1e-9)
	}
}

func TestKDTreeCoverageOneNodePerPoint(t *testing.T) {
	points := randomFrancePoints(50, 11)
	tbl := buildTestTree(t, points)
	assert.Equal(t, len(points), tbl.Len())

	seenRefIDs := make(map[int32]bool)
	for i := 0; i < tbl.Len(); i++ {
		n := tbl.At(i)
		seenRefIDs[n.RefID] = true
		p := points[n.RefID]
		assert.Equal(t, p.Lon, n.Lon)
		assert.Equal(t, p.Lat, n.Lat)
	}
	assert.Len(t, seenRefIDs, len(points))
}
