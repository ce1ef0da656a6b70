package kdtree

import (
	"github.com/banfr/geofr/internal/coord"
	"github.com/banfr/geofr/internal/dbformat"
	"github.com/banfr/geofr/internal/geo"
)

// Result is the outcome of a nearest-neighbor search: the matched
// node's id, its localisation ref_id, and the great-circle distance (in
// degrees) from the query point.
type Result struct {
	NodeID   int32
	RefID    int32
	Distance float64
}

// Nearest performs the branch-and-bound nearest-neighbor search
// described in spec §4.7 over tbl, starting from the root (node 0).
// ok is false only when tbl is empty.
func Nearest(tbl *dbformat.Table[dbformat.KDNode], query [2]float64) (Result, bool) {
	if tbl.Len() == 0 {
		return Result{}, false
	}
	st := &state{tbl: tbl, query: query, bestNode: -1}
	st.visit(0)
	return Result{NodeID: st.bestNode, RefID: st.bestRefID, Distance: st.bestDist}, true
}

type state struct {
	tbl      *dbformat.Table[dbformat.KDNode]
	query    [2]float64
	bestNode int32
	bestRefID int32
	bestDist float64
}

func (s *state) visit(nodeID int32) {
	if nodeID == -1 {
		return
	}
	node := s.tbl.At(int(nodeID))

	var queryCoord, nodeCoord float64
	if node.Dimension == 0 {
		queryCoord, nodeCoord = s.query[0], coord.ToDegrees(node.Lon)
	} else {
		queryCoord, nodeCoord = s.query[1], coord.ToDegrees(node.Lat)
	}

	nearChild, farChild := node.Right, node.Left
	if queryCoord < nodeCoord {
		nearChild, farChild = node.Left, node.Right
	}

	s.visit(nearChild)

	point := [2]float64{coord.ToDegrees(node.Lon), coord.ToDegrees(node.Lat)}
	d := geo.Spherical(s.query, point)
	if s.bestNode == -1 || d < s.bestDist {
		s.bestNode, s.bestRefID, s.bestDist = nodeID, node.RefID, d
	}

	if farChild != -1 {
		farNode := s.tbl.At(int(farChild))
		lowerBound := regionLowerBound(s.query, farNode)
		if lowerBound <= s.bestDist {
			s.visit(farChild)
		}
	}
}

// regionLowerBound is the minimum possible great-circle distance from
// query to any point inside node's subtree region: the distance to the
// query clamped into the region's bounding box.
func regionLowerBound(query [2]float64, node dbformat.KDNode) float64 {
	lon := clamp(query[0], coord.ToDegrees(node.LimitLeft), coord.ToDegrees(node.LimitRight))
	lat := clamp(query[1], coord.ToDegrees(node.LimitBottom), coord.ToDegrees(node.LimitTop))
	return geo.Spherical(query, [2]float64{lon, lat})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
