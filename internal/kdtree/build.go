package kdtree

import "github.com/banfr/geofr/internal/dbformat"

// Bounds is an axis-aligned region in fixed-point coordinates:
// [limitLeft, limitRight] on longitude, [limitBottom, limitTop] on
// latitude.
type Bounds struct {
	LimitLeft, LimitRight, LimitBottom, LimitTop int32
}

// Point is a single localisation point being inserted, carrying the
// localisation row index that becomes the node's ref_id.
type Point struct {
	Lon, Lat int32
	RefID    int32
}

// Builder accumulates nodes in allocation order, ready to be flushed
// through a dbformat.Writer[dbformat.KDNode].
type Builder struct {
	nodes []dbformat.KDNode
}

// NewBuilder starts an empty build; the first inserted point becomes
// the root, and the bbox passed to that Insert becomes its region.
func NewBuilder() *Builder { return &Builder{} }

// Insert adds one point, descending the tree built so far by
// alternating longitude/latitude comparisons, same as a standard
// unbalanced k-d tree insert. Fed points in PreOrder(N) order over a
// longitude-sorted array, the root holds the longitude median; the
// latitude-split levels are not median splits, so the tree is not
// guaranteed to be depth-balanced.
func (b *Builder) Insert(p Point, bbox Bounds) {
	if len(b.nodes) == 0 {
		b.nodes = append(b.nodes, dbformat.KDNode{
			Lon: p.Lon, Lat: p.Lat,
			LimitLeft: bbox.LimitLeft, LimitRight: bbox.LimitRight,
			LimitBottom: bbox.LimitBottom, LimitTop: bbox.LimitTop,
			Dimension: 0, Left: -1, Right: -1, RefID: p.RefID,
		})
		return
	}

	curID := int32(0)
	for {
		cur := &b.nodes[curID]
		var coordNew, coordCur int32
		if cur.Dimension == 0 {
			coordNew, coordCur = p.Lon, cur.Lon
		} else {
			coordNew, coordCur = p.Lat, cur.Lat
		}

		goLeft := coordNew < coordCur
		childID := cur.Right
		if goLeft {
			childID = cur.Left
		}

		if childID != -1 {
			curID = childID
			continue
		}

		region := Bounds{cur.LimitLeft, cur.LimitRight, cur.LimitBottom, cur.LimitTop}
		if cur.Dimension == 0 {
			if goLeft {
				region.LimitRight = coordCur
			} else {
				region.LimitLeft = coordCur
			}
		} else {
			if goLeft {
				region.LimitTop = coordCur
			} else {
				region.LimitBottom = coordCur
			}
		}

		newID := int32(len(b.nodes))
		b.nodes = append(b.nodes, dbformat.KDNode{
			Lon: p.Lon, Lat: p.Lat,
			LimitLeft: region.LimitLeft, LimitRight: region.LimitRight,
			LimitBottom: region.LimitBottom, LimitTop: region.LimitTop,
			Dimension: (cur.Dimension + 1) % 2, Left: -1, Right: -1, RefID: p.RefID,
		})
		if goLeft {
			b.nodes[curID].Left = newID
		} else {
			b.nodes[curID].Right = newID
		}
		return
	}
}

// Nodes returns the built nodes in allocation (node-id) order.
func (b *Builder) Nodes() []dbformat.KDNode { return b.nodes }
