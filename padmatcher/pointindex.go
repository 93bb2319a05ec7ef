package padmatcher

import (
	"sort"

	"github.com/asim/quadtree"

	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

// pointIndex finds points inside a square around a query point.
// Coincident points share one quadtree point, its data holds the indices
// of the points in the caller's slice.
type pointIndex struct {
	quadTree *quadtree.QuadTree
	buckets  map[xy.XY]*[]int
}

// newPointIndex sizes the tree to hold every point of bounds
func newPointIndex(bounds []xy.XY) *pointIndex {
	if len(bounds) == 0 {
		return &pointIndex{}
	}
	minX, minY := bounds[0].X, bounds[0].Y
	maxX, maxY := minX, minY
	for _, p := range bounds[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	midX := (maxX + minX) / 2
	midY := (maxY + minY) / 2
	// margin keeps points off the edges
	halfWidth := maxX - midX + 10
	halfHeight := maxY - midY + 10

	aabb := quadtree.NewAABB(
		quadtree.NewPoint(midX, midY, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))
	return &pointIndex{
		quadTree: quadtree.New(aabb, 0, nil),
		buckets:  make(map[xy.XY]*[]int),
	}
}

func (pi *pointIndex) insert(p xy.XY, index int) {
	if pi.quadTree == nil {
		return
	}
	if bucket, ok := pi.buckets[p]; ok {
		*bucket = append(*bucket, index)
		return
	}
	bucket := &[]int{index}
	pi.buckets[p] = bucket
	pi.quadTree.Insert(quadtree.NewPoint(p.X, p.Y, bucket))
}

// near returns indices of the points within radius along each axis,
// in ascending order
func (pi *pointIndex) near(p xy.XY, radius float64) []int {
	if pi.quadTree == nil {
		return nil
	}
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(p.X, p.Y, nil),
		quadtree.NewPoint(radius, radius, nil))
	points := pi.quadTree.Search(aabb)
	retVal := make([]int, 0, len(points))
	for _, point := range points {
		retVal = append(retVal, *point.Data().(*[]int)...)
	}
	sort.Ints(retVal)
	return retVal
}
