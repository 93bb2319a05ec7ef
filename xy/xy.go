package xy

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

/*
######################### coordinates #########################################
*/

// XY is a point on the board, millimeters
type XY struct {
	X float64
	Y float64
}

var Origin = XY{}

func NewXY(x, y float64) XY {
	return XY{X: x, Y: y}
}

func (xy XY) Vec() mgl64.Vec2 {
	return mgl64.Vec2{xy.X, xy.Y}
}

func FromVec(v mgl64.Vec2) XY {
	return XY{X: v.X(), Y: v.Y()}
}

func (xy XY) String() string {
	return "(" + strconv.FormatFloat(xy.X, 'f', 4, 64) +
		"," + strconv.FormatFloat(xy.Y, 'f', 4, 64) + ")"
}

// Dist returns the euclidean distance between two points
func (xy XY) Dist(another XY) float64 {
	return another.Vec().Sub(xy.Vec()).Len()
}

// tolerance is the radius of the circle around first point
// inisde of which another point will be treated as equal to the first one
func (xy XY) Equals(another XY, tolerance float64) bool {
	return xy.Dist(another) < tolerance
}

// Near compares each axis separately, a square of 2*tolerance around the point
func (xy XY) Near(another XY, tolerance float64) bool {
	return mgl64.Abs(xy.X-another.X) < tolerance &&
		mgl64.Abs(xy.Y-another.Y) < tolerance
}

func (xy XY) Midpoint(another XY) XY {
	return FromVec(xy.Vec().Add(another.Vec()).Mul(0.5))
}

func (xy XY) Sub(another XY) XY {
	return FromVec(xy.Vec().Sub(another.Vec()))
}

// DistSq is the squared distance. Unlike Dist it is exact for
// coordinates with few binary digits, so equal distances compare equal.
func (xy XY) DistSq(another XY) float64 {
	d := another.Sub(xy)
	return d.X*d.X + d.Y*d.Y
}
