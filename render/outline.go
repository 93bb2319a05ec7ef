package render

import (
	"github.com/akavel/polyclip-go"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

// PadOutline is what the pen draws for a pad: the outer copper square or
// rectangle and, for drilled pads, the square around the hole.
// Corners go counter-clockwise from the lower left one.
type PadOutline struct {
	originPoint polyclip.Point
	Outer       polyclip.Contour
	Inner       polyclip.Contour
	boundBox    polyclip.Rectangle
}

func square(center polyclip.Point, halfW, halfH float64) polyclip.Contour {
	return polyclip.Contour{
		{X: center.X - halfW, Y: center.Y - halfH},
		{X: center.X + halfW, Y: center.Y - halfH},
		{X: center.X + halfW, Y: center.Y + halfH},
		{X: center.X - halfW, Y: center.Y + halfH},
	}
}

// NewPadOutline builds outline of a pad. Circles become squares.
func NewPadOutline(pad Pad) *PadOutline {
	retVal := new(PadOutline)
	retVal.originPoint = polyclip.Point{X: pad.X, Y: pad.Y}
	hw, hh := pad.HalfExtents()
	retVal.Outer = square(retVal.originPoint, hw, hh)
	if pad.HasHole && pad.InnerSize > MinInnerSize {
		r := pad.InnerSize / 2
		retVal.Inner = square(retVal.originPoint, r, r)
	}
	retVal.boundBox = retVal.Outer.BoundingBox()
	return retVal
}

func (po *PadOutline) BoundingBox() polyclip.Rectangle {
	return po.boundBox
}

// Entry is the corner where drawing of the pad starts and ends
func (po *PadOutline) Entry() xy.XY {
	return toXY(po.Outer[0])
}

func toXY(p polyclip.Point) xy.XY {
	return xy.XY{X: p.X, Y: p.Y}
}

func contourToXY(c polyclip.Contour) []xy.XY {
	retVal := make([]xy.XY, len(c))
	for i := range c {
		retVal[i] = toXY(c[i])
	}
	return retVal
}

// boardBounds returns the box around every trace and pad outline
func boardBounds(traces []TraceSegment, outlines []*PadOutline) (polyclip.Rectangle, bool) {
	poly := make(polyclip.Polygon, 0, len(traces)+len(outlines))
	for _, ts := range traces {
		poly = append(poly, polyclip.Contour{{X: ts.X1, Y: ts.Y1}, {X: ts.X2, Y: ts.Y2}})
	}
	for _, po := range outlines {
		poly = append(poly, po.Outer)
	}
	if len(poly) == 0 {
		return polyclip.Rectangle{}, false
	}
	return poly.BoundingBox(), true
}
