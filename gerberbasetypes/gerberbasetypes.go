// Base types for Gerber/drill parsing and pen plotter output.
// All lengths are millimeters.
package gerberbasetypes

import (
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

// Gerber directives
const GerberApertureDef = "%ADD"
const GerberMOIN = "%MOIN*%"
const GerberMOMM = "%MOMM*%"
const GerberG70 = "G70*"
const GerberG71 = "G71*"
const GerberG54 = "G54"

// Drill directives
const DrillMetric = "METRIC"
const DrillInch = "INCH"

const InchesToMM float64 = 25.4

// coordinate divisors
const GerberCoordDivisor float64 = 10000.0
const DrillCoordDivisor float64 = 1000.0

type GerberApType int

const (
	AptypeCircle GerberApType = iota + 1
	AptypeRectangle
	AptypePoly
	AptypeObround
	AptypeMacro
)

func (ga GerberApType) String() string {
	switch ga {
	case AptypeCircle:
		return "circle aperture"
	case AptypeRectangle:
		return "rectangle aperture"
	case AptypeObround:
		return "obround (box) aperture"
	case AptypePoly:
		return "polygon aperture"
	case AptypeMacro:
		return "macro aperture"
	default:
	}
	return "Unknown aperture type"
}

// ApTypeFromLetter maps the shape letter of an %ADD directive
func ApTypeFromLetter(c byte) (GerberApType, bool) {
	switch c {
	case 'C':
		return AptypeCircle, true
	case 'R':
		return AptypeRectangle, true
	case 'P':
		return AptypePoly, true
	case 'O':
		return AptypeObround, true
	case 'M':
		return AptypeMacro, true
	}
	return 0, false
}

type ActType int

const (
	OpcodeD01_DRAW ActType = iota + 1
	OpcodeD02_MOVE
	OpcodeD03_FLASH
)

func (act ActType) String() string {
	switch act {
	case OpcodeD01_DRAW:
		return "Opcode D01 (DRAW)"
	case OpcodeD02_MOVE:
		return "Opcode D02 (MOVE)"
	case OpcodeD03_FLASH:
		return "Opcode D03 (FLASH)"
	default:

	}
	return "Unknown OpCode"
}

/*
	Geometry produced by the parsers
*/

// TraceSegment is one straight copper trace stroke
type TraceSegment struct {
	X1, Y1, X2, Y2 float64
}

func (ts TraceSegment) Start() xy.XY {
	return xy.XY{X: ts.X1, Y: ts.Y1}
}

func (ts TraceSegment) End() xy.XY {
	return xy.XY{X: ts.X2, Y: ts.Y2}
}

func (ts TraceSegment) Length() float64 {
	return ts.Start().Dist(ts.End())
}

// Reversed returns the same stroke drawn the other way
func (ts TraceSegment) Reversed() TraceSegment {
	return TraceSegment{X1: ts.X2, Y1: ts.Y2, X2: ts.X1, Y2: ts.Y1}
}

// TracePath is a run of segments drawn without a D02 in between.
// A path is never empty.
type TracePath struct {
	Segments []TraceSegment
}

func (tp TracePath) Start() xy.XY {
	return tp.Segments[0].Start()
}

func (tp TracePath) End() xy.XY {
	return tp.Segments[len(tp.Segments)-1].End()
}

// Reversed flips the segment order and the direction of every segment
func (tp TracePath) Reversed() TracePath {
	retVal := TracePath{Segments: make([]TraceSegment, len(tp.Segments))}
	last := len(tp.Segments) - 1
	for i, seg := range tp.Segments {
		retVal.Segments[last-i] = seg.Reversed()
	}
	return retVal
}

// Flash is a D03 exposure
type Flash struct {
	X, Y float64
	Size float64
}

func (f Flash) Center() xy.XY {
	return xy.XY{X: f.X, Y: f.Y}
}

// OblongPad is a pad recognized from a short wide D01 stroke
type OblongPad struct {
	X, Y          float64
	Width, Height float64
}

func (op OblongPad) Center() xy.XY {
	return xy.XY{X: op.X, Y: op.Y}
}

// Hole is a drill hit
type Hole struct {
	X, Y     float64
	Diameter float64
}

func (h Hole) Center() xy.XY {
	return xy.XY{X: h.X, Y: h.Y}
}

// Pad is either circular (OuterSize) or rectangular (OuterWidth x OuterHeight).
// InnerSize is the hole diameter, 0 when there is no hole.
type Pad struct {
	X, Y        float64
	OuterSize   float64
	OuterWidth  float64
	OuterHeight float64
	InnerSize   float64
	HasHole     bool
	IsRectangle bool
}

func (p Pad) Center() xy.XY {
	return xy.XY{X: p.X, Y: p.Y}
}

// HalfExtents returns half of the outer bounding box size.
// Circles are plotted as squares.
func (p Pad) HalfExtents() (float64, float64) {
	if p.IsRectangle {
		return p.OuterWidth / 2, p.OuterHeight / 2
	}
	return p.OuterSize / 2, p.OuterSize / 2
}
