/*
################################## State machine ######################################
*/
package gerbparser

import (
	"github.com/golang/glog"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/gerberlexer"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

/*
	The State object represents the state of the parser between two commands.
*/
type State struct {
	Scale      float64 // mm per file unit, 1.0 or 25.4
	Apertures  ApertureTable
	CurrentAp  int  // aperture code
	ApSelected bool // no coordinate command is accepted before the first Dnn
	Coord      xy.XY

	// the trace path being built, D02 closes it
	currentPath []TraceSegment

	data *GerberData
	// statistic
	skipped int
}

func NewState() *State {
	retVal := new(State)
	retVal.Scale = 1.0
	retVal.Apertures = make(ApertureTable)
	retVal.data = &GerberData{
		Traces:     make([]TracePath, 0),
		Flashes:    make([]Flash, 0),
		OblongPads: make([]OblongPad, 0),
	}
	return retVal
}

// Process applies one command to the state
func (st *State) Process(gc *gerberlexer.GerberCommand) {
	switch gc.Cmd {
	case gerberlexer.MO:
		st.Scale = gc.Scale
	case gerberlexer.AD:
		apert := NewAperture(gc, st.Scale)
		st.Apertures[apert.Code] = apert
		glog.V(3).Infoln("aperture", apert.String())
	case gerberlexer.D:
		st.CurrentAp = gc.Code
		st.ApSelected = true
	case gerberlexer.D01, gerberlexer.D02, gerberlexer.D03:
		if st.ApSelected == false {
			st.skipped++
			return
		}
		target := xy.NewXY(float64(gc.X)/GerberCoordDivisor, float64(gc.Y)/GerberCoordDivisor)
		st.operate(gc.Cmd.Opcode(), target)
		st.Coord = target
	default:
		glog.V(3).Infoln("skipping", gc.CmdString)
		st.skipped++
	}
}

func (st *State) operate(op ActType, target xy.XY) {
	apSize := st.Apertures.SizeOf(st.CurrentAp)
	switch op {
	case OpcodeD03_FLASH:
		if apSize >= FlashMinSize && apSize <= FlashMaxSize {
			st.data.Flashes = append(st.data.Flashes, Flash{X: target.X, Y: target.Y, Size: apSize})
		}
	case OpcodeD02_MOVE:
		st.closePath()
	case OpcodeD01_DRAW:
		if oblong, ok := ClassifyOblong(st.Coord, target, apSize); ok {
			st.data.OblongPads = append(st.data.OblongPads, oblong)
			return
		}
		seg := TraceSegment{
			X1: st.Coord.X, Y1: st.Coord.Y,
			X2: target.X, Y2: target.Y,
		}
		if seg.Length() > MinSegmentLength &&
			apSize >= TraceMinAperture && apSize <= TraceMaxAperture {
			st.currentPath = append(st.currentPath, seg)
		}
	}
}

func (st *State) closePath() {
	if len(st.currentPath) == 0 {
		return
	}
	st.data.Traces = append(st.data.Traces, TracePath{Segments: st.currentPath})
	st.currentPath = nil
}

// Finish flushes the open path and returns the collected data
func (st *State) Finish() *GerberData {
	st.closePath()
	return st.data
}

func (st *State) Skipped() int {
	return st.skipped
}
