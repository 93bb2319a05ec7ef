package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/VasiliyTurchenko/gerber2gcode/configurator"
	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/plotter"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

const (
	// a stroke starting closer than this to the pen continues the previous one
	ConnectTolerance float64 = 0.01
	// shorter rapid moves are not emitted
	MinTravel float64 = 0.01
	// holes below this size get no inner square
	MinInnerSize float64 = 0.01
)

type Stats struct {
	Traces         int
	Pads           int
	PadsWithHoles  int
	PenUpMoves     int
	TravelDistance float64 // mm, two decimals
	// board extents, mm
	Width  float64
	Height float64
}

func (s Stats) String() string {
	var sb strings.Builder
	sb.WriteString("Trace segments: " + strconv.Itoa(s.Traces) + "\n")
	sb.WriteString("Pads:           " + strconv.Itoa(s.Pads) + "\n")
	sb.WriteString("  with holes:   " + strconv.Itoa(s.PadsWithHoles) + "\n")
	sb.WriteString("Pen-up moves:   " + strconv.Itoa(s.PenUpMoves) + "\n")
	sb.WriteString("Travel:         " + strconv.FormatFloat(s.TravelDistance, 'f', 2, 64) + " mm\n")
	sb.WriteString("Board:          " + strconv.FormatFloat(s.Width, 'f', 2, 64) +
		" x " + strconv.FormatFloat(s.Height, 'f', 2, 64) + " mm\n")
	return sb.String()
}

/*
 ************************** Rendering context ****************************
 */
type Render struct {
	Plt *plotter.PlotterParams

	//statistic
	TraceCounter    int
	PadCounter      int
	HoleCounter     int
	MovePenCounters int
	MovePenDistance float64

	outlines []*PadOutline
}

func NewRender(settings configurator.Settings) *Render {
	retVal := new(Render)
	retVal.Plt = plotter.NewPlotter(settings)
	retVal.outlines = make([]*PadOutline, 0)
	return retVal
}

// travel is a rapid move, counted as a pen-up move
func (rc *Render) travel(p xy.XY) {
	rc.MovePenDistance += rc.Plt.MoveTo(p)
	rc.MovePenCounters++
}

// DrawTraces plots the segments in the given order
func (rc *Render) DrawTraces(traces []TraceSegment) {
	rc.Plt.Comment("=== TRACES ===")
	for _, ts := range traces {
		start := ts.Start()
		// a stroke may continue only when the pen is already down
		if rc.Plt.Pen() != plotter.PenDown || !rc.Plt.Position().Near(start, ConnectTolerance) {
			if rc.Plt.Pen() == plotter.PenDown {
				rc.Plt.PenUp()
			}
			if rc.Plt.Position().Dist(start) > MinTravel {
				rc.travel(start)
			}
			rc.Plt.PenDown()
		}
		rc.Plt.DrawTo(ts.End(), true)
		rc.TraceCounter++
	}
}

// DrawPads plots outer and inner squares of every pad
func (rc *Render) DrawPads(pads []Pad) {
	if len(pads) == 0 {
		return
	}
	if rc.Plt.Pen() == plotter.PenDown {
		rc.Plt.PenUp()
	}
	rc.Plt.Blank()
	rc.Plt.Comment("=== PADS/VIAS ===")
	for _, pad := range pads {
		outline := NewPadOutline(pad)
		rc.outlines = append(rc.outlines, outline)

		rc.travel(outline.Entry())
		rc.Plt.PenDown()
		rc.Plt.DrawLoop(contourToXY(outline.Outer), true)
		if outline.Inner != nil {
			inner := contourToXY(outline.Inner)
			rc.Plt.DrawTo(inner[0], false)
			rc.Plt.DrawLoop(inner, false)
		}
		if pad.HasHole {
			rc.HoleCounter++
		}
		rc.Plt.PenUp()
		rc.Plt.SetPosition(outline.Entry())
		rc.PadCounter++
	}
}

func (rc *Render) Stats(traces []TraceSegment) Stats {
	retVal := Stats{
		Traces:         rc.TraceCounter,
		Pads:           rc.PadCounter,
		PadsWithHoles:  rc.HoleCounter,
		PenUpMoves:     rc.MovePenCounters,
		TravelDistance: math.Round(rc.MovePenDistance*100) / 100,
	}
	if bb, ok := boardBounds(traces, rc.outlines); ok {
		retVal.Width = bb.Max.X - bb.Min.X
		retVal.Height = bb.Max.Y - bb.Min.Y
	}
	return retVal
}

// Emit plots ordered traces and pads, returns the G-code text and the statistic
func Emit(traces []TraceSegment, pads []Pad, settings configurator.Settings) (string, Stats) {
	rc := NewRender(settings)
	rc.Plt.Start()
	rc.DrawTraces(traces)
	rc.DrawPads(pads)
	rc.Plt.Stop()

	stats := rc.Stats(traces)
	rc.Plt.Blank()
	rc.Plt.Comment(fmt.Sprintf("Traces: %d | Pads: %d (%d with holes) | Pen-ups: %d",
		stats.Traces, stats.Pads, stats.PadsWithHoles, stats.PenUpMoves))

	raise, drop, moves, draws := rc.Plt.Counters()
	glog.V(2).Infof("gcode: %d segments, %d pads, %d pen-up moves, %.2fmm travel",
		stats.Traces, stats.Pads, stats.PenUpMoves, stats.TravelDistance)
	glog.V(2).Infof("gcode: pen raised %d times, dropped %d times, %d moves, %d draws",
		raise, drop, moves, draws)
	return rc.Plt.String(), stats
}
