/*
 Generates a stream of G-code commands for a pen plotter
*/
package plotter

import (
	"strconv"
	"strings"

	"github.com/VasiliyTurchenko/gerber2gcode/configurator"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

type PenState int

const (
	PenUnknown PenState = iota
	PenUp
	PenDown
)

func (ps PenState) String() string {
	switch ps {
	case PenUp:
		return "up"
	case PenDown:
		return "down"
	}
	return "unknown"
}

/*
	Plotter current status and statistic
*/
type PlotterParams struct {
	settings configurator.Settings

	pen        PenState
	currentPos xy.XY

	raisePenCmds int
	dropPenCmds  int
	moveCmds     int
	drawCmds     int

	outStringBuffer []string
}

func NewPlotter(settings configurator.Settings) *PlotterParams {
	retVal := new(PlotterParams)
	retVal.settings = settings
	retVal.outStringBuffer = make([]string, 0)
	return retVal
}

func fmtZ(z float64) string {
	return strconv.FormatFloat(z, 'f', 1, 64)
}

func fmtXY(p xy.XY) string {
	return "X" + strconv.FormatFloat(p.X, 'f', 4, 64) + " Y" + strconv.FormatFloat(p.Y, 'f', 4, 64)
}

func (plotter *PlotterParams) emit(s string) {
	plotter.outStringBuffer = append(plotter.outStringBuffer, s)
}

func (plotter *PlotterParams) Comment(text string) {
	plotter.emit("; " + text)
}

func (plotter *PlotterParams) Blank() {
	plotter.emit("")
}

/*
	Program preamble: millimeters, absolute positioning, origin reset, pen up
*/
func (plotter *PlotterParams) Start() {
	plotter.Comment("PCB Pen Plotter G-code")
	plotter.Comment("Shapes: Circle to Square, Oblong to Rectangle")
	plotter.Comment("Pen: " + strconv.FormatFloat(plotter.settings.PenWidth, 'f', -1, 64) + "mm")
	plotter.Blank()
	plotter.emit("G21")
	plotter.emit("G90")
	plotter.emit("G92 X0 Y0 Z0")
	plotter.emit("G00 Z" + fmtZ(plotter.settings.PenUpHeight) + " F" + strconv.Itoa(plotter.settings.RapidFeed))
	plotter.Blank()
	plotter.pen = PenUp
	plotter.currentPos = xy.Origin
}

/*
	Raises the pen, returns to the origin and ends the program
*/
func (plotter *PlotterParams) Stop() {
	if plotter.pen == PenDown {
		plotter.PenUp()
	}
	plotter.emit("G00 " + fmtXY(xy.Origin))
	plotter.currentPos = xy.Origin
	plotter.emit("M02")
}

func (plotter *PlotterParams) PenUp() {
	plotter.emit("G00 Z" + fmtZ(plotter.settings.PenUpHeight))
	plotter.pen = PenUp
	plotter.raisePenCmds++
}

func (plotter *PlotterParams) PenDown() {
	plotter.emit("G00 Z" + fmtZ(plotter.settings.PenDownHeight))
	plotter.pen = PenDown
	plotter.dropPenCmds++
}

// MoveTo is a rapid move, returns the distance travelled
func (plotter *PlotterParams) MoveTo(p xy.XY) float64 {
	retVal := plotter.currentPos.Dist(p)
	plotter.emit("G00 " + fmtXY(p))
	plotter.currentPos = p
	plotter.moveCmds++
	return retVal
}

// DrawTo is a linear feed move. The feed rate is emitted only when withFeed is set,
// it stays modal until changed.
func (plotter *PlotterParams) DrawTo(p xy.XY, withFeed bool) {
	s := "G01 " + fmtXY(p)
	if withFeed {
		s += " F" + strconv.Itoa(plotter.settings.DrawFeed)
	}
	plotter.emit(s)
	plotter.currentPos = p
	plotter.drawCmds++
}

// DrawLoop draws a closed polyline through the corners and back to the first one.
// The pen must be at the first corner.
func (plotter *PlotterParams) DrawLoop(corners []xy.XY, withFeed bool) {
	if len(corners) == 0 {
		return
	}
	for i := 1; i < len(corners); i++ {
		plotter.DrawTo(corners[i], withFeed && i == 1)
	}
	plotter.DrawTo(corners[0], withFeed && len(corners) == 1)
}

func (plotter *PlotterParams) Pen() PenState {
	return plotter.pen
}

func (plotter *PlotterParams) Position() xy.XY {
	return plotter.currentPos
}

// SetPosition records where the caller considers the pen to be
func (plotter *PlotterParams) SetPosition(p xy.XY) {
	plotter.currentPos = p
}

func (plotter *PlotterParams) Settings() configurator.Settings {
	return plotter.settings
}

// String returns the program, every line terminated by a newline
func (plotter *PlotterParams) String() string {
	var sb strings.Builder
	for _, s := range plotter.outStringBuffer {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (plotter *PlotterParams) Counters() (raise, drop, moves, draws int) {
	return plotter.raisePenCmds, plotter.dropPenCmds, plotter.moveCmds, plotter.drawCmds
}
