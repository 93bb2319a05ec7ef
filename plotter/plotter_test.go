package plotter

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VasiliyTurchenko/gerber2gcode/configurator"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

// lines splits the program back into the emitted lines
func lines(plt *PlotterParams) []string {
	return strings.Split(strings.TrimSuffix(plt.String(), "\n"), "\n")
}

func TestPlotter_Program(t *testing.T) {
	plt := NewPlotter(configurator.Settings{
		PenWidth:      0.35,
		PenUpHeight:   2,
		PenDownHeight: -0.5,
		RapidFeed:     2500,
		DrawFeed:      900,
	})
	plt.Start()
	if plt.Pen() != PenUp {
		t.Fatalf("pen must be up after start, got %v", plt.Pen())
	}
	dist := plt.MoveTo(xy.NewXY(3, 4))
	if math.Abs(dist-5) > 1e-12 {
		t.Errorf("distance 5 expected, got %v", dist)
	}
	plt.PenDown()
	plt.DrawTo(xy.NewXY(1.23457, -7), true)
	plt.DrawTo(xy.NewXY(0, 0), false)
	plt.Stop()

	want := []string{
		"; PCB Pen Plotter G-code",
		"; Shapes: Circle to Square, Oblong to Rectangle",
		"; Pen: 0.35mm",
		"",
		"G21",
		"G90",
		"G92 X0 Y0 Z0",
		"G00 Z2.0 F2500",
		"",
		"G00 X3.0000 Y4.0000",
		"G00 Z-0.5",
		"G01 X1.2346 Y-7.0000 F900",
		"G01 X0.0000 Y0.0000",
		"G00 Z2.0",
		"G00 X0.0000 Y0.0000",
		"M02",
	}
	if diff := cmp.Diff(want, lines(plt)); diff != "" {
		t.Fatalf("program mismatch (-want +got):\n%s", diff)
	}

	raise, drop, moves, draws := plt.Counters()
	if raise != 1 || drop != 1 || moves != 1 || draws != 2 {
		t.Errorf("counters %d %d %d %d", raise, drop, moves, draws)
	}
}

func TestPlotter_DrawLoop(t *testing.T) {
	plt := NewPlotter(configurator.DefaultSettings())
	corners := []xy.XY{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	plt.DrawLoop(corners, true)
	want := []string{
		"G01 X1.0000 Y0.0000 F1000",
		"G01 X1.0000 Y1.0000",
		"G01 X0.0000 Y1.0000",
		"G01 X0.0000 Y0.0000",
	}
	if diff := cmp.Diff(want, lines(plt)); diff != "" {
		t.Fatalf("loop mismatch (-want +got):\n%s", diff)
	}
	if plt.Position() != corners[0] {
		t.Errorf("loop must end at the first corner, got %v", plt.Position())
	}
}

func TestPlotter_String(t *testing.T) {
	plt := NewPlotter(configurator.DefaultSettings())
	plt.Comment("x")
	plt.Blank()
	if got := plt.String(); got != "; x\n\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
