package gerbparser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func gerber(lines ...string) string {
	return strings.Join(lines, "\n")
}

func seg(x1, y1, x2, y2 float64) TraceSegment {
	return TraceSegment{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func TestParse_SingleFlash(t *testing.T) {
	data := Parse(gerber(
		"G04 single pad*",
		"%FSLAX46Y46*%",
		"%MOMM*%",
		"%ADD10C,1.600000*%",
		"D10*",
		"X100000Y100000D03*",
		"M02*",
	))
	want := []Flash{{X: 10, Y: 10, Size: 1.6}}
	if diff := cmp.Diff(want, data.Flashes, approx); diff != "" {
		t.Fatalf("flashes mismatch (-want +got):\n%s", diff)
	}
	if len(data.Traces) != 0 || len(data.OblongPads) != 0 {
		t.Fatal("no traces and no oblong pads expected")
	}
}

func TestParse_Traces(t *testing.T) {
	data := Parse(gerber(
		"%MOMM*%",
		"%ADD10C,0.25*%",
		"D10*",
		"X0Y0D02*",
		"X100000Y0D01*",
		"X100000Y100000D01*",
		"X200000Y200000D02*",
		"X300000Y200000D01*",
	))
	want := []TracePath{
		{Segments: []TraceSegment{seg(0, 0, 10, 0), seg(10, 0, 10, 10)}},
		{Segments: []TraceSegment{seg(20, 20, 30, 20)}},
	}
	if diff := cmp.Diff(want, data.Traces, approx); diff != "" {
		t.Fatalf("traces mismatch (-want +got):\n%s", diff)
	}
	if !data.Traces[0].Start().Equals(xy.NewXY(0, 0), 1e-9) ||
		!data.Traces[0].End().Equals(xy.NewXY(10, 10), 1e-9) {
		t.Fatal("bad path end points")
	}
}

func TestParse_CoordinatesBeforeApertureSelect(t *testing.T) {
	data := Parse(gerber(
		"%ADD10C,0.2*%",
		"X500000Y500000D02*",
		"X500000Y600000D01*",
		"D10*",
		"X200000Y0D01*",
	))
	// the first two commands neither draw nor move the current point
	want := []TracePath{{Segments: []TraceSegment{seg(0, 0, 20, 0)}}}
	if diff := cmp.Diff(want, data.Traces, approx); diff != "" {
		t.Fatalf("traces mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_OblongPads(t *testing.T) {
	data := Parse(gerber(
		"%MOMM*%",
		"%ADD11C,1.5*%",
		"D11*",
		"X50000Y50000D02*",
		"X60000Y50000D01*",
		"X100000Y100000D02*",
		"X100000Y120000D01*",
	))
	want := []OblongPad{
		{X: 5.5, Y: 5, Width: 2.5, Height: 1.5},
		{X: 10, Y: 11, Width: 1.5, Height: 3.5},
	}
	if diff := cmp.Diff(want, data.OblongPads, approx); diff != "" {
		t.Fatalf("oblong pads mismatch (-want +got):\n%s", diff)
	}
	if len(data.Traces) != 0 {
		t.Fatal("oblong strokes must not become traces")
	}
}

func TestParse_InchUnits(t *testing.T) {
	data := Parse(gerber(
		"%MOIN*%",
		"%ADD10C,0.05*%",
		"%MOMM*%",
		"%ADD11C,0.05*%",
		"D10*",
		"X10000Y10000D03*",
		"D11*",
		"X20000Y20000D03*",
	))
	// the second flash is below FlashMinSize
	want := []Flash{{X: 1, Y: 1, Size: 1.27}}
	if diff := cmp.Diff(want, data.Flashes, approx); diff != "" {
		t.Fatalf("flashes mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Filters(t *testing.T) {
	data := Parse(gerber(
		"%ADD10C,25*%",
		"%ADD11R,3.5X1*%",
		"%ADD12C,0.05*%",
		"D10*",
		"X10000Y10000D03*",
		"D11*",
		"X0Y0D02*",
		"X200000Y0D01*",
		"D12*",
		"X300000Y0D01*",
		"X300000Y0D01*",
	))
	if len(data.Flashes) != 0 {
		t.Fatal("oversized flash must be dropped")
	}
	if len(data.Traces) != 0 {
		t.Fatal("draws with too wide, too thin or degenerate strokes must be dropped")
	}
}

func TestParse_UndefinedAperture(t *testing.T) {
	data := Parse(gerber(
		"D99*",
		"X10000Y0D03*",
		"X0Y0D02*",
		"X100000Y0D01*",
	))
	if len(data.Flashes) != 1 || data.Flashes[0].Size != DefaultApertureSize {
		t.Fatal("flash with the default aperture size expected")
	}
	if len(data.Traces) != 1 {
		t.Fatal("one trace expected")
	}
}

func TestParse_AdjacentExtendedCommands(t *testing.T) {
	data := Parse(gerber(
		"%FSLAX46Y46*%%MOMM*%%ADD10C,0.2*%%ADD11C,1.6*%",
		"D10*X0Y0D02*X100000Y0D01*",
		"D11*X100000Y100000D03*",
	))
	want := []TracePath{{Segments: []TraceSegment{seg(0, 0, 10, 0)}}}
	if diff := cmp.Diff(want, data.Traces, approx); diff != "" {
		t.Fatalf("traces mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Flash{{X: 10, Y: 10, Size: 1.6}}, data.Flashes, approx); diff != "" {
		t.Fatalf("flashes mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Permissive(t *testing.T) {
	data := Parse(gerber(
		"garbage",
		"%TF.FileFunction,Copper,L1,Top*%",
		"%ADD10C,0.2*%",
		"%ADD11RoundRect,0.25X1X1*%",
		"D10*X0Y0D02*X100000Y0D01*",
		"X1.5Y2D01*",
		"",
		"\r",
	))
	want := []TracePath{{Segments: []TraceSegment{seg(0, 0, 10, 0)}}}
	if diff := cmp.Diff(want, data.Traces, approx); diff != "" {
		t.Fatalf("traces mismatch (-want +got):\n%s", diff)
	}
}

// every qualifying draw ends up either as a trace segment or an oblong pad
func TestParse_DrawAccounting(t *testing.T) {
	lines := []string{"%ADD10C,0.2*%", "%ADD11C,1.2*%", "D10*", "X0Y0D02*"}
	qualifying := 0
	for i := 1; i <= 20; i++ {
		ap := "D10*"
		if i%3 == 0 {
			ap = "D11*"
		}
		lines = append(lines, ap)
		lines = append(lines, "X"+strconv.Itoa(i*15000)+"Y"+strconv.Itoa((i%2)*4000)+"D01*")
		qualifying++
	}
	data := Parse(gerber(lines...))
	segments := 0
	for _, tp := range data.Traces {
		segments += len(tp.Segments)
	}
	if segments+len(data.OblongPads) != qualifying {
		t.Fatalf("%d segments + %d oblong pads != %d draws", segments, len(data.OblongPads), qualifying)
	}
	if len(data.OblongPads) == 0 {
		t.Fatal("the wide aperture draws must produce oblong pads")
	}
}

func TestClassifyOblong_Reversal(t *testing.T) {
	var cases = []struct {
		from, to xy.XY
		ap       float64
	}{
		{xy.NewXY(1, 1), xy.NewXY(2, 1.2), 1.2},
		{xy.NewXY(-3, 4), xy.NewXY(-3.1, 6), 1.0},
		{xy.NewXY(0, 0), xy.NewXY(1, 1), 2.0},
	}
	for _, c := range cases {
		a, okA := ClassifyOblong(c.from, c.to, c.ap)
		b, okB := ClassifyOblong(c.to, c.from, c.ap)
		if !okA || !okB {
			t.Fatalf("%v -> %v must be an oblong pad", c.from, c.to)
		}
		if diff := cmp.Diff(a, b, approx); diff != "" {
			t.Errorf("reversal changed the pad (-fwd +rev):\n%s", diff)
		}
	}
	if _, ok := ClassifyOblong(xy.NewXY(0, 0), xy.NewXY(0.4, 0), 1.5); ok {
		t.Fatal("too short stroke must not be an oblong pad")
	}
	if _, ok := ClassifyOblong(xy.NewXY(0, 0), xy.NewXY(4, 0), 1.0); ok {
		t.Fatal("stroke longer than 3 apertures must not be an oblong pad")
	}
}
