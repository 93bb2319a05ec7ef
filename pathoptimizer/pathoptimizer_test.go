package pathoptimizer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

func seg(x1, y1, x2, y2 float64) TraceSegment {
	return TraceSegment{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func path(segs ...TraceSegment) TracePath {
	return TracePath{Segments: segs}
}

func TestOptimizeTraces_ReversesPath(t *testing.T) {
	paths := []TracePath{
		path(seg(10, 0, 20, 0)),
		path(seg(5, 5, 3, 3), seg(3, 3, 1, 1)),
	}
	got := OptimizeTraces(paths)
	want := []TraceSegment{
		seg(1, 1, 3, 3),
		seg(3, 3, 5, 5),
		seg(10, 0, 20, 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestOptimizeTraces_TieKeepsFirstPathForward(t *testing.T) {
	// both paths have both ends 5mm away from the origin
	paths := []TracePath{
		path(seg(3, 4, -3, 4)),
		path(seg(4, 3, 4, -3)),
	}
	got := OptimizeTraces(paths)
	if got[0] != paths[0].Segments[0] {
		t.Fatalf("first path forward expected, got %+v", got[0])
	}
}

func TestOptimizeTraces_Empty(t *testing.T) {
	if got := OptimizeTraces(nil); len(got) != 0 {
		t.Fatalf("no segments expected, got %+v", got)
	}
	if got := OptimizeTraces([]TracePath{{}}); len(got) != 0 {
		t.Fatalf("empty paths must be skipped, got %+v", got)
	}
}

// every step must take a path end nearest to the pen
func TestOptimizeTraces_GreedyChoice(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 1 + rnd.Intn(6)
		paths := make([]TracePath, n)
		for i := range paths {
			paths[i] = path(seg(rnd.Float64()*50, rnd.Float64()*50, rnd.Float64()*50, rnd.Float64()*50))
		}
		got := OptimizeTraces(paths)
		if len(got) != n {
			t.Fatalf("round %d: %d segments, want %d", round, len(got), n)
		}

		remaining := append([]TracePath{}, paths...)
		pos := xy.Origin
		for step, s := range got {
			best := math.Inf(1)
			for _, tp := range remaining {
				best = math.Min(best, math.Min(pos.Dist(tp.Start()), pos.Dist(tp.End())))
			}
			if d := pos.Dist(s.Start()); math.Abs(d-best) > 1e-9 {
				t.Fatalf("round %d step %d: took %.6f, nearest is %.6f", round, step, d, best)
			}
			found := -1
			for i, tp := range remaining {
				if tp.Segments[0] == s || tp.Segments[0].Reversed() == s {
					found = i
					break
				}
			}
			if found == -1 {
				t.Fatalf("round %d step %d: segment %+v not from input", round, step, s)
			}
			remaining = append(remaining[:found], remaining[found+1:]...)
			pos = s.End()
		}
	}
}

func TestOptimizePads(t *testing.T) {
	pads := []Pad{
		{X: 10, Y: 10, OuterSize: 1},
		{X: 1, Y: 1, OuterSize: 2},
		{X: 2, Y: 2, OuterSize: 3},
		{X: 9, Y: 9, OuterSize: 4},
	}
	got := OptimizePads(pads, xy.NewXY(0, 0))
	want := []Pad{pads[1], pads[2], pads[3], pads[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	got = OptimizePads(pads, xy.NewXY(11, 11))
	want = []Pad{pads[0], pads[3], pads[2], pads[1]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order from 11,11 mismatch (-want +got):\n%s", diff)
	}
}

// both pads are sqrt(9.03125) away from the start, Dist may round them apart
func TestOptimizePads_TieGoesToFirstPad(t *testing.T) {
	a := Pad{X: 6.25, Y: 5.25, OuterSize: 1}
	b := Pad{X: 5, Y: 0.25, OuterSize: 2}
	start := xy.NewXY(4.125, 3.125)
	for _, pads := range [][]Pad{{a, b}, {b, a}} {
		got := OptimizePads(pads, start)
		if diff := cmp.Diff(pads[0], got[0]); diff != "" {
			t.Errorf("first pad expected (-want +got):\n%s", diff)
		}
	}
}

func TestPadStart(t *testing.T) {
	if PadStart(nil) != xy.Origin {
		t.Error("origin expected without traces")
	}
	traces := []TraceSegment{seg(0, 0, 1, 1), seg(1, 1, 4, 2)}
	if PadStart(traces) != xy.NewXY(4, 2) {
		t.Error("end of the last segment expected")
	}
}

func TestArena(t *testing.T) {
	arena := NewArena([]float64{3, 1, 2, 1})
	identity := func(v float64) float64 { return v }

	i, c := arena.Closest(identity)
	if i != 1 || c != 1 {
		t.Fatalf("index 1 expected, got %d (%v)", i, c)
	}
	arena.Take(i)
	if i, _ = arena.Closest(identity); i != 3 {
		t.Fatalf("index 3 expected, got %d", i)
	}
	arena.Take(3)
	arena.Take(2)
	arena.Take(0)
	if arena.Len() != 0 {
		t.Fatalf("empty arena expected, %d left", arena.Len())
	}
	if i, _ = arena.Closest(identity); i != -1 {
		t.Fatalf("-1 expected for empty arena, got %d", i)
	}
}
