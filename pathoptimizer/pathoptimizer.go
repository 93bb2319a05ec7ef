/*
	Orders traces and pads to cut pen-up travel.

	Both tours are greedy nearest neighbour constructions, O(n^2).
*/
package pathoptimizer

import (
	"math"

	"github.com/golang/glog"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

// traceCost is the squared distance from pos to the nearest end of the path,
// reverse is true when that end is the path's end point
func traceCost(pos xy.XY, tp TracePath) (distSq float64, reverse bool) {
	dStart := pos.DistSq(tp.Start())
	dEnd := pos.DistSq(tp.End())
	if dEnd < dStart {
		return dEnd, true
	}
	return dStart, false
}

// OptimizeTraces starts at the origin and repeatedly takes the path with an
// end point nearest to the pen. A path entered from its end is reversed.
func OptimizeTraces(paths []TracePath) []TraceSegment {
	nonEmpty := make([]TracePath, 0, len(paths))
	for _, tp := range paths {
		if len(tp.Segments) > 0 {
			nonEmpty = append(nonEmpty, tp)
		}
	}

	retVal := make([]TraceSegment, 0)
	arena := NewArena(nonEmpty)
	pos := xy.Origin
	travel := 0.0
	for arena.Len() > 0 {
		i, distSq := arena.Closest(func(tp TracePath) float64 {
			d, _ := traceCost(pos, tp)
			return d
		})
		tp := arena.Take(i)
		if _, reverse := traceCost(pos, tp); reverse {
			tp = tp.Reversed()
		}
		retVal = append(retVal, tp.Segments...)
		pos = tp.End()
		travel += math.Sqrt(distSq)
	}
	glog.V(2).Infof("traces: %d paths, %d segments, %.2fmm to travel", len(nonEmpty), len(retVal), travel)
	return retVal
}

// OptimizePads starts at start and repeatedly takes the pad with the nearest center
func OptimizePads(pads []Pad, start xy.XY) []Pad {
	retVal := make([]Pad, 0, len(pads))
	arena := NewArena(pads)
	pos := start
	for arena.Len() > 0 {
		i, _ := arena.Closest(func(p Pad) float64 {
			return pos.DistSq(p.Center())
		})
		pad := arena.Take(i)
		retVal = append(retVal, pad)
		pos = pad.Center()
	}
	glog.V(2).Infof("pads: %d ordered from %v", len(retVal), start)
	return retVal
}

// PadStart is where pad plotting begins: the end of the last trace, or the origin
func PadStart(traces []TraceSegment) xy.XY {
	if len(traces) == 0 {
		return xy.Origin
	}
	return traces[len(traces)-1].End()
}
