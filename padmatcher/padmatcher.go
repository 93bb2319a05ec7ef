// Pad matcher. Fuses Gerber flashes and oblong pads with drill holes.
//
// The matching is greedy: every pad takes the nearest free hole closer than
// MatchDistance, there is no backtracking. A hole is used at most once.
package padmatcher

import (
	"github.com/golang/glog"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

const (
	// flashes closer than DedupDistance are the same pad
	DedupDistance float64 = 0.5
	// a hole belongs to a pad when its center is closer than MatchDistance
	MatchDistance float64 = 0.5
	// a flash smaller than MinCopperFactor * hole diameter is inflated
	// to CopperFactor * hole diameter
	MinCopperFactor float64 = 1.5
	CopperFactor    float64 = 2.2
)

type holeSet struct {
	holes []Hole
	used  []bool
	index *pointIndex
}

func newHoleSet(holes []Hole) *holeSet {
	centers := make([]xy.XY, len(holes))
	for i := range holes {
		centers[i] = holes[i].Center()
	}
	retVal := &holeSet{
		holes: holes,
		used:  make([]bool, len(holes)),
		index: newPointIndex(centers),
	}
	for i := range centers {
		retVal.index.insert(centers[i], i)
	}
	return retVal
}

// take marks and returns the nearest free hole closer than MatchDistance.
// Equal distances go to the hole which comes first in the drill file.
func (hs *holeSet) take(center xy.XY) (Hole, bool) {
	best := -1
	minDistSq := MatchDistance * MatchDistance
	for _, i := range hs.index.near(center, MatchDistance) {
		if hs.used[i] {
			continue
		}
		if distSq := center.DistSq(hs.holes[i].Center()); distSq < minDistSq {
			minDistSq = distSq
			best = i
		}
	}
	if best == -1 {
		return Hole{}, false
	}
	hs.used[best] = true
	return hs.holes[best], true
}

func (hs *holeSet) free() []Hole {
	retVal := make([]Hole, 0)
	for i := range hs.holes {
		if !hs.used[i] {
			retVal = append(retVal, hs.holes[i])
		}
	}
	return retVal
}

// Dedup drops flashes closer than DedupDistance to an already kept one.
// The first occurrence wins.
func Dedup(flashes []Flash) []Flash {
	retVal := make([]Flash, 0, len(flashes))
	centers := make([]xy.XY, len(flashes))
	for i := range flashes {
		centers[i] = flashes[i].Center()
	}
	index := newPointIndex(centers)
	for i := range flashes {
		duplicate := false
		for _, j := range index.near(centers[i], DedupDistance) {
			if centers[i].Dist(retVal[j].Center()) < DedupDistance {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		index.insert(centers[i], len(retVal))
		retVal = append(retVal, flashes[i])
	}
	return retVal
}

// Match runs the four phases: flash dedup, oblong pads, flashes, leftover holes
func Match(flashes []Flash, oblongPads []OblongPad, holes []Hole) []Pad {
	pads := make([]Pad, 0, len(flashes)+len(oblongPads)+len(holes))
	hs := newHoleSet(holes)

	uniqueFlashes := Dedup(flashes)

	for _, oblong := range oblongPads {
		pad := Pad{
			X:           oblong.X,
			Y:           oblong.Y,
			OuterWidth:  oblong.Width,
			OuterHeight: oblong.Height,
			IsRectangle: true,
		}
		if hole, ok := hs.take(oblong.Center()); ok {
			pad.InnerSize = hole.Diameter
			pad.HasHole = true
		}
		pads = append(pads, pad)
	}

	for _, flash := range uniqueFlashes {
		pad := Pad{
			X:         flash.X,
			Y:         flash.Y,
			OuterSize: flash.Size,
		}
		if hole, ok := hs.take(flash.Center()); ok {
			if pad.OuterSize < hole.Diameter*MinCopperFactor {
				pad.OuterSize = hole.Diameter * CopperFactor
			}
			pad.InnerSize = hole.Diameter
			pad.HasHole = true
		}
		pads = append(pads, pad)
	}

	leftovers := hs.free()
	for _, hole := range leftovers {
		pads = append(pads, Pad{
			X:         hole.X,
			Y:         hole.Y,
			OuterSize: hole.Diameter * CopperFactor,
			InnerSize: hole.Diameter,
			HasHole:   true,
		})
	}

	glog.V(2).Infof("pads: %d flashes (%d unique), %d oblong, %d holes (%d standalone) -> %d pads",
		len(flashes), len(uniqueFlashes), len(oblongPads), len(holes), len(leftovers), len(pads))
	return pads
}
