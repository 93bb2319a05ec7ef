// Gerber parser. Extracts trace paths, pad flashes and oblong pad
// candidates from the text subset emitted by the upstream CAD tool.
package gerbparser

import (
	"math"

	"github.com/golang/glog"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/gerberlexer"
	stor "github.com/VasiliyTurchenko/gerber2gcode/strings_storage"
	"github.com/VasiliyTurchenko/gerber2gcode/xy"
)

const (
	// flashes outside of the range are dropped
	FlashMinSize float64 = 0.1
	FlashMaxSize float64 = 20.0

	// a draw is an oblong pad when its length is in (OblongMinLength, OblongMaxLength),
	// the aperture is at least OblongMinAperture and the length is
	// shorter than OblongLengthFactor apertures
	OblongMinLength    float64 = 0.5
	OblongMaxLength    float64 = 5.0
	OblongMinAperture  float64 = 1.0
	OblongLengthFactor float64 = 3.0

	// trace segments
	MinSegmentLength float64 = 0.01
	TraceMinAperture float64 = 0.1
	TraceMaxAperture float64 = 3.0
)

type GerberData struct {
	Traces     []TracePath
	Flashes    []Flash
	OblongPads []OblongPad
}

// Parse never fails, unrecognized lines are skipped
func Parse(text string) *GerberData {
	return parseLines(stor.FromText(text))
}

func parseLines(gerberStrings stor.Supplier) *GerberData {
	state := NewState()
	for {
		s := gerberStrings.String()
		if len(s) == 0 {
			break
		}
		for _, gc := range gerberlexer.Lex(s) {
			state.Process(&gc)
		}
	}
	retVal := state.Finish()
	glog.V(2).Infof("gerber: %d lines, %d trace paths, %d flashes, %d oblong pads, %d blocks skipped",
		gerberStrings.Len(), len(retVal.Traces), len(retVal.Flashes), len(retVal.OblongPads), state.Skipped())
	return retVal
}

// ClassifyOblong checks whether the draw from -> to with the aperture
// of apSize is a short wide stroke which is really a pad
func ClassifyOblong(from, to xy.XY, apSize float64) (OblongPad, bool) {
	length := from.Dist(to)
	if !(length > OblongMinLength && length < OblongMaxLength &&
		apSize >= OblongMinAperture && length < apSize*OblongLengthFactor) {
		return OblongPad{}, false
	}
	center := from.Midpoint(to)
	retVal := OblongPad{X: center.X, Y: center.Y}
	if math.Abs(to.Y-from.Y) > math.Abs(to.X-from.X) {
		// vertical
		retVal.Width = apSize
		retVal.Height = length + apSize
	} else {
		retVal.Width = length + apSize
		retVal.Height = apSize
	}
	return retVal, true
}
