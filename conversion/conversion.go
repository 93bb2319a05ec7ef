// Gerber + drill to pen plotter G-code conversion
package conversion

import (
	"errors"
	"strings"

	"github.com/golang/glog"

	"github.com/VasiliyTurchenko/gerber2gcode/configurator"
	"github.com/VasiliyTurchenko/gerber2gcode/drillparser"
	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/gerbparser"
	"github.com/VasiliyTurchenko/gerber2gcode/padmatcher"
	"github.com/VasiliyTurchenko/gerber2gcode/pathoptimizer"
	"github.com/VasiliyTurchenko/gerber2gcode/render"
)

var ErrEmptyInput = errors.New("gerber data is empty")

type ConversionResult struct {
	Gcode  string
	Traces []TraceSegment // plotting order
	Pads   []Pad          // plotting order
	Stats  render.Stats
}

type Converter struct {
	settings configurator.Settings
}

func NewConverter(settings configurator.Settings) *Converter {
	return &Converter{settings: settings}
}

// Convert with the default settings
func Convert(gerberText, drillText string) (*ConversionResult, error) {
	return NewConverter(configurator.DefaultSettings()).Convert(gerberText, drillText)
}

// Convert runs the whole pipeline. drillText may be empty, a blank gerberText
// is rejected with ErrEmptyInput.
func (c *Converter) Convert(gerberText, drillText string) (*ConversionResult, error) {
	if strings.TrimSpace(gerberText) == "" {
		return nil, ErrEmptyInput
	}

	gerberData := gerbparser.Parse(gerberText)
	holes := make([]Hole, 0)
	if strings.TrimSpace(drillText) != "" {
		holes = drillparser.Parse(drillText)
	}

	pads := padmatcher.Match(gerberData.Flashes, gerberData.OblongPads, holes)

	traces := pathoptimizer.OptimizeTraces(gerberData.Traces)
	pads = pathoptimizer.OptimizePads(pads, pathoptimizer.PadStart(traces))

	gcode, stats := render.Emit(traces, pads, c.settings)
	glog.V(2).Infof("converted: %d segments, %d pads, %d holes", len(traces), len(pads), len(holes))

	return &ConversionResult{
		Gcode:  gcode,
		Traces: traces,
		Pads:   pads,
		Stats:  stats,
	}, nil
}
