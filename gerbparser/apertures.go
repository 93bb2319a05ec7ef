//
// functions related to parsing gerber files
// Apertures support
package gerbparser

import (
	"strconv"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerber2gcode/gerberlexer"
)

// DefaultApertureSize is used when a coordinate command refers to
// an aperture which was never defined
const DefaultApertureSize float64 = 0.5

// Aperture keeps a single size for every shape: the largest parameter
// of the definition. Shapes are not told apart.
type Aperture struct {
	Code         int
	SourceString string
	Type         GerberApType
	Size         float64
}

func (apert *Aperture) String() string {
	return "D" + strconv.Itoa(apert.Code) + " " + apert.Type.String() +
		" size " + strconv.FormatFloat(apert.Size, 'f', 4, 64) + "mm"
}

// NewAperture builds the aperture from an AD command, scale is mm per file unit
func NewAperture(gc *gerberlexer.GerberCommand, scale float64) *Aperture {
	retVal := new(Aperture)
	retVal.Code = gc.Code
	retVal.SourceString = gc.CmdString
	retVal.Type = gc.ApType
	var size float64
	for _, p := range gc.Params {
		if p > size {
			size = p
		}
	}
	retVal.Size = size * scale
	return retVal
}

type ApertureTable map[int]*Aperture

// SizeOf returns the aperture size in mm, DefaultApertureSize for unknown codes
func (at ApertureTable) SizeOf(code int) float64 {
	if apert, ok := at[code]; ok {
		return apert.Size
	}
	return DefaultApertureSize
}
