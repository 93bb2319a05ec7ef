// Excellon-style drill file parser
package drillparser

import (
	"strconv"
	"strings"

	"github.com/golang/glog"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
	stor "github.com/VasiliyTurchenko/gerber2gcode/strings_storage"
)

// holes above the limit are mounting holes, not component vias
const MaxHoleDiameter float64 = 2.5

type DrillCommandId byte

const (
	UNIT DrillCommandId = iota
	TOOLDEF
	TOOLSEL
	COORD
	// must be last
	NOP
)

func (id DrillCommandId) String() string {
	switch id {
	case UNIT:
		return "UNIT"
	case TOOLDEF:
		return "TOOLDEF"
	case TOOLSEL:
		return "TOOLSEL"
	case COORD:
		return "COORD"
	}
	return "NOP"
}

type DrillCommand struct {
	Cmd DrillCommandId
	// UNIT
	Scale float64
	// TOOLDEF, TOOLSEL
	Tool int
	// TOOLDEF, raw value in file units
	Diameter float64
	// COORD, raw integers
	X int64
	Y int64
}

// Tokenize turns one line into commands. A line may carry several of them,
// the order is unit, tool definition, tool select, coordinates.
func Tokenize(line string) []DrillCommand {
	retVal := make([]DrillCommand, 0)
	tokens, err := lexLine(line)
	if err != nil {
		glog.V(3).Infof("drill: can not lex %q: %v", line, err)
		return retVal
	}

	var metric, inch bool
	var toolDef, coord *DrillCommand
	for _, tok := range tokens {
		switch tok.Type {
		case tokMetric:
			metric = true
		case tokInch:
			inch = true
		case tokToolDef:
			if toolDef == nil {
				toolDef = parseToolDef(tok.Value)
			}
		case tokCoord:
			if coord == nil {
				coord = parseCoord(tok.Value)
			}
		}
	}
	// METRIC wins when both are present
	if metric {
		retVal = append(retVal, DrillCommand{Cmd: UNIT, Scale: 1.0})
	} else if inch {
		retVal = append(retVal, DrillCommand{Cmd: UNIT, Scale: InchesToMM})
	}
	if toolDef != nil {
		retVal = append(retVal, *toolDef)
	}
	if len(tokens) == 1 && tokens[0].Type == tokTool {
		if tool, err := strconv.Atoi(tokens[0].Value[1:]); err == nil {
			retVal = append(retVal, DrillCommand{Cmd: TOOLSEL, Tool: tool})
		}
	}
	if coord != nil {
		retVal = append(retVal, *coord)
	}
	return retVal
}

// T<id>C<diameter>
func parseToolDef(s string) *DrillCommand {
	cpos := strings.IndexByte(s, 'C')
	tool, err := strconv.Atoi(s[1:cpos])
	if err != nil {
		return nil
	}
	dia, err := strconv.ParseFloat(s[cpos+1:], 64)
	if err != nil {
		return nil
	}
	return &DrillCommand{Cmd: TOOLDEF, Tool: tool, Diameter: dia}
}

// X<int>Y<int>
func parseCoord(s string) *DrillCommand {
	ypos := strings.IndexByte(s, 'Y')
	x, err := strconv.ParseInt(s[1:ypos], 10, 64)
	if err != nil {
		return nil
	}
	y, err := strconv.ParseInt(s[ypos+1:], 10, 64)
	if err != nil {
		return nil
	}
	return &DrillCommand{Cmd: COORD, X: x, Y: y}
}

/*
	Parser state
*/
type State struct {
	Scale        float64
	Tools        map[int]float64 // tool -> diameter, mm
	CurrentTool  int
	ToolSelected bool
	holes        []Hole
	skipped      int
}

func NewState() *State {
	retVal := new(State)
	retVal.Scale = 1.0
	retVal.Tools = make(map[int]float64)
	retVal.holes = make([]Hole, 0)
	return retVal
}

func (st *State) Process(dc *DrillCommand) {
	switch dc.Cmd {
	case UNIT:
		st.Scale = dc.Scale
	case TOOLDEF:
		st.Tools[dc.Tool] = dc.Diameter * st.Scale
		if dc.Diameter <= 0 {
			glog.V(3).Infof("drill: tool T%d has no diameter, its hits are skipped", dc.Tool)
		}
	case TOOLSEL:
		st.CurrentTool = dc.Tool
		st.ToolSelected = true
	case COORD:
		if st.ToolSelected == false {
			st.skipped++
			return
		}
		dia, ok := st.Tools[st.CurrentTool]
		if !ok || dia <= 0 || dia > MaxHoleDiameter {
			st.skipped++
			return
		}
		st.holes = append(st.holes, Hole{
			X:        float64(dc.X) / DrillCoordDivisor,
			Y:        float64(dc.Y) / DrillCoordDivisor,
			Diameter: dia,
		})
	}
}

func (st *State) Holes() []Hole {
	return st.holes
}

// Parse returns the holes of the drill file. Empty input is
// a board without drill file, not an error.
func Parse(text string) []Hole {
	return parseLines(stor.FromText(text))
}

func parseLines(drillStrings stor.Supplier) []Hole {
	state := NewState()
	for {
		s := drillStrings.String()
		if len(s) == 0 {
			break
		}
		cmds := Tokenize(s)
		if len(cmds) == 0 {
			glog.V(3).Infoln("drill: skipping", s)
		}
		for _, dc := range cmds {
			state.Process(&dc)
		}
	}
	glog.V(2).Infof("drill: %d lines, %d tools, %d holes, %d hits skipped",
		drillStrings.Len(), len(state.Tools), len(state.holes), state.skipped)
	return state.Holes()
}
