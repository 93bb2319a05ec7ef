package gerberlexer

import (
	"strconv"
	"strings"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
)

/*
The subset of the Gerber format understood by the converter.

MO   Mode. Sets the unit to inch or mm. %MOMM*% %MOIN*%
G70  Historic: set the unit to inch.
G71  Historic: set the unit to mm.
AD   Aperture define. %ADD<code><C|R|P|O|M>,<params>*%
Dnn  (nn>=10) Sets the current aperture to D code nn. An optional G54
     prefix has no effect.
D01  Draw from the current point to X,Y with the current aperture.
D02  Move the current point to X,Y.
D03  Flash the current aperture at X,Y.

Everything else is NOP and is skipped by the parser.
*/

type GerberCommandId byte

const (
	MO GerberCommandId = iota
	AD
	D
	D01
	D02
	D03
	// must be last
	NOP
)

func (id GerberCommandId) String() string {
	switch id {
	case MO:
		return "MO"
	case AD:
		return "AD"
	case D:
		return "D"
	case D01:
		return "D01"
	case D02:
		return "D02"
	case D03:
		return "D03"
	}
	return "NOP"
}

// IsCoordinate reports D01, D02 and D03
func (id GerberCommandId) IsCoordinate() bool {
	return id == D01 || id == D02 || id == D03
}

// Opcode maps a coordinate command to the operation
func (id GerberCommandId) Opcode() ActType {
	switch id {
	case D01:
		return OpcodeD01_DRAW
	case D02:
		return OpcodeD02_MOVE
	case D03:
		return OpcodeD03_FLASH
	}
	return 0
}

type GerberCommand struct {
	Cmd       GerberCommandId
	CmdString string
	// MO
	Scale float64
	// AD and D
	Code int
	// AD
	ApType GerberApType
	Params []float64
	// D01, D02, D03; raw integers as written in the file
	X int64
	Y int64
}

func (gc *GerberCommand) String() string {
	return "{command:\"" + gc.Cmd.String() + "\",val:\"" + gc.CmdString + "\"}"
}

type Delim byte

const (
	DataBlockTrailer Delim = '*'
	ExtCmdDelimiter  Delim = '%'
)

// SplitBlocks splits concatenated data blocks AAAAAD01*BBBBBBD02*D10*
// Every %...% group is one block, %MOMM*%%ADD10C,0.2*% gives two.
// Comments and unterminated extended commands are never split.
func SplitBlocks(rawString string) []string {
	retVal := make([]string, 0)
	rawString = strings.TrimSpace(rawString)
	if strings.HasPrefix(rawString, "G04") {
		return append(retVal, rawString)
	}
	for len(rawString) > 0 {
		if rawString[0] == byte(ExtCmdDelimiter) {
			end := strings.IndexByte(rawString[1:], byte(ExtCmdDelimiter))
			if end == -1 {
				return append(retVal, rawString)
			}
			retVal = append(retVal, rawString[:end+2])
			rawString = strings.TrimSpace(rawString[end+2:])
			continue
		}
		data := rawString
		if next := strings.IndexByte(rawString, byte(ExtCmdDelimiter)); next != -1 {
			data = rawString[:next]
		}
		for _, block := range strings.SplitAfter(data, string(DataBlockTrailer)) {
			block = strings.TrimSpace(block)
			if len(block) > 0 {
				retVal = append(retVal, block)
			}
		}
		rawString = rawString[len(data):]
	}
	return retVal
}

// Tokenize classifies one data block. It never fails: unknown
// or malformed blocks become NOP.
func Tokenize(block string) GerberCommand {
	retVal := GerberCommand{Cmd: NOP, CmdString: block}

	switch {
	case strings.Contains(block, GerberMOMM) || block == GerberG71:
		retVal.Cmd = MO
		retVal.Scale = 1.0
		return retVal
	case strings.Contains(block, GerberMOIN) || block == GerberG70:
		retVal.Cmd = MO
		retVal.Scale = InchesToMM
		return retVal
	}

	if pos := strings.Index(block, GerberApertureDef); pos != -1 {
		if parseApertureDef(block[pos+len(GerberApertureDef):], &retVal) {
			retVal.Cmd = AD
		}
		return retVal
	}

	if code, ok := parseApertureSelect(block); ok {
		retVal.Cmd = D
		retVal.Code = code
		return retVal
	}

	if cmd, x, y, ok := parseCoordinate(block); ok {
		retVal.Cmd = cmd
		retVal.X = x
		retVal.Y = y
	}
	return retVal
}

// Lex splits and tokenizes one input line
func Lex(line string) []GerberCommand {
	blocks := SplitBlocks(line)
	retVal := make([]GerberCommand, len(blocks))
	for i := range blocks {
		retVal[i] = Tokenize(blocks[i])
	}
	return retVal
}

// body is everything after %ADD: <code><letter><,|)><params>*%
func parseApertureDef(body string, gc *GerberCommand) bool {
	n := leadingDigits(body)
	if n == 0 || n+1 >= len(body) {
		return false
	}
	code, err := strconv.Atoi(body[:n])
	if err != nil {
		return false
	}
	apType, ok := ApTypeFromLetter(body[n])
	if !ok {
		return false
	}
	if body[n+1] != ',' && body[n+1] != ')' {
		return false
	}
	params := body[n+2:]
	end := strings.IndexByte(params, byte(DataBlockTrailer))
	if end <= 0 || !strings.HasPrefix(params[end:], "*%") {
		return false
	}
	params = params[:end]

	gc.Code = code
	gc.ApType = apType
	gc.Params = make([]float64, 0)
	for _, s := range strings.FieldsFunc(params, func(r rune) bool { return r == 'X' || r == ',' }) {
		if val, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			gc.Params = append(gc.Params, val)
		}
	}
	return true
}

// D<code>* or G54D<code>*, code >= 10
func parseApertureSelect(block string) (int, bool) {
	block = strings.TrimPrefix(block, GerberG54)
	if len(block) < 3 || block[0] != 'D' || !strings.HasSuffix(block, string(DataBlockTrailer)) {
		return 0, false
	}
	digits := block[1 : len(block)-1]
	if leadingDigits(digits) != len(digits) {
		return 0, false
	}
	code, err := strconv.Atoi(digits)
	if err != nil || code < 10 {
		return 0, false
	}
	return code, true
}

// ...X<int>Y<int>D0<1|2|3>*
func parseCoordinate(block string) (GerberCommandId, int64, int64, bool) {
	var cmd GerberCommandId
	switch {
	case strings.HasSuffix(block, "D01*"):
		cmd = D01
	case strings.HasSuffix(block, "D02*"):
		cmd = D02
	case strings.HasSuffix(block, "D03*"):
		cmd = D03
	default:
		return NOP, 0, 0, false
	}
	body := block[:len(block)-4]

	y, body, ok := trailingInt(body, 'Y')
	if !ok {
		return NOP, 0, 0, false
	}
	x, _, ok := trailingInt(body, 'X')
	if !ok {
		return NOP, 0, 0, false
	}
	return cmd, x, y, true
}

// trailingInt reads <letter>[-]<digits> from the end of s
func trailingInt(s string, letter byte) (int64, string, bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0, s, false
	}
	start := i
	if start > 0 && s[start-1] == '-' {
		start--
	}
	if start == 0 || s[start-1] != letter {
		return 0, s, false
	}
	val, err := strconv.ParseInt(s[start:], 10, 64)
	if err != nil {
		return 0, s, false
	}
	return val, s[:start-1], true
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
