package drillparser

import (
	"github.com/alecthomas/participle/v2/lexer"

	. "github.com/VasiliyTurchenko/gerber2gcode/gerberbasetypes"
)

// DrillLexer splits one line of an Excellon-style drill file into tokens.
// Rules are tried in order, Other swallows everything the converter does
// not care about so lexing a line never fails.
var DrillLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// units
	{Name: "Metric", Pattern: DrillMetric},
	{Name: "Inch", Pattern: DrillInch},

	// T01C0.800 defines a tool, a bare T01 selects it
	{Name: "ToolDef", Pattern: `T\d+C[\d.]+`},
	{Name: "Tool", Pattern: `T\d+`},

	// X012345Y067890, thousandths of a millimeter
	{Name: "Coord", Pattern: `X-?\d+Y-?\d+`},

	{Name: "Other", Pattern: `.`},
})

var drillSymbols = DrillLexer.Symbols()

var (
	tokWhitespace = drillSymbols["Whitespace"]
	tokMetric     = drillSymbols["Metric"]
	tokInch       = drillSymbols["Inch"]
	tokToolDef    = drillSymbols["ToolDef"]
	tokTool       = drillSymbols["Tool"]
	tokCoord      = drillSymbols["Coord"]
)

// lexLine returns the tokens of the line without whitespace and EOF
func lexLine(line string) ([]lexer.Token, error) {
	lex, err := DrillLexer.LexString("", line)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	retVal := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.EOF() || tok.Type == tokWhitespace {
			continue
		}
		retVal = append(retVal, tok)
	}
	return retVal, nil
}
