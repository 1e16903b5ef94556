package config

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// actionLexer defines the lexical structure of keymap entries. An entry is
// either a bare keycode name or a layer/modifier action with arguments, for
// example "A", "MO(1)" or "LT(2, Space)".
var actionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
})

var actionParser = participle.MustBuild[keyAction](
	participle.Lexer(actionLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// keyAction is the parsed form of one keymap entry.
type keyAction struct {
	Call *actionCall `parser:"  @@"`
	Key  string      `parser:"| @Ident"`
}

// actionCall is a parameterized action such as MO(1) or WM(A, LShift).
type actionCall struct {
	Name string       `parser:"@Ident LParen"`
	Args []*actionArg `parser:"@@ ( Comma @@ )* RParen"`
}

// actionArg is one action argument, a layer number or a key name.
type actionArg struct {
	Layer *int   `parser:"  @Integer"`
	Key   string `parser:"| @Ident"`
}

// actionSpec describes the argument shape of a parameterized action.
type actionSpec struct {
	args     int
	layerArg int // argument index holding a layer number, -1 when none
}

// actionSpecs enumerates the supported parameterized actions. Bare keycode
// names are not checked against a list here; an unknown keycode fails later
// when the generated firmware is compiled.
var actionSpecs = map[string]actionSpec{
	"MO":  {args: 1, layerArg: 0},
	"TO":  {args: 1, layerArg: 0},
	"TG":  {args: 1, layerArg: 0},
	"TT":  {args: 1, layerArg: 0},
	"DF":  {args: 1, layerArg: 0},
	"OSL": {args: 1, layerArg: 0},
	"OSM": {args: 1, layerArg: -1},
	"LM":  {args: 2, layerArg: 0},
	"LT":  {args: 2, layerArg: 0},
	"WM":  {args: 2, layerArg: -1},
}

// validateAction checks one keymap entry. Layer references must stay below
// layers when it is known; zero means the layer count is not declared.
func validateAction(action string, layers int) error {
	parsed, err := actionParser.ParseString("", action)
	if err != nil {
		return fmt.Errorf("not a valid key action: %w", err)
	}
	if parsed.Call == nil {
		return nil
	}

	call := parsed.Call
	spec, ok := actionSpecs[call.Name]
	if !ok {
		return fmt.Errorf("unknown action %q", call.Name)
	}
	if len(call.Args) != spec.args {
		return fmt.Errorf("%s takes %d argument(s), got %d", call.Name, spec.args, len(call.Args))
	}

	for i, arg := range call.Args {
		if i == spec.layerArg {
			if arg.Layer == nil {
				return fmt.Errorf("%s argument %d must be a layer number", call.Name, i+1)
			}
			if layers > 0 && *arg.Layer >= layers {
				return fmt.Errorf("layer %d out of range, keymap has %d layers", *arg.Layer, layers)
			}
		} else if arg.Key == "" {
			return fmt.Errorf("%s argument %d must be a key name", call.Name, i+1)
		}
	}
	return nil
}

// validateLayout checks the layout section: keymap dimensions against the
// declared layout size, layout size against the unibody matrix, and every
// key action.
func validateLayout(cfg *KeyboardConfig) error {
	lay := cfg.Layout
	if lay == nil {
		return nil
	}

	layers := int(lay.Layers)
	if layers > 0 && len(lay.Keymap) > 0 && len(lay.Keymap) != layers {
		return &LayoutError{Reason: fmt.Sprintf(
			"keymap has %d layers, layout declares %d", len(lay.Keymap), layers)}
	}
	if layers == 0 {
		layers = len(lay.Keymap)
	}

	if m := cfg.Matrix; m != nil {
		if m.Rows > 0 && lay.Rows > 0 && m.Rows != lay.Rows {
			return &LayoutError{Reason: fmt.Sprintf(
				"layout has %d rows, matrix has %d", lay.Rows, m.Rows)}
		}
		if m.Cols > 0 && lay.Cols > 0 && m.Cols != lay.Cols {
			return &LayoutError{Reason: fmt.Sprintf(
				"layout has %d cols, matrix has %d", lay.Cols, m.Cols)}
		}
	}

	for l, layer := range lay.Keymap {
		if lay.Rows > 0 && len(layer) != int(lay.Rows) {
			return &LayoutError{Reason: fmt.Sprintf(
				"layer %d has %d rows, layout declares %d", l, len(layer), lay.Rows)}
		}
		for r, row := range layer {
			if lay.Cols > 0 && len(row) != int(lay.Cols) {
				return &LayoutError{Reason: fmt.Sprintf(
					"layer %d row %d has %d keys, layout declares %d", l, r, len(row), lay.Cols)}
			}
			for c, action := range row {
				if err := validateAction(action, layers); err != nil {
					return &KeymapError{Layer: l, Row: r, Col: c, Action: action, Err: err}
				}
			}
		}
	}
	return nil
}
