package ast

import (
	"bytes"
	"math/big"
	"strconv"
	"strings"

	"github.com/NickTomlin/boa/token"
)

// Int is an expression node that holds an integer literal. The engine's
// integer fast path is a signed 32-bit value; integer spellings that
// overflow it are represented as Float nodes instead.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g. "42", "0x2a")
	Value    int32          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text
	Value    float64        // the parsed value
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Float) String() string { return x.Literal }

// BigInt is an expression node that holds an arbitrary precision integer
// literal, spelled with the trailing "n" suffix.
type BigInt struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text including the suffix
	Value    *big.Int       // the parsed value
}

func (x *BigInt) exprNode() {}

func (x *BigInt) Pos() token.Position { return x.ValuePos }
func (x *BigInt) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *BigInt) String() string { return x.Literal }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position {
	if x.Value {
		return x.ValuePos.Advance(4)
	}
	return x.ValuePos.Advance(5)
}

func (x *Bool) String() string {
	if x.Value {
		return "true"
	}
	return "false"
}

// Null is an expression node that holds a null literal.
type Null struct {
	NullPos token.Position // position of "null" keyword
}

func (x *Null) exprNode() {}

func (x *Null) Pos() token.Position { return x.NullPos }
func (x *Null) End() token.Position { return x.NullPos.Advance(4) } // len("null")

func (x *Null) String() string { return "null" }

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of the opening quote
	Raw      string         // the raw literal including quotes
	Value    string         // the cooked string value
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.ValuePos.Advance(len(x.Raw)) }

func (x *String) String() string { return strconv.Quote(x.Value) }

// Template is an expression node that holds a template literal with zero
// or more interpolated expressions. A template with n expressions has n+1
// cooked text chunks; Cooked[i] precedes Exprs[i].
type Template struct {
	Backtick token.Position // position of the opening backtick
	Raw      string         // raw inner text, escapes and ${...} intact
	Cooked   []string       // text chunks between interpolations
	Exprs    []Expr         // interpolated expressions
}

func (x *Template) exprNode() {}

func (x *Template) Pos() token.Position { return x.Backtick }
func (x *Template) End() token.Position { return x.Backtick.Advance(len(x.Raw) + 2) }

func (x *Template) String() string {
	var out bytes.Buffer
	out.WriteString("`")
	out.WriteString(x.Raw)
	out.WriteString("`")
	return out.String()
}

// Array is an expression node that holds an array literal.
type Array struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // array elements; may include Spread
	Rbrack token.Position // position of "]"
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbrack }
func (x *Array) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Array) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// ObjectItem is a single property in an object literal, or a spread entry
// when Key is nil.
type ObjectItem struct {
	Key      Expr // Ident, String, Int or computed expression; nil for spread
	Value    Expr
	Computed bool // true for a [expr]: value key
}

// Object is an expression node that holds an object literal.
type Object struct {
	Lbrace token.Position // position of "{"
	Items  []ObjectItem
	Rbrace token.Position // position of "}"
}

func (x *Object) exprNode() {}

func (x *Object) Pos() token.Position { return x.Lbrace }
func (x *Object) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Object) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, item := range x.Items {
		if i > 0 {
			out.WriteString(", ")
		}
		switch {
		case item.Key == nil:
			out.WriteString(item.Value.String())
		case item.Computed:
			out.WriteString("[" + item.Key.String() + "]: " + item.Value.String())
		default:
			out.WriteString(item.Key.String() + ": " + item.Value.String())
		}
	}
	out.WriteString("}")
	return out.String()
}
