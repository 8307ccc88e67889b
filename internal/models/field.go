package models

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldKind is the JSON type of a raw product field.
type FieldKind int

const (
	Absent FieldKind = iota
	Null
	String
	Number
	Bool
	Object
	Array
)

func (k FieldKind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "absent"
	}
}

// Field holds one raw JSON value of a product record together with its kind.
// The zero value is an absent field.
type Field struct {
	kind FieldKind
	raw  json.RawMessage
}

// FieldOf classifies an already validated JSON value.
func FieldOf(raw json.RawMessage) Field {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Field{}
	}

	f := Field{raw: trimmed}
	switch trimmed[0] {
	case 'n':
		f.kind = Null
	case '"':
		f.kind = String
	case 't', 'f':
		f.kind = Bool
	case '{':
		f.kind = Object
	case '[':
		f.kind = Array
	default:
		f.kind = Number
	}
	return f
}

func (f Field) Kind() FieldKind {
	return f.kind
}

func (f Field) Present() bool {
	return f.kind != Absent
}

func (f Field) Raw() json.RawMessage {
	return f.raw
}

// Str returns the string value when the field is a JSON string.
func (f Field) Str() (string, bool) {
	if f.kind != String {
		return "", false
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// maxMagnitude bounds the decimal exponent of parsed numbers. A value whose
// magnitude lies outside 10^±maxMagnitude keeps its sign and saturates.
const maxMagnitude = 1000

// Num returns the exact value of a JSON number. Booleans are not numbers.
func (f Field) Num() (decimal.Decimal, bool) {
	if f.kind != Number {
		return decimal.Zero, false
	}

	lit, exp := string(f.raw), ""
	if i := strings.IndexAny(lit, "eE"); i >= 0 {
		lit, exp = lit[:i], lit[i+1:]
	}
	m, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, false
	}
	if m.IsZero() {
		return decimal.Zero, true
	}

	e := new(big.Int)
	if exp != "" {
		if _, ok := e.SetString(strings.TrimPrefix(exp, "+"), 10); !ok {
			return decimal.Zero, false
		}
	}

	// order of magnitude of m * 10^e
	mag := new(big.Int).Add(e, big.NewInt(int64(m.NumDigits())+int64(m.Exponent())))
	switch {
	case mag.Cmp(big.NewInt(maxMagnitude)) > 0:
		return decimal.New(int64(m.Sign()), maxMagnitude), true
	case mag.Cmp(big.NewInt(-maxMagnitude)) < 0:
		return decimal.New(int64(m.Sign()), -maxMagnitude), true
	}
	return m.Shift(int32(e.Int64())), true
}

// Obj returns the nested record when the field is a JSON object.
func (f Field) Obj() (Product, bool) {
	if f.kind != Object {
		return Product{}, false
	}
	p, err := ParseProduct(f.raw)
	if err != nil {
		return Product{}, false
	}
	return p, true
}

// String renders the value for humans: strings unquoted, everything else as
// compact JSON, and "<missing>" for absent fields.
func (f Field) String() string {
	switch f.kind {
	case Absent:
		return "<missing>"
	case String:
		if s, ok := f.Str(); ok {
			return s
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, f.raw); err != nil {
		return string(f.raw)
	}
	return buf.String()
}
