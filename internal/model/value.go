package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the raw answer union
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
)

// Value is a raw answer as the presentation layer delivered it: a string
// (radio value, free text), a number (matrix or binary score) or a bool
// (checkbox state before binary normalization). Unanswered questions have
// no Value at all; absence is tracked by the answer store, never by a zero
// Value.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
}

// StringValue wraps a raw string answer
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// NumberValue wraps a raw numeric answer
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// BoolValue wraps a raw checkbox state
func BoolValue(b bool) Value {
	return Value{Kind: ValueBool, Bool: b}
}

// Text is the canonical string form used for option matching. Numbers
// format without trailing zeros so 3 matches "3" and 2.5 matches "2.5".
func (v Value) Text() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Number coerces the value to a numeric score. A blank string coerces to 0,
// a non-numeric string does not coerce at all; both rules match how the
// source documents' consumers read these values.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Num, true
	case ValueBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
}

// MarshalJSON emits the value in its original wire shape
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Num)
	case ValueBool:
		return json.Marshal(v.Bool)
	default:
		return json.Marshal(v.Str)
	}
}

// UnmarshalJSON accepts a JSON number, string or bool
func (v *Value) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolValue(b)
		return nil
	}
	return fmt.Errorf("answer value must be a string, number or bool, got %s", string(data))
}
