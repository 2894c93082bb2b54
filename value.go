package main

import (
	"math"
	"strconv"
	"strings"
)

//
// Variable/value types.  kindFloat is the default for unsuffixed
// names outside any DEFINT range
//

type varKind int

const (
	kindFloat varKind = iota
	kindInt
	kindString
)

//
// A tagged value: 16-bit integer, double or string
//

type value struct {
	kind varKind
	i    int16
	f    float64
	s    string
}

func intVal(i int16) value {

	return value{kind: kindInt, i: i}
}

func floatVal(f float64) value {

	return value{kind: kindFloat, f: f}
}

func strVal(s string) value {

	return value{kind: kindString, s: s}
}

func fromBool(b bool) value {

	if b {
		return intVal(1)
	}

	return intVal(0)
}

func (v value) isString() bool {

	return v.kind == kindString
}

//
// asNumber never fails: strings are coerced by parsing a leading
// numeric prefix, defaulting to 0
//

func (v value) asNumber() float64 {

	switch v.kind {
	case kindInt:
		return float64(v.i)

	case kindString:
		return parseLeadingNumber(v.s)
	}

	return v.f
}

func (v value) asInteger() (int16, error) {

	if v.kind == kindInt {
		return v.i, nil
	}

	return floatToInt16(v.asNumber())
}

//
// Doubles render via the default float formatting; integers as
// plain decimal
//

func (v value) asString() string {

	switch v.kind {
	case kindInt:
		return strconv.FormatInt(int64(v.i), 10)

	case kindString:
		return v.s
	}

	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

//
// Truth is numeric for every kind: strings coerce through their
// leading numeric prefix, so "0" and "abc" are both false
//

func (v value) truthy() bool {

	return v.asNumber() != 0
}

func floatToInt16(f float64) (int16, error) {

	if f < math.MinInt16 || f > math.MaxInt16 {
		return 0, runtimeErrorf(EOVERFLOW)
	}

	return int16(f), nil
}

//
// Coerce a value to a variable's declared type, as assignment and
// READ do.  Coercing to integer range-checks
//

func coerceTo(v value, kind varKind) (value, error) {

	switch kind {
	case kindString:
		return strVal(v.asString()), nil

	case kindInt:
		i, err := v.asInteger()
		if err != nil {
			return value{}, err
		}
		return intVal(i), nil
	}

	return floatVal(v.asNumber()), nil
}

//
// Parse a leading numeric prefix: optional whitespace and sign,
// digits, fraction, exponent.  Anything unparseable yields 0
//

func parseLeadingNumber(s string) float64 {

	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}

	digits := false
	for j < len(s) && isDigit(s[j]) {
		j++
		digits = true
	}

	if j < len(s) && s[j] == '.' {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
			digits = true
		}
	}

	if !digits {
		return 0
	}

	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}

	f, err := strconv.ParseFloat(s[i:j], 64)
	if err != nil {
		return 0
	}

	return f
}

//
// Checked 16-bit arithmetic.  Intermediate math is done in 32 bits,
// then range-checked, so the single overflowing cases (32767+1,
// -32768-1, -32768\-1, etc) all raise Overflow
//

func checkedInt16(n int32) (value, error) {

	if n < math.MinInt16 || n > math.MaxInt16 {
		return value{}, runtimeErrorf(EOVERFLOW)
	}

	return intVal(int16(n)), nil
}

func bothInt(a, b value) bool {

	return a.kind == kindInt && b.kind == kindInt
}

//
// Apply a binary operator.  '+' concatenates if either side is a
// string; the relational operators compare lexicographically if both
// sides are strings, numerically otherwise; everything else coerces
// strings through their leading numeric prefix
//

func applyOp(op int, a, b value) (value, error) {

	switch op {
	case PLUS:
		if a.isString() || b.isString() {
			return strVal(a.asString() + b.asString()), nil
		}
		if bothInt(a, b) {
			return checkedInt16(int32(a.i) + int32(b.i))
		}
		return floatVal(a.asNumber() + b.asNumber()), nil

	case MINUS:
		if bothInt(a, b) {
			return checkedInt16(int32(a.i) - int32(b.i))
		}
		return floatVal(a.asNumber() - b.asNumber()), nil

	case STAR:
		if bothInt(a, b) {
			return checkedInt16(int32(a.i) * int32(b.i))
		}
		return floatVal(a.asNumber() * b.asNumber()), nil

	case SLASH:
		d := b.asNumber()
		if d == 0 {
			return value{}, runtimeErrorf(EDIVZERO)
		}
		return floatVal(a.asNumber() / d), nil

	case BACKSLASH:
		if bothInt(a, b) {
			if b.i == 0 {
				return value{}, runtimeErrorf(EDIVZERO)
			}
			if a.i == math.MinInt16 && b.i == -1 {
				return value{}, runtimeErrorf(EOVERFLOW)
			}
			return intVal(a.i / b.i), nil
		}
		d := b.asNumber()
		if d == 0 {
			return value{}, runtimeErrorf(EDIVZERO)
		}
		return floatVal(math.Trunc(a.asNumber() / d)), nil

	case MOD:
		if bothInt(a, b) {
			if b.i == 0 {
				return value{}, runtimeErrorf(EDIVZERO)
			}
			return intVal(a.i % b.i), nil
		}
		d := b.asNumber()
		if d == 0 {
			return value{}, runtimeErrorf(EDIVZERO)
		}
		return floatVal(math.Mod(a.asNumber(), d)), nil

	case CARET:
		return floatVal(math.Pow(a.asNumber(), b.asNumber())), nil

	case AND:
		return fromBool(a.truthy() && b.truthy()), nil

	case OR:
		return fromBool(a.truthy() || b.truthy()), nil

	case EQ, NE, LT, LE, GT, GE:
		return compareValues(op, a, b), nil
	}

	return value{}, syntaxErrorf("Unknown operator")
}

func compareValues(op int, a, b value) value {

	var cmp int

	if a.isString() && b.isString() {
		cmp = strings.Compare(a.s, b.s)
	} else {
		an, bn := a.asNumber(), b.asNumber()
		switch {
		case an < bn:
			cmp = -1
		case an > bn:
			cmp = 1
		}
	}

	switch op {
	case EQ:
		return fromBool(cmp == 0)
	case NE:
		return fromBool(cmp != 0)
	case LT:
		return fromBool(cmp < 0)
	case LE:
		return fromBool(cmp <= 0)
	case GT:
		return fromBool(cmp > 0)
	}

	return fromBool(cmp >= 0)
}

//
// Unary operators.  Negating the minimum 16-bit integer overflows
//

func negateValue(v value) (value, error) {

	if v.kind == kindInt {
		if v.i == math.MinInt16 {
			return value{}, runtimeErrorf(EOVERFLOW)
		}
		return intVal(-v.i), nil
	}

	return floatVal(-v.asNumber()), nil
}

func notValue(v value) value {

	return fromBool(!v.truthy())
}
