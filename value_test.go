package main

import (
	"testing"
)

func TestApplyOpArithmetic(t *testing.T) {

	tests := []struct {
		name string
		op   int
		a, b value
		want value
	}{
		{"int add", PLUS, intVal(2), intVal(3), intVal(5)},
		{"mixed add", PLUS, intVal(2), floatVal(0.5), floatVal(2.5)},
		{"concat", PLUS, strVal("foo"), strVal("bar"), strVal("foobar")},
		{"concat num", PLUS, strVal("n="), intVal(2), strVal("n=2")},
		{"int sub", MINUS, intVal(2), intVal(5), intVal(-3)},
		{"int mul", STAR, intVal(7), intVal(6), intVal(42)},
		{"div", SLASH, intVal(10), intVal(4), floatVal(2.5)},
		{"int div", BACKSLASH, intVal(7), intVal(2), intVal(3)},
		{"int div neg", BACKSLASH, intVal(-7), intVal(2), intVal(-3)},
		{"float int div", BACKSLASH, floatVal(7.9), intVal(2), floatVal(3)},
		{"int mod", MOD, intVal(7), intVal(4), intVal(3)},
		{"float mod", MOD, floatVal(7.5), intVal(2), floatVal(1.5)},
		{"pow", CARET, intVal(2), intVal(10), floatVal(1024)},
		{"and", AND, intVal(1), intVal(2), intVal(1)},
		{"and false", AND, intVal(1), intVal(0), intVal(0)},
		{"and str zero", AND, strVal("0"), intVal(1), intVal(0)},
		{"or", OR, intVal(0), intVal(5), intVal(1)},
		{"or str", OR, strVal("abc"), intVal(0), intVal(0)},
	}

	for _, tc := range tests {
		got, err := applyOp(tc.op, tc.a, tc.b)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestApplyOpOverflow(t *testing.T) {

	tests := []struct {
		name string
		op   int
		a, b value
	}{
		{"add", PLUS, intVal(32767), intVal(1)},
		{"sub", MINUS, intVal(-32768), intVal(1)},
		{"mul", STAR, intVal(256), intVal(256)},
		{"int div", BACKSLASH, intVal(-32768), intVal(-1)},
	}

	for _, tc := range tests {
		_, err := applyOp(tc.op, tc.a, tc.b)
		if err == nil {
			t.Errorf("%s: no overflow", tc.name)
			continue
		}
		if be, ok := err.(*basicError); !ok || be.msg != EOVERFLOW {
			t.Errorf("%s: error = %v, want Overflow", tc.name, err)
		}
	}
}

func TestApplyOpDivisionByZero(t *testing.T) {

	for _, op := range []int{SLASH, BACKSLASH, MOD} {
		_, err := applyOp(op, intVal(1), intVal(0))
		if err == nil {
			t.Errorf("op %d: no error dividing by zero", op)
			continue
		}
		if be, ok := err.(*basicError); !ok || be.msg != EDIVZERO {
			t.Errorf("op %d: error = %v, want Division by zero", op, err)
		}
	}
}

func TestApplyOpComparisons(t *testing.T) {

	tests := []struct {
		name string
		op   int
		a, b value
		want int16
	}{
		{"lt", LT, intVal(1), intVal(2), 1},
		{"lt false", LT, intVal(2), intVal(1), 0},
		{"eq", EQ, intVal(3), floatVal(3), 1},
		{"ne", NE, intVal(3), intVal(4), 1},
		{"ge", GE, intVal(3), intVal(3), 1},
		{"str lt", LT, strVal("abc"), strVal("abd"), 1},
		{"str eq", EQ, strVal("x"), strVal("x"), 1},

		// mixed comparisons are numeric, via the leading prefix

		{"mixed", EQ, strVal("12x"), intVal(12), 1},
	}

	for _, tc := range tests {
		got, err := applyOp(tc.op, tc.a, tc.b)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got.kind != kindInt || got.i != tc.want {
			t.Errorf("%s: got %+v, want %d", tc.name, got, tc.want)
		}
	}
}

func TestNegateValue(t *testing.T) {

	if v, err := negateValue(intVal(5)); err != nil || v != intVal(-5) {
		t.Errorf("-5: got %+v, %v", v, err)
	}

	if v, err := negateValue(floatVal(2.5)); err != nil || v != floatVal(-2.5) {
		t.Errorf("-2.5: got %+v, %v", v, err)
	}

	if _, err := negateValue(intVal(-32768)); err == nil {
		t.Error("negating -32768 did not overflow")
	}
}

func TestCoerceTo(t *testing.T) {

	tests := []struct {
		name string
		v    value
		kind varKind
		want value
	}{
		{"float to int", floatVal(3.7), kindInt, intVal(3)},
		{"neg float to int", floatVal(-3.7), kindInt, intVal(-3)},
		{"int to float", intVal(7), kindFloat, floatVal(7)},
		{"int to string", intVal(7), kindString, strVal("7")},
		{"float to string", floatVal(2.5), kindString, strVal("2.5")},
		{"string to float", strVal("1.5"), kindFloat, floatVal(1.5)},
	}

	for _, tc := range tests {
		got, err := coerceTo(tc.v, tc.kind)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.name, got, tc.want)
		}
	}

	if _, err := coerceTo(floatVal(40000), kindInt); err == nil {
		t.Error("coercing 40000 to integer did not overflow")
	}
}

func TestParseLeadingNumber(t *testing.T) {

	tests := []struct {
		src  string
		want float64
	}{
		{"12", 12},
		{"  -3.5xyz", -3.5},
		{"+7", 7},
		{"1e2z", 100},
		{"2e", 2}, // malformed exponent is not consumed
		{".5", 0.5},
		{"", 0},
		{"abc", 0},
		{"-", 0},
	}

	for _, tc := range tests {
		if got := parseLeadingNumber(tc.src); got != tc.want {
			t.Errorf("parseLeadingNumber(%q) = %v, want %v",
				tc.src, got, tc.want)
		}
	}
}

func TestAsString(t *testing.T) {

	tests := []struct {
		v    value
		want string
	}{
		{intVal(42), "42"},
		{intVal(-7), "-7"},
		{floatVal(2.5), "2.5"},
		{floatVal(32768), "32768"},
		{strVal("x"), "x"},
	}

	for _, tc := range tests {
		if got := tc.v.asString(); got != tc.want {
			t.Errorf("asString(%+v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestTruthy(t *testing.T) {

	tests := []struct {
		v    value
		want bool
	}{
		{intVal(0), false},
		{intVal(-1), true},
		{floatVal(0.5), true},

		// strings are truthy by their numeric value, not emptiness

		{strVal(""), false},
		{strVal("0"), false},
		{strVal("abc"), false},
		{strVal("12x"), true},
	}

	for _, tc := range tests {
		if got := tc.v.truthy(); got != tc.want {
			t.Errorf("truthy(%+v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}
