package main

import (
	"math"
	"strings"
	"time"
)

//
// A statement/expression parser over one line of program text.
// 'base' is the absolute byte offset of the slice within the stored
// line, so checkpoints computed from token offsets stay exact even
// when execution resumed mid-line.  'line' is the program line
// number, or -1 in immediate mode
//

type exec struct {
	b    *basic
	lex  *lexer
	tok  token
	base int
	line int
}

func (b *basic) newExec(src string, base, line int) (*exec, error) {

	ex := &exec{b: b, lex: newLexer(src), base: base, line: line}

	return ex, ex.advance()
}

func (ex *exec) advance() error {

	tok, err := ex.lex.next()
	if err != nil {
		return err
	}

	ex.tok = tok

	return nil
}

func (ex *exec) expect(kind int, what string) error {

	if ex.tok.kind != kind {
		return syntaxErrorf("Expected %s", what)
	}

	return ex.advance()
}

//
// The exact resumable position of the current (lookahead) token
//

func (ex *exec) here() checkpoint {

	return checkpoint{line: ex.line, offset: ex.base + ex.tok.start}
}

//
// Force the rest of the line to be ignored (IF with a false
// condition, GOTO, REM)
//

func (ex *exec) skipRest() {

	end := len(ex.lex.src)
	ex.lex.pos = end
	ex.tok = token{kind: EOL, start: end, end: end}
}

//
// Precedence-climbing expression evaluator.  Precedences, low to
// high: OR < AND < relational < add/sub < mul/div/intdiv/mod <
// power (right-associative)
//

func precedence(kind int) int {

	switch kind {
	case OR:
		return 1
	case AND:
		return 2
	case EQ, NE, LT, LE, GT, GE:
		return 3
	case PLUS, MINUS:
		return 4
	case STAR, SLASH, BACKSLASH, MOD:
		return 5
	case CARET:
		return 6
	}

	return 0
}

func (ex *exec) evalExpr() (value, error) {

	lhs, err := ex.evalPrimary()
	if err != nil {
		return value{}, err
	}

	return ex.evalBinRHS(1, lhs)
}

func (ex *exec) evalBinRHS(minPrec int, lhs value) (value, error) {

	for {
		op := ex.tok.kind
		prec := precedence(op)

		if prec < minPrec {
			return lhs, nil
		}

		if err := ex.advance(); err != nil {
			return value{}, err
		}

		rhs, err := ex.evalPrimary()
		if err != nil {
			return value{}, err
		}

		//
		// Climb into anything binding tighter; power also climbs
		// at equal precedence (right-associative)
		//

		nextMin := prec + 1
		if op == CARET {
			nextMin = prec
		}

		if precedence(ex.tok.kind) >= nextMin {
			rhs, err = ex.evalBinRHS(nextMin, rhs)
			if err != nil {
				return value{}, err
			}
		}

		lhs, err = applyOp(op, lhs, rhs)
		if err != nil {
			return value{}, err
		}
	}
}

func (ex *exec) evalPrimary() (value, error) {

	switch ex.tok.kind {

	case NUMBER:
		v := ex.tok.num
		return v, ex.advance()

	case STRING:
		v := strVal(ex.tok.text)
		return v, ex.advance()

	case MINUS:
		if err := ex.advance(); err != nil {
			return value{}, err
		}
		v, err := ex.evalPrimary()
		if err != nil {
			return value{}, err
		}
		return negateValue(v)

	case NOT:
		if err := ex.advance(); err != nil {
			return value{}, err
		}
		v, err := ex.evalPrimary()
		if err != nil {
			return value{}, err
		}
		return notValue(v), nil

	case LPAREN:
		if err := ex.advance(); err != nil {
			return value{}, err
		}
		v, err := ex.evalExpr()
		if err != nil {
			return value{}, err
		}
		return v, ex.expect(RPAREN, "')'")

	case TIME:
		if err := ex.advance(); err != nil {
			return value{}, err
		}

		// parentheses are optional

		if ex.tok.kind == LPAREN {
			if err := ex.advance(); err != nil {
				return value{}, err
			}
			if err := ex.expect(RPAREN, "')'"); err != nil {
				return value{}, err
			}
		}
		return floatVal(secondsSinceMidnight()), nil

	case IDENT:
		return ex.evalIdent()
	}

	return value{}, syntaxErrorf("Expected expression")
}

//
// Built-in function names.  Dispatch is by upper-cased name; names
// not in the set are variables (or array references, if followed
// by a parenthesis)
//

var builtinFuncs = map[string]bool{
	"SIN": true, "COS": true, "TAN": true, "ATN": true,
	"LOG": true, "EXP": true, "SQR": true, "ABS": true,
	"INT": true, "SGN": true, "RND": true,
	"VAL": true, "STR$": true, "LEN": true, "ASC": true,
	"LEFT$": true, "RIGHT$": true, "MID$": true, "CHR$": true,
	"TAB": true,
}

func (ex *exec) evalIdent() (value, error) {

	name := ex.tok.text
	uname := strings.ToUpper(name)

	if err := ex.advance(); err != nil {
		return value{}, err
	}

	if builtinFuncs[uname] {
		var args []value

		if ex.tok.kind == LPAREN {
			if err := ex.advance(); err != nil {
				return value{}, err
			}
			for ex.tok.kind != RPAREN {
				arg, err := ex.evalExpr()
				if err != nil {
					return value{}, err
				}
				args = append(args, arg)
				if ex.tok.kind != COMMA {
					break
				}
				if err := ex.advance(); err != nil {
					return value{}, err
				}
			}
			if err := ex.expect(RPAREN, "')'"); err != nil {
				return value{}, err
			}
		}

		return ex.callBuiltin(uname, args)
	}

	if ex.tok.kind == LPAREN {
		idx, err := ex.parseSubscript()
		if err != nil {
			return value{}, err
		}
		return ex.b.env.getArrayElem(name, idx)
	}

	return ex.b.env.getVar(name), nil
}

//
// Parse a single '(expr)' subscript and convert to an int index
//

func (ex *exec) parseSubscript() (int, error) {

	if err := ex.expect(LPAREN, "'('"); err != nil {
		return 0, err
	}

	v, err := ex.evalExpr()
	if err != nil {
		return 0, err
	}

	if err := ex.expect(RPAREN, "')'"); err != nil {
		return 0, err
	}

	i, err := v.asInteger()
	if err != nil {
		return 0, err
	}

	return int(i), nil
}

//
// Positional argument helpers: missing optional arguments default
// to 0 / empty string
//

func argNum(args []value, i int) float64 {

	if i < len(args) {
		return args[i].asNumber()
	}

	return 0
}

func argStr(args []value, i int) string {

	if i < len(args) {
		return args[i].asString()
	}

	return ""
}

func (ex *exec) callBuiltin(name string, args []value) (value, error) {

	env := ex.b.env

	switch name {

	case "SIN":
		return floatVal(math.Sin(argNum(args, 0))), nil

	case "COS":
		return floatVal(math.Cos(argNum(args, 0))), nil

	case "TAN":
		return floatVal(math.Tan(argNum(args, 0))), nil

	case "ATN":
		return floatVal(math.Atan(argNum(args, 0))), nil

	case "LOG":
		x := argNum(args, 0)
		if x <= 0 {
			return value{}, runtimeErrorf(ELOGARG)
		}
		return floatVal(math.Log(x)), nil

	case "EXP":
		return floatVal(math.Exp(argNum(args, 0))), nil

	case "SQR":
		x := argNum(args, 0)
		if x < 0 {
			return value{}, runtimeErrorf(ESQRARG)
		}
		return floatVal(math.Sqrt(x)), nil

	case "ABS":
		return floatVal(math.Abs(argNum(args, 0))), nil

	case "INT":
		return floatVal(math.Floor(argNum(args, 0))), nil

	case "SGN":
		x := argNum(args, 0)
		switch {
		case x > 0:
			return intVal(1), nil
		case x < 0:
			return intVal(-1), nil
		}
		return intVal(0), nil

	case "RND":
		return floatVal(env.rnd(argNum(args, 0), len(args) > 0)), nil

	case "VAL":
		return floatVal(parseLeadingNumber(argStr(args, 0))), nil

	case "STR$":
		if len(args) == 0 {
			return strVal("0"), nil
		}
		return strVal(args[0].asString()), nil

	case "LEN":
		return intVal(int16(len(argStr(args, 0)))), nil

	case "ASC":
		s := argStr(args, 0)
		if s == "" {
			return intVal(0), nil
		}
		return intVal(int16(s[0])), nil

	case "CHR$":
		n, err := floatToInt16(argNum(args, 0))
		if err != nil {
			return value{}, err
		}
		// a single byte, never a UTF-8 encoding
		return strVal(string([]byte{byte(n)})), nil

	case "LEFT$":
		s := argStr(args, 0)
		n := clampStrIndex(argNum(args, 1), len(s))
		return strVal(s[:n]), nil

	case "RIGHT$":
		s := argStr(args, 0)
		n := clampStrIndex(argNum(args, 1), len(s))
		return strVal(s[len(s)-n:]), nil

	case "MID$":
		s := argStr(args, 0)
		start := int(argNum(args, 1))
		if start < 1 {
			start = 1
		}
		if start > len(s) {
			return strVal(""), nil
		}
		rest := s[start-1:]
		if len(args) >= 3 {
			n := clampStrIndex(argNum(args, 2), len(rest))
			rest = rest[:n]
		}
		return strVal(rest), nil

	case "TAB":

		//
		// Side effect: pad the output to 1-based column n.  The
		// value itself is the empty string, so PRINT emits nothing
		// further for it
		//

		ex.b.tabTo(int(argNum(args, 0)))
		return strVal(""), nil
	}

	return value{}, syntaxErrorf("Unknown function %q", name)
}

func clampStrIndex(f float64, max int) int {

	n := int(f)

	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}

	return n
}

func secondsSinceMidnight() float64 {

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(),
		0, 0, 0, 0, now.Location())

	return now.Sub(midnight).Seconds()
}
