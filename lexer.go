package main

import (
	"strconv"
	"strings"
)

//
// Token kinds.  The keyword block must stay contiguous, starting at
// firstKeyword: line normalization uses the range to decide what to
// upper-case
//

const (
	EOL = iota
	NUMBER
	STRING
	IDENT

	PLUS
	MINUS
	STAR
	SLASH
	BACKSLASH
	CARET
	LPAREN
	RPAREN
	COMMA
	SEMI
	COLON
	EQ
	NE
	LT
	LE
	GT
	GE

	PRINT
	LET
	INPUT
	IF
	THEN
	GOTO
	GOSUB
	RETURN
	FOR
	TO
	STEP
	NEXT
	END
	STOP
	REM
	DIM
	AND
	OR
	NOT
	MOD
	CLS
	LOCATE
	COLOR
	BEEP
	RANDOMIZE
	ON
	OFF
	INTERVAL
	DEFINT
	KEY
	TIME
	READ
	DATA
	RESTORE
	RUN
	LIST
	NEW
	CLEAR
	DELETE
	CONT
	SAVE
	LOAD
)

const firstKeyword = PRINT

var keywordMap = map[string]int{
	"PRINT":     PRINT,
	"LET":       LET,
	"INPUT":     INPUT,
	"IF":        IF,
	"THEN":      THEN,
	"GOTO":      GOTO,
	"GOSUB":     GOSUB,
	"RETURN":    RETURN,
	"FOR":       FOR,
	"TO":        TO,
	"STEP":      STEP,
	"NEXT":      NEXT,
	"END":       END,
	"STOP":      STOP,
	"REM":       REM,
	"DIM":       DIM,
	"AND":       AND,
	"OR":        OR,
	"NOT":       NOT,
	"MOD":       MOD,
	"CLS":       CLS,
	"LOCATE":    LOCATE,
	"COLOR":     COLOR,
	"BEEP":      BEEP,
	"RANDOMIZE": RANDOMIZE,
	"ON":        ON,
	"OFF":       OFF,
	"INTERVAL":  INTERVAL,
	"DEFINT":    DEFINT,
	"KEY":       KEY,
	"TIME":      TIME,
	"READ":      READ,
	"DATA":      DATA,
	"RESTORE":   RESTORE,
	"RUN":       RUN,
	"LIST":      LIST,
	"NEW":       NEW,
	"CLEAR":     CLEAR,
	"DELETE":    DELETE,
	"CONT":      CONT,
	"SAVE":      SAVE,
	"LOAD":      LOAD,
}

//
// A token carries its kind, the raw source text (string literals
// carry the unquoted content), the numeric value for NUMBER, and
// the half-open [start, end) byte offsets in the source slice.
// The offsets are what make mid-line checkpoints possible
//

type token struct {
	kind  int
	text  string
	num   value
	start int
	end   int
}

type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {

	return &lexer{src: src}
}

func isDigit(ch byte) bool {

	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {

	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch byte) bool {

	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '.'
}

//
// Produce the next token.  Lex errors are syntax errors
//

func (lx *lexer) next() (token, error) {

	for lx.pos < len(lx.src) &&
		(lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t') {
		lx.pos++
	}

	start := lx.pos

	if lx.pos >= len(lx.src) {
		return token{kind: EOL, start: start, end: start}, nil
	}

	ch := lx.src[lx.pos]

	switch {
	case isDigit(ch) || (ch == '.' && lx.pos+1 < len(lx.src) &&
		isDigit(lx.src[lx.pos+1])):
		return lx.lexNumber(start)

	case ch == '"':
		return lx.lexString(start)

	case isLetter(ch):
		return lx.lexIdent(start)
	}

	lx.pos++

	mkTok := func(kind int) (token, error) {
		return token{kind: kind, text: lx.src[start:lx.pos],
			start: start, end: lx.pos}, nil
	}

	switch ch {
	case '+':
		return mkTok(PLUS)
	case '-':
		return mkTok(MINUS)
	case '*':
		return mkTok(STAR)
	case '/':
		return mkTok(SLASH)
	case '\\':
		return mkTok(BACKSLASH)
	case '^':
		return mkTok(CARET)
	case '(':
		return mkTok(LPAREN)
	case ')':
		return mkTok(RPAREN)
	case ',':
		return mkTok(COMMA)
	case ';':
		return mkTok(SEMI)
	case ':':
		return mkTok(COLON)
	case '=':
		return mkTok(EQ)

	case '<':
		if lx.pos < len(lx.src) {
			switch lx.src[lx.pos] {
			case '>':
				lx.pos++
				return mkTok(NE)
			case '=':
				lx.pos++
				return mkTok(LE)
			}
		}
		return mkTok(LT)

	case '>':
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '=' {
			lx.pos++
			return mkTok(GE)
		}
		return mkTok(GT)
	}

	return token{}, syntaxErrorf("Unexpected character %q", string(ch))
}

//
// Numeric literals: digits, optional fraction, optional exponent.
// A literal with no '.' or exponent that fits in 16 bits lexes as
// an integer value; everything else is a double
//

func (lx *lexer) lexNumber(start int) (token, error) {

	sawDot := false
	sawExp := false

	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}

	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' {
		sawDot = true
		lx.pos++
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}

	if lx.pos < len(lx.src) &&
		(lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {

		//
		// Only take the 'e' if a well-formed exponent follows;
		// otherwise it starts an identifier (e.g. '2E' in '2END')
		//

		p := lx.pos + 1
		if p < len(lx.src) && (lx.src[p] == '+' || lx.src[p] == '-') {
			p++
		}
		if p < len(lx.src) && isDigit(lx.src[p]) {
			for p < len(lx.src) && isDigit(lx.src[p]) {
				p++
			}
			lx.pos = p
			sawExp = true
		}
	}

	text := lx.src[start:lx.pos]

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, syntaxErrorf("Bad number %q", text)
	}

	num := floatVal(f)
	if !sawDot && !sawExp && f >= -32768 && f <= 32767 {
		num = intVal(int16(f))
	}

	return token{kind: NUMBER, text: text, num: num,
		start: start, end: lx.pos}, nil
}

//
// String literals: doubled "" is a literal quote; an unterminated
// string ends at the end of the line
//

func (lx *lexer) lexString(start int) (token, error) {

	var out strings.Builder

	lx.pos++ // opening quote

	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if ch == '"' {
			if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '"' {
				out.WriteByte('"')
				lx.pos += 2
				continue
			}
			lx.pos++
			break
		}
		out.WriteByte(ch)
		lx.pos++
	}

	return token{kind: STRING, text: out.String(),
		start: start, end: lx.pos}, nil
}

//
// Identifiers and keywords.  Identifiers may end in '$' or '%';
// keywords are matched case-insensitively, and carry no suffix, so
// a suffixed name can never collide with one
//

func (lx *lexer) lexIdent(start int) (token, error) {

	for lx.pos < len(lx.src) && isIdentChar(lx.src[lx.pos]) {
		lx.pos++
	}

	if lx.pos < len(lx.src) &&
		(lx.src[lx.pos] == '$' || lx.src[lx.pos] == '%') {
		lx.pos++
	}

	text := lx.src[start:lx.pos]

	if kind, ok := keywordMap[strings.ToUpper(text)]; ok {
		return token{kind: kind, text: text,
			start: start, end: lx.pos}, nil
	}

	return token{kind: IDENT, text: text, start: start, end: lx.pos}, nil
}
