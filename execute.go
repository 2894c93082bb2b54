package main

import (
	"fmt"
	"strings"
	"time"
)

//
// Statement boundary bookkeeping.  Before every statement we record
// the exact checkpoint (so an error or break leaves CONT pointing at
// the interrupted statement), then sample the break flag and the
// interval timer.  Neither is ever sampled mid-expression
//

func (ex *exec) safePoint() (stmtResult, error) {

	env := ex.b.env

	if env.running {
		env.cur = ex.here()
	}

	if ex.b.interrupted.Swap(false) {
		return resStop, errBreak
	}

	//
	// The timer only fires while a program is running; a break is
	// honored in immediate mode too, so a loop typed at the prompt
	// can be interrupted
	//

	if !env.running {
		return resNext, nil
	}

	if env.intervalDue(time.Now()) {
		iv := &env.interval

		if !env.lineExists(iv.handler) {
			return resStop, runtimeErrorf(EUNDEFINEDLINE)
		}

		iv.inISR = true
		iv.nextFire = time.Now().Add(iv.period)

		env.gosubStack = append(env.gosubStack, gosubFrame{
			resume:    env.cur,
			interrupt: true,
			dataIndex: env.dataIndex,
		})

		env.cur = checkpoint{line: iv.handler}

		return resJump, nil
	}

	return resNext, nil
}

//
// Execute the ':'-separated statements of one line (or what is left
// of it, when resuming mid-line)
//

func (ex *exec) execLine() (stmtResult, error) {

	for {
		if res, err := ex.safePoint(); res != resNext || err != nil {
			return res, err
		}

		res, err := ex.execStatement()
		if res != resNext || err != nil {
			return res, err
		}

		switch ex.tok.kind {
		case EOL:
			return resNext, nil

		case COLON:
			if err := ex.advance(); err != nil {
				return resNext, err
			}

		default:
			return resNext, syntaxErrorf("Unexpected text after statement")
		}
	}
}

//
// The statement dispatcher: one case per statement kind, closed set
//

func (ex *exec) execStatement() (stmtResult, error) {

	ex.b.stats.numStatements++

	switch ex.tok.kind {

	case EOL, COLON:
		return resNext, nil

	case REM:
		ex.skipRest()
		return resNext, nil

	case LET:
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		return ex.execLet()

	case IDENT:
		return ex.execLet()

	case PRINT:
		return ex.execPrint()

	case INPUT:
		return ex.execInput()

	case IF:
		return ex.execIf()

	case GOTO:
		return ex.execGoto()

	case GOSUB:
		return ex.execGosub()

	case RETURN:
		return ex.execReturn()

	case FOR:
		return ex.execFor()

	case NEXT:
		return ex.execNext()

	case END:
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		return resStop, nil

	case STOP:

		//
		// STOP leaves the program resumable: CONT picks up just
		// past the STOP statement
		//

		if err := ex.advance(); err != nil {
			return resNext, err
		}
		if ex.b.env.running {
			ex.b.env.cur = ex.here()
		}
		return resStop, errBreak

	case DIM:
		return ex.execDim()

	case READ:
		return ex.execRead()

	case DATA:
		return ex.execData()

	case RESTORE:
		return ex.execRestore()

	case ON:
		return ex.execOnInterval()

	case INTERVAL:
		return ex.execIntervalCtrl()

	case DEFINT:
		return ex.execDefint()

	case CLS:
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		ex.b.scr.Cls()
		ex.b.col = 0
		return resNext, nil

	case LOCATE:
		return ex.execLocate()

	case COLOR:
		return ex.execColor()

	case BEEP:
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		ex.b.scr.Beep()
		return resNext, nil

	case RANDOMIZE:
		return ex.execRandomize()

	case CLEAR:
		return ex.execClear()

	case KEY:
		return ex.execKey()
	}

	return resNext, syntaxErrorf("Unknown statement")
}

//
// Assignment targets: a scalar variable or a subscripted array
// element
//

type target struct {
	name  string
	isArr bool
	idx   int
}

func (ex *exec) parseTarget() (target, error) {

	if ex.tok.kind != IDENT {
		return target{}, syntaxErrorf(EEXPECTEDVAR)
	}

	t := target{name: ex.tok.text}

	if err := ex.advance(); err != nil {
		return target{}, err
	}

	if ex.tok.kind == LPAREN {
		idx, err := ex.parseSubscript()
		if err != nil {
			return target{}, err
		}
		t.isArr = true
		t.idx = idx
	}

	return t, nil
}

func (ex *exec) assign(t target, v value) error {

	if t.isArr {
		return ex.b.env.setArrayElem(t.name, t.idx, v)
	}

	return ex.b.env.setVar(t.name, v)
}

func (env *environ) targetKind(t target) varKind {

	if t.isArr {
		if a := env.arrays[canonicalName(t.name)]; a != nil {
			return a.kind
		}
	}

	return env.kindOf(canonicalName(t.name))
}

func (ex *exec) execLet() (stmtResult, error) {

	t, err := ex.parseTarget()
	if err != nil {
		return resNext, err
	}

	if err := ex.expect(EQ, "'='"); err != nil {
		return resNext, err
	}

	v, err := ex.evalExpr()
	if err != nil {
		return resNext, err
	}

	return resNext, ex.assign(t, v)
}

//
// PRINT: ';' suppresses the column advance, ',' moves to the next
// 14-wide zone.  Numbers print with a trailing space; a newline is
// emitted only when the list does not end in a separator
//

func (ex *exec) execPrint() (stmtResult, error) {

	b := ex.b

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	lastSep := false

	for ex.tok.kind != EOL && ex.tok.kind != COLON {
		switch ex.tok.kind {

		case SEMI:
			lastSep = true
			if err := ex.advance(); err != nil {
				return resNext, err
			}

		case COMMA:
			lastSep = true
			b.nextZone()
			if err := ex.advance(); err != nil {
				return resNext, err
			}

		default:
			v, err := ex.evalExpr()
			if err != nil {
				return resNext, err
			}
			if v.isString() {
				b.printString(v.s)
			} else {
				b.printString(v.asString() + " ")
			}
			lastSep = false
		}
	}

	if !lastSep {
		b.newline()
	}

	return resNext, nil
}

//
// INPUT ["prompt";] var[, var...]: one user-entered line satisfies
// all the variables, split on commas
//

func (ex *exec) execInput() (stmtResult, error) {

	b := ex.b

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	prompt := inputPrompt

	if ex.tok.kind == STRING {
		prompt = ex.tok.text
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		if err := ex.expect(SEMI, "';'"); err != nil {
			return resNext, err
		}
	}

	var targets []target

	for {
		t, err := ex.parseTarget()
		if err != nil {
			return resNext, err
		}
		targets = append(targets, t)

		if ex.tok.kind != COMMA {
			break
		}
		if err := ex.advance(); err != nil {
			return resNext, err
		}
	}

	line, err := b.readInput(prompt)
	if err != nil {
		return resNext, err
	}

	fields := splitInputFields(line)

	for i, t := range targets {
		raw := ""
		if i < len(fields) {
			raw = fields[i]
		}

		var v value
		if b.env.targetKind(t) == kindString {
			v = strVal(raw)
		} else {
			v = floatVal(parseLeadingNumber(raw))
		}

		if err := ex.assign(t, v); err != nil {
			return resNext, err
		}
	}

	return resNext, nil
}

func splitInputFields(line string) []string {

	fields := strings.Split(line, ",")

	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && f[0] == '"' && f[len(f)-1] == '"' {
			f = f[1 : len(f)-1]
		}
		fields[i] = f
	}

	return fields
}

//
// IF cond THEN ...: a false condition skips the entire rest of the
// line, ':'-separated clauses included.  A true condition either
// jumps to a bare line number or runs the remainder as a nested
// statement sequence.  Offsets stay absolute, so checkpoints inside
// the THEN branch remain exact
//

func (ex *exec) execIf() (stmtResult, error) {

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	cond, err := ex.evalExpr()
	if err != nil {
		return resNext, err
	}

	if err := ex.expect(THEN, "THEN"); err != nil {
		return resNext, err
	}

	if !cond.truthy() {
		ex.skipRest()
		return resNext, nil
	}

	if ex.tok.kind == NUMBER {
		return ex.jumpTo()
	}

	for {
		if res, err := ex.safePoint(); res != resNext || err != nil {
			return res, err
		}

		res, err := ex.execStatement()
		if res != resNext || err != nil {
			return res, err
		}

		switch ex.tok.kind {
		case EOL:
			return resNext, nil

		case COLON:
			if err := ex.advance(); err != nil {
				return resNext, err
			}

		default:
			return resNext, syntaxErrorf("Unexpected text after statement")
		}
	}
}

//
// Parse a literal line number operand
//

func (ex *exec) lineNumberArg() (int, error) {

	if ex.tok.kind != NUMBER {
		return 0, syntaxErrorf("Expected line number")
	}

	n := int(ex.tok.num.asNumber())

	if n <= 0 || n > maxLineNo {
		return 0, syntaxErrorf("Expected line number")
	}

	return n, ex.advance()
}

func (ex *exec) jumpTo() (stmtResult, error) {

	env := ex.b.env

	n, err := ex.lineNumberArg()
	if err != nil {
		return resNext, err
	}

	if !env.lineExists(n) {
		return resNext, runtimeErrorf(EUNDEFINEDLINE)
	}

	env.cur = checkpoint{line: n}

	return resJump, nil
}

func (ex *exec) execGoto() (stmtResult, error) {

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	return ex.jumpTo()
}

//
// GOSUB: validate the target before pushing, so a failed jump never
// leaves a dangling frame.  The resume checkpoint points just past
// the GOSUB statement
//

func (ex *exec) execGosub() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	n, err := ex.lineNumberArg()
	if err != nil {
		return resNext, err
	}

	if !env.lineExists(n) {
		return resNext, runtimeErrorf(EUNDEFINEDLINE)
	}

	env.gosubStack = append(env.gosubStack, gosubFrame{resume: ex.here()})
	env.cur = checkpoint{line: n}

	return resJump, nil
}

func (ex *exec) execReturn() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if len(env.gosubStack) == 0 {
		return resNext, runtimeErrorf(ERETURNNOGOSUB)
	}

	frame := env.gosubStack[len(env.gosubStack)-1]
	env.gosubStack = env.gosubStack[:len(env.gosubStack)-1]

	if frame.interrupt {
		env.dataIndex = frame.dataIndex
		env.interval.inISR = false
	}

	env.cur = frame.resume

	return resJump, nil
}

//
// FOR var = start TO limit [STEP step]
//

func (ex *exec) execFor() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if ex.tok.kind != IDENT {
		return resNext, syntaxErrorf(EEXPECTEDVAR)
	}

	name := canonicalName(ex.tok.text)

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if err := ex.expect(EQ, "'='"); err != nil {
		return resNext, err
	}

	start, err := ex.evalExpr()
	if err != nil {
		return resNext, err
	}

	if err := ex.expect(TO, "TO"); err != nil {
		return resNext, err
	}

	limit, err := ex.evalExpr()
	if err != nil {
		return resNext, err
	}

	step := intVal(1)
	if ex.tok.kind == STEP {
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		if step, err = ex.evalExpr(); err != nil {
			return resNext, err
		}
	}

	if step.asNumber() == 0 {
		return resNext, runtimeErrorf(EZEROSTEP)
	}

	if err := env.setVar(name, start); err != nil {
		return resNext, err
	}

	//
	// A new FOR on the same variable discards the old frame and
	// everything stacked above it
	//

	for i, f := range env.forStack {
		if f.name == name {
			env.forStack = env.forStack[:i]
			break
		}
	}

	//
	// The resume checkpoint: just after the ':' for an inline body,
	// the next line otherwise
	//

	var resume checkpoint

	switch {
	case ex.tok.kind == COLON:
		resume = checkpoint{line: ex.line, offset: ex.base + ex.tok.end}

	case ex.line > 0:
		if nl := env.nextLineAfter(ex.line); nl != nil {
			resume = checkpoint{line: nl.number}
		}
	}

	env.forStack = append(env.forStack, forFrame{
		name:   name,
		limit:  limit,
		step:   step,
		resume: resume,
	})

	return resNext, nil
}

//
// NEXT [var]: a named NEXT searches the stack top-down and drops any
// frames above the match, which is what makes jumping out of nested
// loops with GOTO recoverable
//

func (ex *exec) execNext() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	idx := len(env.forStack) - 1

	if ex.tok.kind == IDENT {
		name := canonicalName(ex.tok.text)
		if err := ex.advance(); err != nil {
			return resNext, err
		}

		idx = -1
		for i := len(env.forStack) - 1; i >= 0; i-- {
			if env.forStack[i].name == name {
				idx = i
				break
			}
		}
	}

	if idx < 0 {
		return resNext, runtimeErrorf(ENEXTNOFOR)
	}

	env.forStack = env.forStack[:idx+1]
	frame := &env.forStack[idx]

	next, err := applyOp(PLUS, env.getVar(frame.name), frame.step)
	if err != nil {
		return resNext, err
	}

	if err := env.setVar(frame.name, next); err != nil {
		return resNext, err
	}

	var keep bool
	if frame.step.asNumber() >= 0 {
		keep = next.asNumber() <= frame.limit.asNumber()
	} else {
		keep = next.asNumber() >= frame.limit.asNumber()
	}

	if keep {
		env.cur = frame.resume
		return resJump, nil
	}

	env.forStack = env.forStack[:idx]

	return resNext, nil
}

func (ex *exec) execDim() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	for {
		if ex.tok.kind != IDENT {
			return resNext, syntaxErrorf(EEXPECTEDVAR)
		}

		name := ex.tok.text

		if err := ex.advance(); err != nil {
			return resNext, err
		}

		size, err := ex.parseSubscript()
		if err != nil {
			return resNext, err
		}

		if err := env.dimArray(name, size); err != nil {
			return resNext, err
		}

		if ex.tok.kind != COMMA {
			return resNext, nil
		}
		if err := ex.advance(); err != nil {
			return resNext, err
		}
	}
}

func (ex *exec) execRead() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	for {
		t, err := ex.parseTarget()
		if err != nil {
			return resNext, err
		}

		item, err := env.readData()
		if err != nil {
			return resNext, err
		}

		var v value
		if env.targetKind(t) == kindString {
			v = strVal(item.text)
		} else {
			v = floatVal(parseLeadingNumber(item.text))
		}

		if err := ex.assign(t, v); err != nil {
			return resNext, err
		}

		if ex.tok.kind != COMMA {
			return resNext, nil
		}
		if err := ex.advance(); err != nil {
			return resNext, err
		}
	}
}

//
// DATA is non-executable; skip to the next ':' outside a string.
// The skip is a raw scan, since unquoted DATA text need not lex
//

func (ex *exec) execData() (stmtResult, error) {

	src := ex.lex.src
	i := ex.tok.end
	quoting := false

	for i < len(src) {
		switch src[i] {
		case '"':
			quoting = !quoting
		case ':':
			if !quoting {
				ex.lex.pos = i
				return resNext, ex.advance()
			}
		}
		i++
	}

	ex.skipRest()

	return resNext, nil
}

func (ex *exec) execRestore() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	number := 0

	if ex.tok.kind == NUMBER {
		var err error
		if number, err = ex.lineNumberArg(); err != nil {
			return resNext, err
		}
	}

	env.restoreData(number)

	return resNext, nil
}

//
// ON INTERVAL <ticks> GOSUB <line>, where ticks are 1/60 second.
// Three accepted spellings: a bare expression, a parenthesized one,
// or '= expr'.  The handler line is resolved when the timer fires,
// not here
//

func (ex *exec) execOnInterval() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if err := ex.expect(INTERVAL, "INTERVAL"); err != nil {
		return resNext, err
	}

	var ticks value
	var err error

	switch ex.tok.kind {
	case LPAREN:
		if err = ex.advance(); err != nil {
			return resNext, err
		}
		if ticks, err = ex.evalExpr(); err != nil {
			return resNext, err
		}
		if err = ex.expect(RPAREN, "')'"); err != nil {
			return resNext, err
		}

	case EQ:
		if err = ex.advance(); err != nil {
			return resNext, err
		}
		if ticks, err = ex.evalExpr(); err != nil {
			return resNext, err
		}

	default:
		if ticks, err = ex.evalExpr(); err != nil {
			return resNext, err
		}
	}

	if err := ex.expect(GOSUB, "GOSUB"); err != nil {
		return resNext, err
	}

	handler, err := ex.lineNumberArg()
	if err != nil {
		return resNext, err
	}

	n := ticks.asNumber()
	if n <= 0 {
		return resNext, runtimeErrorf(EBADINTERVAL)
	}

	env.armInterval(n, handler)

	return resNext, nil
}

//
// INTERVAL ON | OFF | STOP.  STOP holds the timer like OFF; a held
// deadline is rescheduled when INTERVAL ON re-enables it
//

func (ex *exec) execIntervalCtrl() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	switch ex.tok.kind {

	case ON:
		env.interval.enabled = true
		if env.interval.armed {
			env.interval.nextFire = time.Now().Add(env.interval.period)
		}

	case OFF, STOP:
		env.interval.enabled = false

	default:
		return resNext, syntaxErrorf("Expected ON, OFF or STOP")
	}

	return resNext, ex.advance()
}

//
// DEFINT A, I-N, ...: mark starting letters as integer-typed
//

func (ex *exec) execDefint() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	letter := func() (byte, error) {
		if ex.tok.kind != IDENT || len(ex.tok.text) != 1 ||
			!isLetter(ex.tok.text[0]) {
			return 0, syntaxErrorf("Expected a letter")
		}
		c := canonicalName(ex.tok.text)[0]
		return c, ex.advance()
	}

	for {
		lo, err := letter()
		if err != nil {
			return resNext, err
		}

		hi := lo
		if ex.tok.kind == MINUS {
			if err := ex.advance(); err != nil {
				return resNext, err
			}
			if hi, err = letter(); err != nil {
				return resNext, err
			}
		}

		if hi < lo {
			lo, hi = hi, lo
		}

		for c := lo; c <= hi; c++ {
			env.defInt[c-'A'] = true
		}

		if ex.tok.kind != COMMA {
			return resNext, nil
		}
		if err := ex.advance(); err != nil {
			return resNext, err
		}
	}
}

//
// LOCATE row[, col[, cursor]]
//

func (ex *exec) execLocate() (stmtResult, error) {

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	row, err := ex.evalExpr()
	if err != nil {
		return resNext, err
	}

	col := floatVal(1)
	if ex.tok.kind == COMMA {
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		if col, err = ex.evalExpr(); err != nil {
			return resNext, err
		}

		if ex.tok.kind == COMMA {
			if err := ex.advance(); err != nil {
				return resNext, err
			}
			cursor, err := ex.evalExpr()
			if err != nil {
				return resNext, err
			}
			ex.b.scr.ShowCursor(cursor.truthy())
		}
	}

	ex.b.scr.Locate(int(row.asNumber()), int(col.asNumber()))
	ex.b.col = int(col.asNumber()) - 1

	return resNext, nil
}

//
// COLOR fg[, bg], each clamped to 0..15
//

func (ex *exec) execColor() (stmtResult, error) {

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	fg, err := ex.evalExpr()
	if err != nil {
		return resNext, err
	}

	bg := -1
	if ex.tok.kind == COMMA {
		if err := ex.advance(); err != nil {
			return resNext, err
		}
		v, err := ex.evalExpr()
		if err != nil {
			return resNext, err
		}
		bg = clampColor(int(v.asNumber()))
	}

	ex.b.scr.Color(clampColor(int(fg.asNumber())), bg)

	return resNext, nil
}

func clampColor(c int) int {

	if c < 0 {
		return 0
	}
	if c > 15 {
		return 15
	}

	return c
}

func (ex *exec) execRandomize() (stmtResult, error) {

	env := ex.b.env

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if ex.tok.kind != EOL && ex.tok.kind != COLON {
		seed, err := ex.evalExpr()
		if err != nil {
			return resNext, err
		}
		env.reseed(int64(seed.asNumber()))
		return resNext, nil
	}

	env.reseed(time.Now().UnixNano())

	return resNext, nil
}

//
// CLEAR [n]: the memory-size argument is accepted and ignored.  As
// a statement, the control stacks and interrupt guard survive
//

func (ex *exec) execClear() (stmtResult, error) {

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if ex.tok.kind != EOL && ex.tok.kind != COLON {
		if _, err := ex.evalExpr(); err != nil {
			return resNext, err
		}
	}

	ex.b.env.clearVars(true)

	return resNext, nil
}

//
// KEY ON / KEY OFF: accepted and ignored (no function-key row here)
//

func (ex *exec) execKey() (stmtResult, error) {

	if err := ex.advance(); err != nil {
		return resNext, err
	}

	if ex.tok.kind != ON && ex.tok.kind != OFF {
		return resNext, syntaxErrorf("Expected ON or OFF")
	}

	return resNext, ex.advance()
}

//
// The run loop.  Executes lines at the cursor until the program ends,
// stops or fails.  A jump simply repositions the cursor; normal
// completion advances to the next line
//

func (b *basic) runLoop() {

	env := b.env

	for env.running {
		if env.cur.line <= 0 {
			env.contOK = false
			break
		}

		ln := env.lookupLine(env.cur.line)
		if ln == nil {
			env.contOK = false
			break
		}

		if b.traceExec {
			b.printString(fmt.Sprintf("[%d]", ln.number))
		}

		off := env.cur.offset
		if off > len(ln.text) {
			off = len(ln.text)
		}

		ex, err := b.newExec(ln.text[off:], off, ln.number)

		var res stmtResult
		if err == nil {
			res, err = ex.execLine()
		}

		if err != nil {
			env.running = false
			if err == errBreak {
				b.printLine(fmt.Sprintf("Break in %d", ln.number))
			} else {
				b.printLine(formatError(ln.number, err))
			}
			env.contOK = true
			b.printStatistics()
			return
		}

		switch res {
		case resJump:
			// cursor already repositioned

		case resStop:
			env.running = false
			env.contOK = false

		default:
			if nl := env.nextLineAfter(ln.number); nl != nil {
				env.cur = checkpoint{line: nl.number}
			} else {
				env.cur = checkpoint{}
			}
		}
	}

	env.running = false
	b.printStatistics()
}

//
// RUN: reset variables, stacks, DATA cursor and interval state, then
// start from the first line.  The program text itself survives
//

func (b *basic) cmdRun() {

	env := b.env

	env.clearVars(false)
	env.contOK = false

	b.stats = runStats{}
	b.initClock()

	first := env.firstLine()
	if first == nil {
		return
	}

	env.cur = checkpoint{line: first.number}
	env.running = true

	b.runLoop()
}

//
// CONT: resume at the saved cursor.  Only legal after a break, a
// STOP or an error; any program edit revokes it
//

func (b *basic) cmdCont() {

	env := b.env

	if !env.contOK {
		b.printLine(formatError(0, runtimeErrorf(ECANTCONTINUE)))
		return
	}

	env.contOK = false
	env.running = true

	b.runLoop()
}

//
// Immediate mode: execute a statement sequence typed at the prompt.
// Errors are reported without a line number and leave the run/CONT
// state alone.  A jump (GOTO/GOSUB/NEXT at the prompt) starts the
// run loop at the target
//

func (b *basic) executeImmediate(text string) {

	env := b.env
	off := 0

	for {
		ex, err := b.newExec(text[off:], off, -1)

		var res stmtResult
		if err == nil {
			res, err = ex.execLine()
		}

		if err != nil {
			if err == errBreak {
				b.printLine("Break")
			} else {
				b.printLine(formatError(0, err))
			}
			return
		}

		switch res {
		case resJump:
			if env.cur.line == -1 {
				// a loop bouncing within the immediate line itself
				off = env.cur.offset
				continue
			}
			env.running = true
			b.runLoop()
			return

		default:
			return
		}
	}
}
