package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/danswartzendruber/avl"
)

//
// A fresh environment.  The program tree starts empty: a nil AVL
// root, per the avl package convention
//

func newEnviron() *environ {

	env := &environ{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	env.vars = make(map[string]value)
	env.arrays = make(map[string]*array)

	return env
}

//
// A set of wrapper routines to the AVL package, to hide the AVL
// interface from the interpreter code
//

func cmpLineKey(key any, node any) int {

	return cmpInts(key.(int), node.(*lineNode).number)
}

func cmpLineNodes(node1, node2 any) int {

	return cmpInts(node1.(*lineNode).number, node2.(*lineNode).number)
}

func cmpInts(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}

func (env *environ) lookupLine(number int) *lineNode {

	p := avl.AvlTreeLookup(env.program, number, cmpLineKey)
	if p != nil {
		return p.(*lineNode)
	} else {
		return nil
	}
}

func (env *environ) firstLine() *lineNode {

	p := avl.AvlTreeFirstInOrder(env.program)
	if p != nil {
		return p.(*lineNode)
	} else {
		return nil
	}
}

func (env *environ) nextLine(ln *lineNode) *lineNode {

	p := avl.AvlTreeNextInOrder(&ln.avl)
	if p != nil {
		return p.(*lineNode)
	} else {
		return nil
	}
}

func (env *environ) nextLineAfter(number int) *lineNode {

	if ln := env.lookupLine(number); ln != nil {
		return env.nextLine(ln)
	}

	//
	// The line itself is gone (can't normally happen, since edits
	// invalidate the cursor); fall back to an ordered scan
	//

	for ln := env.firstLine(); ln != nil; ln = env.nextLine(ln) {
		if ln.number > number {
			return ln
		}
	}

	return nil
}

func (env *environ) lineExists(number int) bool {

	return env.lookupLine(number) != nil
}

//
// Store a program line, normalizing keyword case.  Empty text
// deletes the line.  Any edit invalidates the execution cursor,
// CONT eligibility and the DATA cache
//

func (env *environ) storeLine(number int, text string) {

	if text == "" {
		env.deleteLine(number)
		return
	}

	if old := env.lookupLine(number); old != nil {
		avl.AvlTreeRemove(&env.program, &old.avl)
	}

	ln := &lineNode{number: number, text: normalizeLine(text)}

	avl.AvlTreeInsert(&env.program, &ln.avl, ln, cmpLineNodes)

	env.invalidateRun()
}

func (env *environ) deleteLine(number int) bool {

	ln := env.lookupLine(number)
	if ln == nil {
		return false
	}

	avl.AvlTreeRemove(&env.program, &ln.avl)

	env.invalidateRun()

	return true
}

func (env *environ) invalidateRun() {

	env.running = false
	env.contOK = false
	env.cur = checkpoint{}
	env.dataValid = false
	env.dataIndex = 0
}

//
// Normalize a program line: keywords are upper-cased, everything
// else is preserved byte for byte.  After REM, the commentary is
// kept verbatim.  A line that does not lex cleanly is stored as-is
// from the bad character on; it will be diagnosed at run time
//

func normalizeLine(text string) string {

	var out strings.Builder

	lx := newLexer(text)
	prev := 0

	for {
		tok, err := lx.next()
		if err != nil {
			out.WriteString(text[prev:])
			return out.String()
		}

		out.WriteString(text[prev:tok.start])

		if tok.kind == EOL {
			return out.String()
		}

		if tok.kind >= firstKeyword {
			out.WriteString(strings.ToUpper(text[tok.start:tok.end]))
		} else {
			out.WriteString(text[tok.start:tok.end])
		}

		prev = tok.end

		if tok.kind == REM {
			out.WriteString(text[tok.end:])
			return out.String()
		}
	}
}

//
// Type resolution: '$' and '%' suffixes win, then the per-letter
// DEFINT table, then double.  All table lookups use the canonical
// upper-cased name
//

func canonicalName(name string) string {

	return strings.ToUpper(name)
}

func (env *environ) kindOf(name string) varKind {

	switch {
	case strings.HasSuffix(name, "$"):
		return kindString

	case strings.HasSuffix(name, "%"):
		return kindInt
	}

	if c := name[0]; c >= 'A' && c <= 'Z' && env.defInt[c-'A'] {
		return kindInt
	}

	return kindFloat
}

func zeroValue(kind varKind) value {

	switch kind {
	case kindString:
		return strVal("")

	case kindInt:
		return intVal(0)
	}

	return floatVal(0)
}

func (env *environ) getVar(name string) value {

	name = canonicalName(name)

	if v, ok := env.vars[name]; ok {
		return v
	}

	return zeroValue(env.kindOf(name))
}

func (env *environ) setVar(name string, v value) error {

	name = canonicalName(name)

	cv, err := coerceTo(v, env.kindOf(name))
	if err != nil {
		return err
	}

	env.vars[name] = cv

	return nil
}

//
// Arrays.  DIM sizes an array once; re-DIM is an error.  A reference
// to an undimensioned array creates it implicitly with bounds 0..10.
// Bounds are inclusive 0..N
//

func (env *environ) dimArray(name string, size int) error {

	name = canonicalName(name)

	if env.arrays[name] != nil {
		return runtimeErrorf(EDUPLICATEDEF)
	}

	if size < 0 {
		return runtimeErrorf(EBADSUBSCRIPT)
	}

	env.arrays[name] = &array{
		kind:  env.kindOf(name),
		elems: make([]value, size+1),
	}

	return nil
}

func (env *environ) arrayRef(name string, idx int) (*array, error) {

	name = canonicalName(name)

	a := env.arrays[name]
	if a == nil {
		a = &array{
			kind:  env.kindOf(name),
			elems: make([]value, implicitDim+1),
		}
		env.arrays[name] = a
	}

	if idx < 0 {
		return nil, runtimeErrorf(EBADSUBSCRIPT)
	}

	if idx >= len(a.elems) {
		return nil, runtimeErrorf(ESUBSCRIPT)
	}

	return a, nil
}

func (env *environ) getArrayElem(name string, idx int) (value, error) {

	a, err := env.arrayRef(name, idx)
	if err != nil {
		return value{}, err
	}

	v := a.elems[idx]
	if v.kind != a.kind && v == (value{}) {
		return zeroValue(a.kind), nil
	}

	return v, nil
}

func (env *environ) setArrayElem(name string, idx int, v value) error {

	a, err := env.arrayRef(name, idx)
	if err != nil {
		return err
	}

	cv, err := coerceTo(v, a.kind)
	if err != nil {
		return err
	}

	a.elems[idx] = cv

	return nil
}

//
// Clear variables and the DATA cursor.  When triggered by a CLEAR
// statement during a run, the FOR/GOSUB stacks and the interrupt
// re-entrancy state must survive, so in-flight loops and subroutines
// are not broken
//

func (env *environ) clearVars(preserveControl bool) {

	env.vars = make(map[string]value)
	env.arrays = make(map[string]*array)
	env.dataValid = false
	env.dataIndex = 0

	if !preserveControl {
		env.forStack = nil
		env.gosubStack = nil
		env.interval = intervalState{}
	}
}

//
// Full reset: everything including program text, the DEFINT table
// and interval state.  Used by NEW
//

func (env *environ) reset() {

	env.program = nil
	env.clearVars(false)
	env.defInt = [26]bool{}
	env.invalidateRun()
}

//
// The DATA cache: a flattened, program-order sequence of literals
// from every DATA statement.  Built lazily, rebuilt after any edit.
// The scan is on the raw line text, honoring string quoting, so
// colons and commas inside strings don't split anything
//

func (env *environ) ensureData() {

	if env.dataValid {
		return
	}

	env.data = nil

	for ln := env.firstLine(); ln != nil; ln = env.nextLine(ln) {
		collectData(ln.number, ln.text, &env.data)
	}

	env.dataValid = true
}

func collectData(number int, text string, out *[]dataItem) {

	for _, stmt := range splitStatements(text) {
		s := strings.TrimLeft(stmt, " \t")

		if len(s) < 4 || !strings.EqualFold(s[:4], "DATA") {
			continue
		}
		if len(s) > 4 && isIdentChar(s[4]) {
			continue
		}

		parseDataItems(number, s[4:], out)
	}
}

//
// Split a line into ':'-separated statements, quote-aware
//

func splitStatements(text string) []string {

	var parts []string
	var quoting bool

	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			quoting = !quoting

		case ':':
			if !quoting {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, text[start:])
}

func parseDataItems(number int, s string, out *[]dataItem) {

	i := 0

	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}

		if i < len(s) && s[i] == '"' {

			//
			// Quoted item: doubled "" is a literal quote
			//

			var item strings.Builder
			i++
			for i < len(s) {
				if s[i] == '"' {
					if i+1 < len(s) && s[i+1] == '"' {
						item.WriteByte('"')
						i += 2
						continue
					}
					i++
					break
				}
				item.WriteByte(s[i])
				i++
			}
			*out = append(*out, dataItem{line: number,
				text: item.String(), quoted: true})

			// skip to the comma
			for i < len(s) && s[i] != ',' {
				i++
			}
		} else {
			j := i
			for j < len(s) && s[j] != ',' {
				j++
			}
			*out = append(*out, dataItem{line: number,
				text: strings.TrimSpace(s[i:j])})
			i = j
		}

		if i >= len(s) {
			return
		}
		i++ // the comma
	}
}

func (env *environ) readData() (dataItem, error) {

	env.ensureData()

	if env.dataIndex >= len(env.data) {
		return dataItem{}, runtimeErrorf(EOUTOFDATA)
	}

	item := env.data[env.dataIndex]
	env.dataIndex++

	return item, nil
}

//
// RESTORE: reposition the cursor to the first item at or after the
// given line (or the start if 0)
//

func (env *environ) restoreData(number int) {

	env.ensureData()

	env.dataIndex = len(env.data)

	for i, item := range env.data {
		if item.line >= number {
			env.dataIndex = i
			break
		}
	}
}

//
// RND state.  A negative argument reseeds; a zero argument repeats
// the last generated value (generating one first if none exists)
//

func (env *environ) reseed(seed int64) {

	env.rng = rand.New(rand.NewSource(seed))
	env.haveRnd = false
}

func (env *environ) nextRnd() float64 {

	env.lastRnd = env.rng.Float64()
	env.haveRnd = true

	return env.lastRnd
}

func (env *environ) rnd(arg float64, haveArg bool) float64 {

	if haveArg {
		switch {
		case arg < 0:
			env.reseed(int64(arg))
			return env.nextRnd()

		case arg == 0:
			if !env.haveRnd {
				return env.nextRnd()
			}
			return env.lastRnd
		}
	}

	return env.nextRnd()
}

//
// Interval timer.  The deadline check happens only at statement
// boundaries; the inISR guard holds off re-fires until the handler
// RETURNs
//

func (env *environ) armInterval(ticks float64, handler int) {

	iv := &env.interval

	iv.armed = true
	iv.period = time.Duration(ticks * float64(intervalTick))
	iv.handler = handler
	iv.nextFire = time.Now().Add(iv.period)
}

func (env *environ) intervalDue(now time.Time) bool {

	iv := &env.interval

	return iv.armed && iv.enabled && !iv.inISR && !now.Before(iv.nextFire)
}
