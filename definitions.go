package main

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/danswartzendruber/avl"
	"github.com/danswartzendruber/liner"
)

//
// Manifest constants
//

const VERSION = "1.2"

const (
	myPrompt      = "% "
	inputPrompt   = "? "
	zoneWidth     = 14
	maxLineLen    = 255
	maxLineNo     = 65529
	implicitDim   = 10
	minWindowCols = 40
	basFileSuffix = ".bas"
)

//
// One interval 'tick' is 1/60 of a second
//

const intervalTick = time.Second / 60

//
// A checkpoint is an exact resumable position in the program: a line
// number plus a byte offset into that line's text.  A line number of
// 0 means 'past the end of the program'
//

type checkpoint struct {
	line   int
	offset int
}

//
// An active FOR loop.  The limit and step are evaluated once, when
// the FOR statement executes.  The resume checkpoint points just past
// the FOR header: at the next line if the header ends the line, or
// just after the ':' for an inline body
//

type forFrame struct {
	name   string
	limit  value
	step   value
	resume checkpoint
}

//
// An active GOSUB.  Frames pushed by the interval timer are tagged,
// and carry the DATA cursor to restore when the handler RETURNs
//

type gosubFrame struct {
	resume    checkpoint
	interrupt bool
	dataIndex int
}

//
// One literal harvested from a DATA statement.  We keep the line
// number so RESTORE <line> can reposition the cursor
//

type dataItem struct {
	line   int
	text   string
	quoted bool
}

//
// ON INTERVAL timer state.  'armed' means an ON INTERVAL statement
// has run, 'enabled' tracks INTERVAL ON/OFF, and 'inISR' is the
// re-entrancy guard: while the handler (or anything it calls) is
// active, the timer may not fire again
//

type intervalState struct {
	armed    bool
	enabled  bool
	period   time.Duration
	handler  int
	nextFire time.Time
	inISR    bool
}

//
// A program line, one AVL node per line, keyed by line number
//

type lineNode struct {
	avl    avl.AvlNode
	number int
	text   string
}

//
// An array variable.  Elements run 0..N inclusive, so a DIM A(10)
// allocates 11 slots.  The element type is fixed at creation
//

type array struct {
	kind  varKind
	elems []value
}

//
// The runtime environment: program text, variables, control stacks,
// DATA cache and the execution cursor.  All of it belongs to whatever
// goroutine is running the interpreter; nothing here is locked
//

type environ struct {
	program    *avl.AvlNode
	vars       map[string]value
	arrays     map[string]*array
	defInt     [26]bool
	forStack   []forFrame
	gosubStack []gosubFrame
	data       []dataItem
	dataIndex  int
	dataValid  bool
	interval   intervalState
	cur        checkpoint
	running    bool
	contOK     bool
	rng        *rand.Rand
	lastRnd    float64
	haveRnd    bool
}

//
// Run statistics, printed after a run when STATS is on
//

type runStats struct {
	numStatements int64
	elapsed       time.Time
	utime         int64
	stime         int64
}

//
// The interpreter proper.  The screen driver and input provider are
// interfaces so tests can capture output and script INPUT without a
// terminal; main() wires up the ANSI/liner implementations
//

type basic struct {
	env *environ

	scr screen
	in  inputReader

	col int // current output column, 0-based

	interrupted atomic.Bool

	traceExec  bool
	traceDump  bool
	printStats bool
	stats      runStats

	shellLiner *liner.State
	inputLiner *liner.State

	window struct {
		rows int
		cols int
	}

	exiting bool
}

func newBasic(scr screen, in inputReader) *basic {

	return &basic{env: newEnviron(), scr: scr, in: in}
}
