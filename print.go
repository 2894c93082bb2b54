package main

import (
	"fmt"
	"io"
	"strings"
)

//
// The screen driver consumed by the core.  main() wires up the ANSI
// implementation; tests substitute a capture buffer.  A nil-safe
// no-op fallback keeps PRINT and friends harmless when no driver is
// attached
//

type screen interface {
	PutChar(ch byte)
	Cls()
	Locate(row, col int)
	ShowCursor(on bool)
	Color(fg, bg int) // 0..15, or -1 for 'unchanged'
	Beep()
}

//
// ANSI escape-sequence implementation, normally on os.Stdout
//

type ansiScreen struct {
	w io.Writer
}

func (s *ansiScreen) PutChar(ch byte) {

	_, _ = s.w.Write([]byte{ch})
}

func (s *ansiScreen) Cls() {

	fmt.Fprint(s.w, "\x1b[2J\x1b[H")
}

func (s *ansiScreen) Locate(row, col int) {

	fmt.Fprintf(s.w, "\x1b[%d;%dH", row, col)
}

func (s *ansiScreen) ShowCursor(on bool) {

	if on {
		fmt.Fprint(s.w, "\x1b[?25h")
	} else {
		fmt.Fprint(s.w, "\x1b[?25l")
	}
}

//
// Map the 16 classic colors onto the ANSI normal/bright ranges
//

func (s *ansiScreen) Color(fg, bg int) {

	if fg >= 0 {
		if fg < 8 {
			fmt.Fprintf(s.w, "\x1b[%dm", 30+fg)
		} else {
			fmt.Fprintf(s.w, "\x1b[%dm", 90+fg-8)
		}
	}

	if bg >= 0 {
		if bg < 8 {
			fmt.Fprintf(s.w, "\x1b[%dm", 40+bg)
		} else {
			fmt.Fprintf(s.w, "\x1b[%dm", 100+bg-8)
		}
	}
}

func (s *ansiScreen) Beep() {

	fmt.Fprint(s.w, "\a")
}

//
// noScreen is the degraded fallback when no driver is attached
//

type noScreen struct{}

func (noScreen) PutChar(byte)    {}
func (noScreen) Cls()            {}
func (noScreen) Locate(int, int) {}
func (noScreen) ShowCursor(bool) {}
func (noScreen) Color(int, int)  {}
func (noScreen) Beep()           {}

//
// Output column bookkeeping.  Everything the interpreter prints goes
// through printChar, so the tracker always knows the column, which
// is what PRINT zones and TAB() need
//

func (b *basic) printChar(ch byte) {

	if b.scr == nil {
		b.scr = noScreen{}
	}

	b.scr.PutChar(ch)

	if ch == '\n' {
		b.col = 0
	} else {
		b.col++
	}
}

func (b *basic) printString(s string) {

	for i := 0; i < len(s); i++ {
		b.printChar(s[i])
	}
}

func (b *basic) newline() {

	b.printChar('\n')
}

//
// Print a full line on a fresh line: messages must not run into
// pending PRINT output
//

func (b *basic) printLine(s string) {

	if b.col != 0 {
		b.newline()
	}

	b.printString(s)
	b.newline()
}

//
// Advance to the next 14-wide print zone (the PRINT ',' separator)
//

func (b *basic) nextZone() {

	b.printString(strings.Repeat(" ", zoneWidth-b.col%zoneWidth))
}

//
// Pad with spaces out to 1-based column n (the TAB pseudo-function).
// Already past it: leave the column alone
//

func (b *basic) tabTo(n int) {

	for b.col < n-1 {
		b.printChar(' ')
	}
}
