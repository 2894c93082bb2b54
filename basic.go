package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danswartzendruber/liner"
	"golang.org/x/term"
)

func main() {

	b := newBasic(&ansiScreen{w: os.Stdout}, nil)

	//
	// The Liner instances must be closed in reverse order, so the
	// terminal lands back in cooked mode
	//

	defer b.cleanupLiners()

	b.checkTerminal()
	b.setupWindow()
	b.setupLiners()

	b.in = &linerInput{b: b}

	go b.sigHdlr()

	b.printVersionInfo()

	switch len(os.Args) {
	default:
		b.crash("Usage: gwbasic [program]")

	case 1:
		// nothing to do

	case 2:
		if name, ok := programFilename(os.Args[1]); !ok {
			fmt.Println("Invalid filename!")
		} else {
			b.loadProgram(name)
		}
	}

	b.shellLoop()
}

//
// Ensure we are connected to a tty!
//

func (b *basic) checkTerminal() {

	if !term.IsTerminal(2) {
		b.crash("")
	}

	if !term.IsTerminal(0) {
		b.crash("Standard input must be a terminal")
	}

	if !term.IsTerminal(1) {
		b.crash("Standard output must be a terminal")
	}
}

//
// Read terminal geometry.  Re-read on SIGWINCH
//

func (b *basic) setupWindow() {

	cols, rows, err := term.GetSize(0)
	if err != nil {
		b.crash("Unable to read terminal parameters")
	}

	if cols < minWindowCols {
		b.crash(fmt.Sprintf("Terminal width must be >= %d characters",
			minWindowCols))
	}

	b.window.cols = cols
	b.window.rows = rows
}

//
// We create two Liner instances: one for the shell prompt, with a
// scrollback history, and one for INPUT statements, without.  They
// must be created and destroyed in LIFO order, since Close restores
// the terminal to its previous state
//

func (b *basic) setupLiners() {

	b.shellLiner = setupLiner(false)
	b.inputLiner = setupLiner(true)
}

func setupLiner(allowCtrlC bool) *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(allowCtrlC)

	return l
}

func (b *basic) cleanupLiners() {

	cleanupLiner(&b.inputLiner)
	cleanupLiner(&b.shellLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a shell command line, with editing and history.  ^D exits,
// ^C at the prompt just abandons the line
//

func (b *basic) readCommand(prompt string) (string, bool) {

	if b.shellLiner == nil {
		return "", false
	}

	s, err := b.shellLiner.Prompt(prompt)
	if err != nil {
		switch err {
		case io.EOF:
			b.exiting = true
			fmt.Println()
			return "", false

		case liner.ErrPromptAborted:
			return "", true
		}

		b.crash(fmt.Sprintf("readCommand error: %q", err))
	}

	if s != "" {
		b.shellLiner.AppendHistory(s)
	}

	b.col = 0

	return s, true
}

//
// The liner-backed INPUT provider.  ^C during INPUT maps to the
// break path; ^D aborts the running program
//

type linerInput struct {
	b *basic
}

func (li *linerInput) ReadLine(prompt string) (string, error) {

	s, err := li.b.inputLiner.Prompt(prompt)
	if err != nil {
		switch err {
		case liner.ErrPromptAborted:
			return "", errBreak

		case io.EOF, liner.ErrTimedOut:
			return "", runtimeErrorf(EINPUTABORTED)
		}

		return "", runtimeErrorf("%v", err)
	}

	return s, nil
}

//
// Signal handling runs in its own goroutine.  SIGINT posts the break
// flag, sampled at statement boundaries; SIGWINCH re-reads the
// terminal geometry
//

func (b *basic) sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGINT)
	signal.Notify(ch, syscall.SIGWINCH)

	for {
		switch <-ch {

		case syscall.SIGWINCH:
			b.setupWindow()

		case syscall.SIGINT:
			b.interrupted.Store(true)
		}
	}
}

//
// Print a fatal message and abort the process.  Close the Liner
// instances first, so the terminal state is sane
//

func (b *basic) crash(msg string) {

	b.cleanupLiners()

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}

func (b *basic) printVersionInfo() {

	fmt.Printf("GW-BASIC style interpreter version %s\n", VERSION)
}
