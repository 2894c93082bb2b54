package main

import (
	"fmt"
	"strconv"
	"strings"
)

//
// The line-input provider consumed by INPUT.  main() wires up the
// liner-backed implementation; tests script their own
//

type inputReader interface {
	ReadLine(prompt string) (string, error)
}

func (b *basic) readInput(prompt string) (string, error) {

	if b.in == nil {
		return "", runtimeErrorf(EINPUTABORTED)
	}

	line, err := b.in.ReadLine(prompt)
	if err != nil {
		return "", err
	}

	// the user's newline took the cursor home

	b.col = 0

	return line, nil
}

//
// The command loop: read lines until BYE or ^D
//

func (b *basic) shellLoop() {

	for !b.exiting {
		line, ok := b.readCommand(myPrompt)
		if !ok {
			break
		}

		b.processLine(line)
	}
}

//
// One input line: a digit-initial line edits the program, anything
// else is a command or an immediate statement
//

func (b *basic) processLine(raw string) {

	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if isDigit(line[0]) {
		b.enterProgramLine(line)
		return
	}

	b.processCommand(line)
}

//
// Numbered-line entry.  '10 PRINT X' stores (normalized), a bare
// '10' deletes line 10
//

func (b *basic) enterProgramLine(line string) {

	i := 0
	for i < len(line) && isDigit(line[i]) {
		i++
	}

	number, err := strconv.Atoi(line[:i])
	if err != nil || number <= 0 || number > maxLineNo {
		b.printLine("Illegal line number")
		return
	}

	text := strings.TrimLeft(line[i:], " \t")
	if len(text) > maxLineLen {
		b.printLine("Line too long")
		return
	}

	b.storeLine(number, text)
}

func (b *basic) storeLine(number int, text string) {

	b.env.storeLine(number, text)

	b.dumpStoredLine(number)
}

func (b *basic) processCommand(line string) {

	i := 0
	for i < len(line) && isLetter(line[i]) {
		i++
	}

	word := strings.ToUpper(line[:i])
	args := strings.TrimSpace(line[i:])

	switch word {

	case "RUN":
		b.cmdRun()

	case "CONT":
		b.cmdCont()

	case "LIST":
		b.cmdList(args)

	case "NEW":
		b.env.reset()

	case "CLEAR":
		if args == "" {
			b.env.clearVars(false)
			b.env.contOK = false
			return
		}
		// CLEAR with an argument is the statement form
		b.executeImmediate(line)

	case "DELETE":
		b.cmdDelete(args)

	case "SAVE":
		b.cmdSave(args)

	case "LOAD":
		b.cmdLoad(args)

	case "TRACE":
		b.cmdTrace(args)

	case "STATS":
		b.cmdStats(args)

	case "DUMP":
		b.cmdDump()

	case "HELP":
		b.printHelp()

	case "BYE":
		b.exiting = true

	default:
		b.executeImmediate(line)
	}
}

//
// LIST [X | X- | -Y | X-Y]
//

func (b *basic) cmdList(args string) {

	lo, hi, ok := parseLineRange(args)
	if !ok {
		b.printLine("Illegal line number")
		return
	}

	for ln := b.env.firstLine(); ln != nil; ln = b.env.nextLine(ln) {
		if ln.number < lo {
			continue
		}
		if ln.number > hi {
			break
		}
		b.printLine(fmt.Sprintf("%d %s", ln.number, ln.text))
	}
}

func (b *basic) cmdDelete(args string) {

	if args == "" {
		b.printLine("Illegal line number")
		return
	}

	lo, hi, ok := parseLineRange(args)
	if !ok {
		b.printLine("Illegal line number")
		return
	}

	var doomed []int

	for ln := b.env.firstLine(); ln != nil; ln = b.env.nextLine(ln) {
		if ln.number >= lo && ln.number <= hi {
			doomed = append(doomed, ln.number)
		}
	}

	for _, number := range doomed {
		b.env.deleteLine(number)
	}
}

//
// Parse 'X', 'X-', '-Y' or 'X-Y'.  Empty means everything
//

func parseLineRange(s string) (int, int, bool) {

	s = strings.TrimSpace(s)

	if s == "" {
		return 0, maxLineNo, true
	}

	lo, hi := 0, maxLineNo

	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, false
		}
		return n, n, true
	}

	left := strings.TrimSpace(s[:dash])
	right := strings.TrimSpace(s[dash+1:])

	if left != "" {
		n, err := strconv.Atoi(left)
		if err != nil {
			return 0, 0, false
		}
		lo = n
	}

	if right != "" {
		n, err := strconv.Atoi(right)
		if err != nil {
			return 0, 0, false
		}
		hi = n
	}

	return lo, hi, true
}

func (b *basic) printHelp() {

	help := []string{
		"Program lines:   <number> <statement>[:<statement>...]",
		"                 a bare <number> deletes the line",
		"Commands:        RUN CONT LIST [range] NEW CLEAR DELETE <range>",
		"                 SAVE \"file\"  LOAD \"file\"[,R]",
		"                 TRACE EXEC|DUMP  STATS ON|OFF  DUMP  HELP  BYE",
		"Anything else runs as an immediate statement",
	}

	for _, s := range help {
		b.printLine(s)
	}
}
