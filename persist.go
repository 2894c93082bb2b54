package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//
// Program files are plain text, one '<number> <text>' record per
// line, ascending.  LOAD goes through the normal store-line path,
// so keyword normalization and cursor invalidation apply the same
// as typed-in lines
//

//
// Take a program filename and sanity check any suffix, appending
// '.bas' if there is none
//

func programFilename(name string) (string, bool) {

	name = strings.Trim(strings.TrimSpace(name), "\"")

	if name == "" || strings.ContainsAny(name, " \t") {
		return "", false
	}

	dot := strings.IndexByte(name, '.')

	switch {
	case dot < 0:
		return name + basFileSuffix, true

	case name[dot:] == basFileSuffix:
		return name, true
	}

	return "", false
}

func (b *basic) cmdSave(args string) {

	name, ok := programFilename(args)
	if !ok {
		b.printLine("Invalid filename")
		return
	}

	f, err := os.Create(name)
	if err != nil {
		b.printLine(fmt.Sprintf("Unable to save %q (%v)", name, err))
		return
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	for ln := b.env.firstLine(); ln != nil; ln = b.env.nextLine(ln) {
		fmt.Fprintf(w, "%d %s\n", ln.number, ln.text)
	}

	if err := w.Flush(); err != nil {
		b.printLine(fmt.Sprintf("Unable to save %q (%v)", name, err))
	}
}

//
// LOAD "file"[,R]: replace the current program; ',R' runs it after
// loading
//

func (b *basic) cmdLoad(args string) {

	andRun := false

	if i := strings.LastIndexByte(args, ','); i >= 0 {
		opt := strings.ToUpper(strings.TrimSpace(args[i+1:]))
		if opt == "R" {
			andRun = true
			args = args[:i]
		}
	}

	name, ok := programFilename(args)
	if !ok {
		b.printLine("Invalid filename")
		return
	}

	if !b.loadProgram(name) {
		return
	}

	if andRun {
		b.cmdRun()
	}
}

func (b *basic) loadProgram(name string) bool {

	f, err := os.Open(name)
	if err != nil {
		b.printLine(fmt.Sprintf("Unable to load %q (%v)", name, err))
		return false
	}
	defer f.Close()

	b.env.reset()

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		record := strings.TrimSpace(scanner.Text())

		// anything not starting with a digit is skipped

		if record == "" || !isDigit(record[0]) {
			continue
		}

		i := 0
		for i < len(record) && isDigit(record[i]) {
			i++
		}

		number, err := strconv.Atoi(record[:i])
		if err != nil || number <= 0 || number > maxLineNo {
			continue
		}

		b.storeLine(number, strings.TrimLeft(record[i:], " \t"))
	}

	if err := scanner.Err(); err != nil {
		b.printLine(fmt.Sprintf("Unable to load %q (%v)", name, err))
		return false
	}

	return true
}
