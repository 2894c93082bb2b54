package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProgramFilename(t *testing.T) {

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"demo", "demo.bas", true},
		{`"demo"`, "demo.bas", true},
		{"demo.bas", "demo.bas", true},
		{`"demo.bas"`, "demo.bas", true},
		{"demo.txt", "", false},
		{"two words", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		got, ok := programFilename(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("programFilename(%q) = %q, %v, want %q, %v",
				tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {

	path := filepath.Join(t.TempDir(), "demo.bas")

	b, _ := testBasic(
		`10 PRINT "one"`,
		"20 GOTO 40",
		`30 PRINT "skipped"`,
		"40 END",
	)

	b.cmdSave(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved program: %v", err)
	}

	want := "10 PRINT \"one\"\n20 GOTO 40\n30 PRINT \"skipped\"\n40 END\n"
	if string(data) != want {
		t.Errorf("saved file = %q, want %q", data, want)
	}

	// load replaces the current program

	b.processLine("NEW")
	b.processLine(`10 PRINT "leftover"`)

	b.cmdLoad(path)

	if ln := b.env.lookupLine(10); ln == nil || ln.text != `PRINT "one"` {
		t.Errorf("line 10 after load = %+v", ln)
	}
	if !b.env.lineExists(40) {
		t.Error("line 40 missing after load")
	}
}

func TestLoadAndRun(t *testing.T) {

	path := filepath.Join(t.TempDir(), "demo.bas")

	src, scr := testBasic(`10 PRINT "ran"`)
	src.cmdSave(path)
	scr.buf.Reset()

	b, out := testBasic()
	b.cmdLoad(path + ",R")

	if got := out.buf.String(); got != "ran\n" {
		t.Errorf("output = %q, want %q", got, "ran\n")
	}
}

func TestLoadSkipsJunkRecords(t *testing.T) {

	path := filepath.Join(t.TempDir(), "demo.bas")

	contents := "junk header\n10 PRINT 1\n\nnot a line\n20 END\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	b, _ := testBasic()

	if !b.loadProgram(path) {
		t.Fatal("loadProgram failed")
	}

	var numbers []int
	for ln := b.env.firstLine(); ln != nil; ln = b.env.nextLine(ln) {
		numbers = append(numbers, ln.number)
	}

	if len(numbers) != 2 || numbers[0] != 10 || numbers[1] != 20 {
		t.Errorf("loaded lines = %v, want [10 20]", numbers)
	}
}

func TestLoadMissingFile(t *testing.T) {

	b, scr := testBasic()

	if b.loadProgram(filepath.Join(t.TempDir(), "nope.bas")) {
		t.Error("loadProgram claimed success on a missing file")
	}

	if scr.buf.Len() == 0 {
		t.Error("no diagnostic for a missing file")
	}
}
