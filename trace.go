package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goforj/godump"
	"github.com/tklauser/go-sysconf"
)

//
// TRACE EXEC toggles the per-line execution trace; TRACE DUMP
// toggles dumping stored lines as they are entered
//

func (b *basic) cmdTrace(args string) {

	switch strings.ToUpper(strings.TrimSpace(args)) {

	case "EXEC":
		b.traceExec = !b.traceExec
		b.printLine("traceExec " + switchSetting(b.traceExec))

	case "DUMP":
		b.traceDump = !b.traceDump
		b.printLine("traceDump " + switchSetting(b.traceDump))

	default:
		b.printLine("Usage: TRACE EXEC|DUMP")
	}
}

func (b *basic) cmdStats(args string) {

	switch strings.ToUpper(strings.TrimSpace(args)) {

	case "ON":
		b.printStats = true

	case "OFF":
		b.printStats = false

	case "":
		b.printStats = !b.printStats

	default:
		b.printLine("Usage: STATS [ON|OFF]")
		return
	}

	b.printLine("stats " + switchSetting(b.printStats))
}

func switchSetting(on bool) string {

	if on {
		return "ON"
	}

	return "OFF"
}

//
// DUMP: pretty-print the variable and array tables
//

func (b *basic) cmdDump() {

	godump.Dump(b.env.vars)
	godump.Dump(b.env.arrays)
}

func (b *basic) dumpStoredLine(number int) {

	if !b.traceDump {
		return
	}

	if ln := b.env.lookupLine(number); ln != nil {
		godump.Dump(ln)
	}
}

//
// Run statistics: statement count plus elapsed/user/system CPU time,
// printed after a run when STATS is on
//

func (b *basic) initClock() {

	if !b.printStats {
		return
	}

	b.stats.elapsed = time.Now()
	b.stats.utime, b.stats.stime = getCPUInfo()
}

func (b *basic) printStatistics() {

	if !b.printStats {
		return
	}

	elapsed := time.Since(b.stats.elapsed)
	utime, stime := getCPUInfo()

	b.printLine(fmt.Sprintf("CPU usage: elapsed = %s / user = %s / system = %s",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-b.stats.utime),
		formatCPUTime(stime-b.stats.stime)))

	b.printLine(fmt.Sprintf("%d %s executed", b.stats.numStatements,
		pluralize("statement", b.stats.numStatements)))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func pluralize(str string, num int64) string {

	if num != 1 {
		str += "s"
	}

	return str
}

//
// User and system CPU time in seconds, from /proc/self/stat scaled
// by the clock tick rate
//

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck == 0 {
		return 0, 0
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}
