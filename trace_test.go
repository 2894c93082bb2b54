package main

import (
	"strings"
	"testing"
)

func TestSwitchSetting(t *testing.T) {

	if switchSetting(true) != "ON" || switchSetting(false) != "OFF" {
		t.Error("switchSetting is wrong")
	}
}

func TestPluralize(t *testing.T) {

	tests := []struct {
		num  int64
		want string
	}{
		{0, "statements"},
		{1, "statement"},
		{2, "statements"},
	}

	for _, tc := range tests {
		if got := pluralize("statement", tc.num); got != tc.want {
			t.Errorf("pluralize(%d) = %q, want %q", tc.num, got, tc.want)
		}
	}
}

func TestFormatCPUTime(t *testing.T) {

	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
	}

	for _, tc := range tests {
		if got := formatCPUTime(tc.secs); got != tc.want {
			t.Errorf("formatCPUTime(%d) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}

func TestCmdTraceToggles(t *testing.T) {

	b, scr := testBasic()

	b.cmdTrace("EXEC")
	if !b.traceExec {
		t.Error("TRACE EXEC did not enable the trace")
	}
	if !strings.Contains(scr.buf.String(), "traceExec ON") {
		t.Errorf("output = %q", scr.buf.String())
	}

	b.cmdTrace("EXEC")
	if b.traceExec {
		t.Error("second TRACE EXEC did not disable the trace")
	}

	b.cmdTrace("DUMP")
	if !b.traceDump {
		t.Error("TRACE DUMP did not enable line dumping")
	}

	scr.buf.Reset()
	b.cmdTrace("BOGUS")
	if !strings.Contains(scr.buf.String(), "Usage") {
		t.Errorf("no usage message: %q", scr.buf.String())
	}
}

func TestTraceExecOutput(t *testing.T) {

	b, scr := testBasic(
		"10 GOSUB 30",
		"20 END",
		"30 RETURN",
	)

	b.traceExec = true
	b.cmdRun()

	out := scr.buf.String()

	for _, tag := range []string{"[10]", "[30]", "[20]"} {
		if !strings.Contains(out, tag) {
			t.Errorf("trace output %q is missing %s", out, tag)
		}
	}
}

func TestCmdStats(t *testing.T) {

	b, scr := testBasic()

	b.cmdStats("ON")
	if !b.printStats {
		t.Error("STATS ON did not enable statistics")
	}

	b.cmdStats("")
	if b.printStats {
		t.Error("bare STATS did not toggle off")
	}

	scr.buf.Reset()
	b.cmdStats("MAYBE")
	if !strings.Contains(scr.buf.String(), "Usage") {
		t.Errorf("no usage message: %q", scr.buf.String())
	}
}

func TestStatisticsAfterRun(t *testing.T) {

	b, scr := testBasic(
		"10 PRINT 1",
		"20 END",
	)

	b.printStats = true
	b.cmdRun()

	out := scr.buf.String()

	if !strings.Contains(out, "CPU usage") {
		t.Errorf("no CPU usage line: %q", out)
	}
	if !strings.Contains(out, "statements executed") {
		t.Errorf("no statement count: %q", out)
	}
}

func TestGetCPUInfo(t *testing.T) {

	utime, stime := getCPUInfo()

	if utime < 0 || stime < 0 {
		t.Errorf("getCPUInfo = %d, %d", utime, stime)
	}
}
