package logscan

import (
	"strings"
	"testing"
	"time"
)

var analyzeNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

const rankedInput = `2026-08-25T11:58:01Z ERROR db connection to 10.0.1.24 timed out after 30s
2026-08-25T11:58:05Z ERROR db connection to 10.0.2.31 timed out after 30s
2026-08-25T11:58:09Z ERROR db connection to 10.0.3.77 timed out after 30s
2026-08-25T11:59:00Z INFO request served in 12ms
2026-08-25T11:59:01Z INFO request served in 9ms
2026-08-25T11:59:02Z INFO request served in 31ms
2026-08-25T11:59:03Z INFO request served in 8ms
2026-08-25T11:59:04Z INFO request served in 14ms
2026-08-25T11:59:30Z FATAL out of memory
`

func TestAnalyzeRanksByScore(t *testing.T) {
	report, err := Analyze(strings.NewReader(rankedInput), "app.log", 0, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.LinesRead != 9 || report.Parsed != 9 || report.Matched != 9 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.TotalGroups != 3 || len(report.Groups) != 3 {
		t.Fatalf("unexpected group count: %+v", report)
	}

	wantOrder := []struct {
		severity string
		count    int
		score    int
	}{
		{SeverityError, 3, 240},
		{SeverityFatal, 1, 100},
		{SeverityInfo, 5, 50},
	}
	for i, want := range wantOrder {
		g := report.Groups[i]
		if g.Severity != want.severity || g.Count != want.count || g.Score != want.score {
			t.Fatalf("group %d = %+v, want %+v", i, g, want)
		}
	}

	if report.Counts[SeverityError] != 3 || report.Counts[SeverityInfo] != 5 || report.Counts[SeverityFatal] != 1 {
		t.Fatalf("unexpected severity counts: %v", report.Counts)
	}
}

func TestAnalyzeGroupsBySignature(t *testing.T) {
	report, err := Analyze(strings.NewReader(rankedInput), "app.log", 0, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	top := report.Groups[0]
	if top.Signature != "ERROR db connection to #.#.#.# timed out after #s" {
		t.Fatalf("unexpected signature: %q", top.Signature)
	}
	if top.Sample != "ERROR db connection to 10.0.1.24 timed out after 30s" {
		t.Fatalf("unexpected sample: %q", top.Sample)
	}
	if top.First.IsZero() || top.Last.IsZero() || !top.First.Before(top.Last) {
		t.Fatalf("unexpected first/last range: %v .. %v", top.First, top.Last)
	}
}

func TestAnalyzeScoreTieFallsToCount(t *testing.T) {
	// one FATAL scores 100, ten INFO score 100 as well
	var b strings.Builder
	b.WriteString("FATAL boot loop detected\n")
	for i := 0; i < 10; i++ {
		b.WriteString("INFO heartbeat ok\n")
	}

	report, err := Analyze(strings.NewReader(b.String()), "app.log", 0, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("unexpected group count: %d", len(report.Groups))
	}
	if report.Groups[0].Severity != SeverityInfo || report.Groups[1].Severity != SeverityFatal {
		t.Fatalf("tie on score should prefer the larger count: %+v", report.Groups)
	}
}

func TestAnalyzeCountTieFallsToFirstLine(t *testing.T) {
	input := "ERROR alpha failed 1\nERROR beta failed 2\nERROR alpha failed 3\nERROR beta failed 4\n"

	report, err := Analyze(strings.NewReader(input), "app.log", 0, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("unexpected group count: %d", len(report.Groups))
	}
	if report.Groups[0].Signature != "ERROR alpha failed #" {
		t.Fatalf("full tie should keep the earlier group first: %+v", report.Groups)
	}
	if report.Groups[0].FirstLine != 1 || report.Groups[1].FirstLine != 2 {
		t.Fatalf("unexpected first lines: %+v", report.Groups)
	}
}

func TestAnalyzeTopLimitsGroups(t *testing.T) {
	input := "ERROR one thing\nWARN another thing\nINFO a third thing\n"

	report, err := Analyze(strings.NewReader(input), "app.log", 0, 2, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("expected 2 reported groups, got %d", len(report.Groups))
	}
	if report.TotalGroups != 3 {
		t.Fatalf("expected 3 total groups, got %d", report.TotalGroups)
	}
}

func TestAnalyzeWindowExcludesOldAndUndated(t *testing.T) {
	input := "2026-08-25T11:58:00Z ERROR recent failure\n" +
		"2026-08-25T09:00:00Z ERROR ancient failure\n" +
		"ERROR failure with no timestamp\n"

	report, err := Analyze(strings.NewReader(input), "app.log", 5, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Parsed != 3 {
		t.Fatalf("expected 3 parsed entries, got %d", report.Parsed)
	}
	if report.Matched != 1 {
		t.Fatalf("windowed run should keep only the recent entry, matched %d", report.Matched)
	}
	if len(report.Groups) != 1 || report.Groups[0].Sample != "ERROR recent failure" {
		t.Fatalf("unexpected groups: %+v", report.Groups)
	}
}

func TestAnalyzeZeroWindowKeepsEverything(t *testing.T) {
	input := "2026-08-25T09:00:00Z ERROR ancient failure\nERROR failure with no timestamp\n"

	report, err := Analyze(strings.NewReader(input), "app.log", 0, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Matched != 2 {
		t.Fatalf("unwindowed run should keep all entries, matched %d", report.Matched)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	report, err := Analyze(strings.NewReader(""), "empty.log", 0, 10, analyzeNow)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.LinesRead != 0 || report.Parsed != 0 || report.Matched != 0 || len(report.Groups) != 0 {
		t.Fatalf("expected an empty report, got %+v", report)
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`user "alice" not found`, "user # not found"},
		{`user 'bob' not found`, "user # not found"},
		{"request 0xdeadbeef failed", "request # failed"},
		{"session a1b2c3d4e5f6 closed after 120 ms", "session # closed after # ms"},
		{"worker abc123 idle", "worker abc# idle"},
		{"spaced    out\tmessage", "spaced out message"},
		{"no variables here", "no variables here"},
	}

	for _, tt := range tests {
		if got := Signature(tt.in); got != tt.want {
			t.Fatalf("Signature(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSeverityWeight(t *testing.T) {
	tests := []struct {
		severity string
		want     int
	}{
		{SeverityFatal, 100},
		{SeverityError, 80},
		{SeverityWarn, 40},
		{SeverityInfo, 10},
		{SeverityDebug, 5},
		{SeverityUnknown, 10},
	}

	for _, tt := range tests {
		if got := severityWeight(tt.severity); got != tt.want {
			t.Fatalf("severityWeight(%q) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}
