// Package logscan ranks the notable entries of a log file. It reads plain
// text lines, JSON-lines records, and filter-log-events export documents,
// groups entries by severity and message shape, and scores the groups.
package logscan

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Canonical severities, most urgent first.
const (
	SeverityFatal   = "FATAL"
	SeverityError   = "ERROR"
	SeverityWarn    = "WARN"
	SeverityInfo    = "INFO"
	SeverityDebug   = "DEBUG"
	SeverityUnknown = "UNKNOWN"
)

// Severities lists the canonical levels in reporting order.
var Severities = []string{SeverityFatal, SeverityError, SeverityWarn, SeverityInfo, SeverityDebug, SeverityUnknown}

// Entry is one parsed log record. Timestamp is zero when none could be
// parsed from the record.
type Entry struct {
	Line      int
	Timestamp time.Time
	Severity  string
	Message   string
}

// Group is a cluster of entries sharing a severity and message signature.
type Group struct {
	Severity  string
	Signature string
	Count     int
	Score     int
	Sample    string
	First     time.Time
	Last      time.Time
	FirstLine int
}

// Report is the ranked analysis of one log file. Counts covers the entries
// inside the window; Groups holds the top-ranked clusters.
type Report struct {
	Path        string
	SinceMin    int
	LinesRead   int
	Parsed      int
	Matched     int
	Counts      map[string]int
	Groups      []Group
	TotalGroups int
}

// Analyze reads the whole input and ranks its entries. sinceMin zero
// applies no time filter; with a positive window, entries whose timestamp
// could not be parsed are left out. The top highest-scoring groups are
// reported; ties go to the larger count, then the earlier first appearance.
func Analyze(r io.Reader, path string, sinceMin, top int, now time.Time) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read log input: %w", err)
	}

	entries, linesRead := parseEntries(data, now)

	report := Report{
		Path:      path,
		SinceMin:  sinceMin,
		LinesRead: linesRead,
		Parsed:    len(entries),
		Counts:    map[string]int{},
	}

	var cutoff time.Time
	if sinceMin > 0 {
		cutoff = now.Add(-time.Duration(sinceMin) * time.Minute)
	}

	grouped := map[string]*Group{}
	var order []*Group

	for _, e := range entries {
		if sinceMin > 0 && (e.Timestamp.IsZero() || e.Timestamp.Before(cutoff)) {
			continue
		}

		report.Matched++
		report.Counts[e.Severity]++

		sig := Signature(e.Message)
		key := e.Severity + "\x00" + sig

		g, ok := grouped[key]
		if !ok {
			g = &Group{Severity: e.Severity, Signature: sig, Sample: e.Message, FirstLine: e.Line}
			grouped[key] = g
			order = append(order, g)
		}

		g.Count++
		if !e.Timestamp.IsZero() {
			if g.First.IsZero() || e.Timestamp.Before(g.First) {
				g.First = e.Timestamp
			}
			if e.Timestamp.After(g.Last) {
				g.Last = e.Timestamp
			}
		}
	}

	for _, g := range order {
		g.Score = severityWeight(g.Severity) * g.Count
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Score != order[j].Score {
			return order[i].Score > order[j].Score
		}
		if order[i].Count != order[j].Count {
			return order[i].Count > order[j].Count
		}
		return order[i].FirstLine < order[j].FirstLine
	})

	report.TotalGroups = len(order)
	if top > len(order) {
		top = len(order)
	}
	for _, g := range order[:top] {
		report.Groups = append(report.Groups, *g)
	}

	return report, nil
}

var (
	signatureQuoted = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	signatureHex    = regexp.MustCompile(`\b(?:0x)?[0-9a-fA-F]{8,}\b`)
	signatureDigits = regexp.MustCompile(`\d+`)
)

// Signature collapses the variable parts of a message so repeated events
// group together regardless of IDs, counts, and quoted values.
func Signature(msg string) string {
	s := signatureQuoted.ReplaceAllString(msg, "#")
	s = signatureHex.ReplaceAllString(s, "#")
	s = signatureDigits.ReplaceAllString(s, "#")
	return strings.Join(strings.Fields(s), " ")
}

func severityWeight(sev string) int {
	switch sev {
	case SeverityFatal:
		return 100
	case SeverityError:
		return 80
	case SeverityWarn:
		return 40
	case SeverityInfo:
		return 10
	case SeverityDebug:
		return 5
	default:
		return 10
	}
}
