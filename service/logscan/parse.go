package logscan

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwltypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// parseEntries turns raw input into entries. A filter-log-events export is
// consumed as one document; anything else is read line by line, with
// JSON-lines records tried before plain text.
func parseEntries(data []byte, now time.Time) ([]Entry, int) {
	if entries, ok := parseEventsDoc(data); ok {
		return entries, len(entries)
	}

	rawLines := strings.Split(string(data), "\n")
	lines := len(rawLines)
	if lines > 0 && rawLines[lines-1] == "" {
		lines--
	}

	var entries []Entry
	for i, raw := range rawLines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		e, ok := parseJSONLine(line)
		if !ok {
			e = parseTextLine(line, now)
		}
		e.Line = i + 1
		entries = append(entries, e)
	}

	return entries, lines
}

type eventsDoc struct {
	Events []cwltypes.FilteredLogEvent `json:"events"`
}

// parseEventsDoc detects a CloudWatch Logs filter-log-events export: a
// single JSON object carrying a non-empty events array with millisecond
// epoch timestamps.
func parseEventsDoc(data []byte) ([]Entry, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var doc eventsDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil || len(doc.Events) == 0 {
		return nil, false
	}

	entries := make([]Entry, 0, len(doc.Events))
	for i, ev := range doc.Events {
		msg := strings.TrimSpace(aws.ToString(ev.Message))
		e := Entry{
			Line:     i + 1,
			Message:  msg,
			Severity: severityFromText(msg),
		}
		if ev.Timestamp != nil {
			e.Timestamp = time.UnixMilli(aws.ToInt64(ev.Timestamp)).UTC()
		}
		entries = append(entries, e)
	}

	return entries, true
}

// parseJSONLine reads one structured record in the slog/zap style. The
// level field wins over tokens in the message; records without a message
// are rejected so the caller can fall back to text parsing.
func parseJSONLine(line string) (Entry, bool) {
	if !strings.HasPrefix(line, "{") {
		return Entry{}, false
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		return Entry{}, false
	}

	e := Entry{}

	for _, k := range []string{"msg", "message"} {
		if v, ok := m[k].(string); ok && v != "" {
			e.Message = v
			break
		}
	}
	if e.Message == "" {
		return Entry{}, false
	}

	e.Severity = severityFromText(e.Message)
	for _, k := range []string{"level", "severity", "lvl"} {
		if v, ok := m[k].(string); ok && v != "" {
			e.Severity = normalizeSeverity(v)
			break
		}
	}

	for _, k := range []string{"time", "timestamp", "ts"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if ts, ok := parseTimestamp(t); ok {
				e.Timestamp = ts
			}
		case float64:
			e.Timestamp = epochToTime(t)
		}
		break
	}

	return e, true
}

var textTimeLayouts = []struct {
	layout string
	fields int
}{
	{time.RFC3339Nano, 1},
	{"2006-01-02 15:04:05,000", 2},
	{"2006-01-02 15:04:05", 2},
	{"2006/01/02 15:04:05", 2},
	{time.Stamp, 3},
}

// parseTextLine reads one plain line: a best-effort leading timestamp,
// then the leftmost severity token of the remaining message.
func parseTextLine(line string, now time.Time) Entry {
	e := Entry{Message: line}

	for _, c := range textTimeLayouts {
		head, rest, ok := splitFields(line, c.fields)
		if !ok {
			continue
		}
		ts, err := time.Parse(c.layout, head)
		if err != nil {
			continue
		}
		if ts.Year() == 0 {
			// syslog stamps carry no year
			ts = ts.AddDate(now.Year(), 0, 0)
		}
		e.Timestamp = ts
		e.Message = rest
		break
	}

	e.Severity = severityFromText(e.Message)
	return e
}

// splitFields cuts line after its first n whitespace-separated fields,
// preserving the spacing inside the head.
func splitFields(line string, n int) (head, rest string, ok bool) {
	i := 0
	for f := 0; f < n; f++ {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i == len(line) {
			return "", "", false
		}
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			i++
		}
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i:]), true
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05,000", "2006-01-02 15:04:05", "2006/01/02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// epochToTime treats values above 1e12 as millisecond epochs; zap emits
// seconds with a fraction.
func epochToTime(v float64) time.Time {
	if v > 1e12 {
		return time.UnixMilli(int64(v)).UTC()
	}
	sec := int64(v)
	nsec := int64((v - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

var severityPattern = regexp.MustCompile(`(?i)\b(FATAL|CRITICAL|PANIC|ERROR|ERR|WARNING|WARN|INFO|DEBUG|TRACE)\b`)

// severityFromText maps the leftmost severity token of a message onto the
// canonical levels.
func severityFromText(s string) string {
	tok := severityPattern.FindString(s)
	if tok == "" {
		return SeverityUnknown
	}
	return normalizeSeverity(tok)
}

func normalizeSeverity(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FATAL", "CRITICAL", "PANIC":
		return SeverityFatal
	case "ERROR", "ERR":
		return SeverityError
	case "WARN", "WARNING":
		return SeverityWarn
	case "INFO":
		return SeverityInfo
	case "DEBUG", "TRACE":
		return SeverityDebug
	default:
		return SeverityUnknown
	}
}
