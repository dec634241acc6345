package logtail

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// entryKeys are the fields Format prints in fixed positions.
var entryKeys = map[string]struct{}{
	"ts": {}, "level": {}, "logger": {}, "msg": {}, "caller": {}, "stacktrace": {},
}

// Format renders one JSON log entry as
//
//	2026-10-19T18:02:11.512+0200 WARN  menu  showing error  error=boom
//
// Lines that are not JSON objects come back unchanged.
func Format(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return line
	}
	entry := gjson.Parse(trimmed)

	var b strings.Builder
	b.WriteString(entry.Get("ts").String())
	b.WriteString(" ")
	b.WriteString(padLevel(strings.ToUpper(entry.Get("level").String())))
	if name := entry.Get("logger").String(); name != "" {
		b.WriteString(" ")
		b.WriteString(name)
	}
	b.WriteString("  ")
	b.WriteString(entry.Get("msg").String())

	var fields []string
	entry.ForEach(func(k, v gjson.Result) bool {
		if _, fixed := entryKeys[k.String()]; !fixed {
			fields = append(fields, k.String()+"="+v.String())
		}
		return true
	})
	sort.Strings(fields)
	if len(fields) > 0 {
		b.WriteString("  ")
		b.WriteString(strings.Join(fields, " "))
	}
	return b.String()
}

// FormatLines applies Format to every line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func padLevel(level string) string {
	if len(level) >= 5 {
		return level
	}
	return level + strings.Repeat(" ", 5-len(level))
}
