package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty line",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "panic: boom",
			expected: "panic: boom",
		},
		{
			name:     "invalid json",
			input:    `{"level":`,
			expected: `{"level":`,
		},
		{
			name:     "info entry",
			input:    `{"level":"info","ts":"2026-10-19T18:02:11.512+0200","logger":"app.menu","msg":"opening link","url":"https://youtu.be/x"}`,
			expected: "2026-10-19T18:02:11.512+0200 INFO  app.menu  opening link  url=https://youtu.be/x",
		},
		{
			name:     "fields sorted, caller dropped",
			input:    `{"level":"warn","ts":"t","caller":"screen/menu.go:140","msg":"menu error","error":"boom","attempt":2}`,
			expected: "t WARN   menu error  attempt=2 error=boom",
		},
		{
			name:     "debug without logger",
			input:    `{"level":"debug","ts":"t","msg":"dispatch"}`,
			expected: "t DEBUG  dispatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	input := []string{
		`{"level":"info","ts":"t","msg":"started"}`,
		"not json",
	}
	expected := []string{
		"t INFO   started",
		"not json",
	}

	result := FormatLines(input)
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("FormatLines() = %q, want %q", result, expected)
	}
}
