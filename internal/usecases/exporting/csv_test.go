package exporting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		rows     [][]any
		expected string
	}{
		{
			name:     "empty collection yields header-only document",
			headers:  []string{"A", "B"},
			rows:     [][]any{},
			expected: "A,B",
		},
		{
			name:     "plain fields pass through verbatim",
			headers:  []string{"ID", "Name"},
			rows:     [][]any{{1, "Alice"}, {2, "Bob"}},
			expected: "ID,Name\n1,Alice\n2,Bob",
		},
		{
			name:     "field with comma is quoted",
			headers:  []string{"Address"},
			rows:     [][]any{{"123 Main St, Apt 4"}},
			expected: "Address\n\"123 Main St, Apt 4\"",
		},
		{
			name:     "embedded quotes are doubled inside a quoted field",
			headers:  []string{"Note"},
			rows:     [][]any{{`He said "Hi"`}},
			expected: "Note\n\"He said \"\"Hi\"\"\"",
		},
		{
			name:     "field with newline is quoted",
			headers:  []string{"Note"},
			rows:     [][]any{{"line one\nline two"}},
			expected: "Note\n\"line one\nline two\"",
		},
		{
			name:     "nil renders as empty field",
			headers:  []string{"ID", "Email"},
			rows:     [][]any{{1, nil}},
			expected: "ID,Email\n1,",
		},
		{
			name:     "numbers and booleans use canonical text forms",
			headers:  []string{"Int", "Float", "Bool"},
			rows:     [][]any{{42, 3.5, true}},
			expected: "Int,Float,Bool\n42,3.5,true",
		},
		{
			name:     "header needing escaping is escaped too",
			headers:  []string{"Name, Full"},
			rows:     [][]any{},
			expected: "\"Name, Full\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encode(tt.headers, tt.rows))
		})
	}
}

func TestEncode_NoTrailingNewline(t *testing.T) {
	doc := Encode([]string{"A"}, [][]any{{"x"}, {"y"}})
	assert.NotEmpty(t, doc)
	assert.NotEqual(t, byte('\n'), doc[len(doc)-1])
}

func TestFormatCell(t *testing.T) {
	name := "Wanjiku"
	var absent *string

	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "", formatCell(absent))
	assert.Equal(t, "Wanjiku", formatCell(&name))
	assert.Equal(t, "7", formatCell(int64(7)))
	assert.Equal(t, "false", formatCell(false))
	assert.Equal(t, "0.5", formatCell(0.5))
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "leads-2025-03-09.csv", Filename("leads", now))
	assert.Equal(t, "submissions-2025-03-09.csv", Filename("submissions", now))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := WriteFile(path, []string{"A", "B"}, [][]any{{1, "x, y"}})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A,B\n1,\"x, y\"", string(content))
}

func TestWriteFile_FailureDoesNotAffectEncode(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), []string{"A"}, nil)
	require.Error(t, err)

	assert.Equal(t, "A", Encode([]string{"A"}, nil))
}
