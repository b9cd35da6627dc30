package exporting

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Encode renders a header row plus data rows as a comma-separated document.
// Fields containing a comma, a double quote or a newline are wrapped in
// double quotes with inner quotes doubled; everything else passes through
// verbatim, so the output round-trips. Rows are joined with a single newline
// and there is no trailing newline; with zero rows the result is exactly the
// escaped header line.
//
// Rows are expected to match the header length. A mismatched row produces
// misaligned columns, not an error; callers own that contract.
func Encode(headers []string, rows [][]any) string {
	var b strings.Builder

	for i, header := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeField(header))
	}

	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeField(formatCell(cell)))
		}
	}

	return b.String()
}

// escapeField quotes a field when it contains a comma, quote or newline.
func escapeField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// formatCell converts a scalar cell to its canonical text form. Absent values
// render as the empty string.
func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	default:
		return fmt.Sprint(v)
	}
}

// Filename builds the date-stamped download name for an export.
func Filename(stem string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", stem, now.Format("2006-01-02"))
}

// WriteFile writes an encoded document to path, for use outside an HTTP
// response (nightly dumps, local tooling). The write is synchronous and the
// handle is closed before returning; a failure here never affects Encode.
func WriteFile(path string, headers []string, rows [][]any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(Encode(headers, rows)); err != nil {
		return err
	}

	return f.Sync()
}
