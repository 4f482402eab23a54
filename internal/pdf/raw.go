package pdf

import (
	"regexp"
	"strings"
)

// literalStringRe matches PDF literal strings in uncompressed content
// streams, including escaped parentheses and backslashes.
var literalStringRe = regexp.MustCompile(`\(((?:\\.|[^()\\])+)\)`)

// RawText decodes raw PDF bytes into whatever text is directly readable,
// bypassing the structured text acquisition tier. It is only consulted when
// acquisition under-performs, which for the known layout means the document
// was written with uncompressed content streams.
type RawText struct {
	maxTextSize int
}

// NewRawText creates a raw text decoder.
func NewRawText() *RawText {
	return &RawText{
		maxTextSize: 10 * 1024 * 1024,
	}
}

// DecodeRaw recovers text straight from the document bytes. Literal strings
// from content streams are preferred; when a document carries none, runs of
// printable characters are kept instead.
func (d *RawText) DecodeRaw(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > d.maxTextSize {
		data = data[:d.maxTextSize]
	}

	text := string(data)

	var parts []string
	for _, m := range literalStringRe.FindAllStringSubmatch(text, -1) {
		part := unescapeLiteral(m[1])
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}

	return printableRuns(text)
}

// unescapeLiteral resolves PDF string escapes.
func unescapeLiteral(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var builder strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			builder.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 't':
			builder.WriteByte('\t')
		default:
			builder.WriteByte(s[i])
		}
	}
	return builder.String()
}

// printableRuns keeps runs of at least four printable characters, dropping
// the binary portions of the document.
func printableRuns(text string) string {
	var builder strings.Builder
	var run strings.Builder

	flush := func() {
		if run.Len() >= 4 {
			if builder.Len() > 0 {
				builder.WriteByte('\n')
			}
			builder.WriteString(run.String())
		}
		run.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 0x20 && c < 0x7f {
			run.WriteByte(c)
			continue
		}
		flush()
	}
	flush()

	return builder.String()
}
