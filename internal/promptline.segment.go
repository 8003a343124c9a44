package internal

import "regexp"

// Segment is the atomic renderable unit of a prompt: a named piece of text
// with an optional style. Segments are immutable once created; modules own
// the segments they create until they are handed to the evaluator.
type Segment struct {
	Name  string // diagnostic name, e.g. "symbol" or "output"
	Value string
	Style *Style
}

// NewSegment creates an unstyled segment
func NewSegment(name, value string) *Segment {
	return &Segment{Name: name, Value: value}
}

// NewStyledSegment creates a segment with a style
func NewStyledSegment(name, value string, style *Style) *Segment {
	return &Segment{Name: name, Value: value, Style: style}
}

// WithStyle returns a copy of the segment carrying the given style. The
// original is left untouched.
func (s *Segment) WithStyle(style *Style) *Segment {
	return &Segment{Name: s.Name, Value: s.Value, Style: style}
}

// AnsiString renders the segment with its style applied and every escape
// sequence wrapped in the shell's zero-width markers, so line editors do
// not count the color codes against the prompt width.
func (s *Segment) AnsiString(shell Shell) string {
	if s == nil {
		return ""
	}
	return wrapAnsiForShell(s.Style.Render(s.Value), shell)
}

// sgrSequence matches ANSI SGR escape sequences
var sgrSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

// wrapAnsiForShell wraps each escape sequence in the zero-width markers the
// shell's line editor understands. Shells without such markers get the raw
// sequences.
func wrapAnsiForShell(text string, shell Shell) string {
	var openMark, closeMark string
	switch shell {
	case ShellBash:
		openMark, closeMark = "\\[", "\\]"
	case ShellZsh:
		openMark, closeMark = "%{", "%}"
	default:
		return text
	}
	return sgrSequence.ReplaceAllStringFunc(text, func(seq string) string {
		return openMark + seq + closeMark
	})
}

// SegmentsPlainText concatenates segment values with no styling. Used for
// width accounting and tests.
func SegmentsPlainText(segments []*Segment) string {
	var out string
	for _, segment := range segments {
		out += segment.Value
	}
	return out
}

// SegmentsAnsiString concatenates fully rendered segments for a shell
func SegmentsAnsiString(segments []*Segment, shell Shell) string {
	var out string
	for _, segment := range segments {
		out += segment.AnsiString(shell)
	}
	return out
}
