package internal

// Module is a named unit of prompt content: an optional prefix and suffix
// around an ordered sequence of segments. Modules are created by a builtin
// detector or the custom module executor during one resolution pass and
// consumed immediately by the evaluator.
type Module struct {
	Name        string
	Description string
	// ConfigTable is the raw configuration table the module was built from,
	// kept for diagnostics. Nil for modules without configuration.
	ConfigTable map[string]any

	prefix   *Segment
	suffix   *Segment
	segments []*Segment
}

// NewModule creates an empty module
func NewModule(name, description string, configTable map[string]any) *Module {
	return &Module{
		Name:        name,
		Description: description,
		ConfigTable: configTable,
		prefix:      NewSegment(name+"_prefix", ""),
		suffix:      NewSegment(name+"_suffix", ""),
	}
}

// SetPrefix sets the module's prefix text
func (m *Module) SetPrefix(value string) { m.prefix = NewSegment(m.Name+"_prefix", value) }

// SetSuffix sets the module's suffix text
func (m *Module) SetSuffix(value string) { m.suffix = NewSegment(m.Name+"_suffix", value) }

// CreateSegment appends a styled content segment and returns it
func (m *Module) CreateSegment(name, value string, style *Style) *Segment {
	segment := NewStyledSegment(name, value, style)
	m.segments = append(m.segments, segment)
	return segment
}

// SetSegments replaces the module's content segments
func (m *Module) SetSegments(segments []*Segment) { m.segments = segments }

// Segments returns prefix, content and suffix as one flat sequence,
// skipping empty prefix/suffix.
func (m *Module) Segments() []*Segment {
	out := make([]*Segment, 0, len(m.segments)+2)
	if m.prefix.Value != "" {
		out = append(out, m.prefix)
	}
	out = append(out, m.segments...)
	if m.suffix.Value != "" {
		out = append(out, m.suffix)
	}
	return out
}

// PlainText returns the module's unstyled text
func (m *Module) PlainText() string {
	return SegmentsPlainText(m.Segments())
}

// AnsiString renders the module for a shell
func (m *Module) AnsiString(shell Shell) string {
	return SegmentsAnsiString(m.Segments(), shell)
}
