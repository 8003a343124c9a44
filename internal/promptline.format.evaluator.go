package internal

import "go.uber.org/zap"

// Bindings maps variable names to the segments and styles they resolved to
// for one render pass. A name missing from the table renders as empty, not
// as an error.
type Bindings struct {
	segments map[string][]*Segment
	styles   map[string]*Style
}

// NewBindings creates an empty binding table
func NewBindings() *Bindings {
	return &Bindings{
		segments: make(map[string][]*Segment),
		styles:   make(map[string]*Style),
	}
}

// BindSegments binds a variable name to its resolved segments. Binding an
// empty slice records that the variable resolved to nothing, which matters
// for conditional groups.
func (b *Bindings) BindSegments(name string, segments []*Segment) *Bindings {
	b.segments[name] = segments
	return b
}

// BindStyle binds a style variable for use in a group's style position
func (b *Bindings) BindStyle(name string, style *Style) *Bindings {
	b.styles[name] = style
	return b
}

// Segments looks up a segment binding
func (b *Bindings) Segments(name string) ([]*Segment, bool) {
	segments, ok := b.segments[name]
	return segments, ok
}

// Style looks up a style binding
func (b *Bindings) Style(name string) (*Style, bool) {
	style, ok := b.styles[name]
	return style, ok
}

// Evaluator walks a FormatAST and produces the final segment sequence
type Evaluator struct {
	bindings *Bindings
	logger   *zap.Logger
}

// NewEvaluator creates an evaluator over the given bindings
func NewEvaluator(bindings *Bindings, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bindings == nil {
		bindings = NewBindings()
	}
	return &Evaluator{bindings: bindings, logger: logger}
}

// Render evaluates the AST against the bindings and returns the resulting
// segments in template order.
func (e *Evaluator) Render(ast *FormatAST) []*Segment {
	segments, _, _ := e.renderNodes(ast.Children, nil)
	return segments
}

// renderNodes evaluates a node sequence under an inherited group style.
// It reports whether the sequence referenced any variable and whether any
// referenced variable produced non-empty output; enclosing groups gate on
// those two facts.
func (e *Evaluator) renderNodes(nodes []Node, inherited *Style) (segments []*Segment, sawVariable, sawContent bool) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *TextNode:
			segments = append(segments, NewStyledSegment(SegmentNameText, n.Content, inherited))

		case *VariableNode:
			sawVariable = true
			bound, ok := e.bindings.Segments(n.Name)
			if !ok {
				continue
			}
			for _, segment := range bound {
				if segment.Value != "" {
					sawContent = true
				}
				if segment.Style == nil && inherited != nil {
					segment = segment.WithStyle(inherited)
				}
				segments = append(segments, segment)
			}

		case *GroupNode:
			groupStyle := e.resolveGroupStyle(n, inherited)
			children, groupSawVariable, groupSawContent := e.renderNodes(n.Children, groupStyle)
			// The group's variables gate the enclosing group too, whether or
			// not this group survives.
			sawVariable = sawVariable || groupSawVariable
			sawContent = sawContent || groupSawContent
			if groupSawVariable && !groupSawContent {
				// Every variable in the group came up empty: drop the whole
				// group, literals and style included.
				continue
			}
			segments = append(segments, children...)
		}
	}
	return segments, sawVariable, sawContent
}

// resolveGroupStyle resolves a group's style position against the style
// bindings, falling back to the inherited style when the group has none.
func (e *Evaluator) resolveGroupStyle(group *GroupNode, inherited *Style) *Style {
	switch {
	case group.Style.Variable != "":
		style, ok := e.bindings.Style(group.Style.Variable)
		if !ok {
			e.logger.Debug("unresolved style variable", zap.String(LogFieldVariable, group.Style.Variable))
			return inherited
		}
		return style
	case group.Style.Literal != "":
		style, ok := ParseStyle(group.Style.Literal)
		if !ok {
			e.logger.Debug("invalid style descriptor", zap.String("style", group.Style.Literal))
			return inherited
		}
		return style
	default:
		return inherited
	}
}
