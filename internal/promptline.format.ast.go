package internal

import (
	"fmt"
	"strings"
)

// NodeType identifies the kind of a format AST node
type NodeType int

const (
	NodeTypeText NodeType = iota
	NodeTypeVariable
	NodeTypeGroup
)

// Position represents a location in the source format string
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Node is the interface all format AST nodes implement
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
}

// TextNode represents literal text content
type TextNode struct {
	pos     Position
	Content string
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType { return NodeTypeText }

// Pos returns the source position
func (n *TextNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *TextNode) String() string {
	return fmt.Sprintf("TextNode{%q @ %s}", n.Content, n.pos)
}

// NewTextNode creates a new text node
func NewTextNode(content string, pos Position) *TextNode {
	return &TextNode{pos: pos, Content: content}
}

// VariableNode represents a $name reference
type VariableNode struct {
	pos  Position
	Name string
}

// Type returns NodeTypeVariable
func (n *VariableNode) Type() NodeType { return NodeTypeVariable }

// Pos returns the source position
func (n *VariableNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *VariableNode) String() string {
	return fmt.Sprintf("VariableNode{$%s @ %s}", n.Name, n.pos)
}

// NewVariableNode creates a new variable node
func NewVariableNode(name string, pos Position) *VariableNode {
	return &VariableNode{pos: pos, Name: name}
}

// StyleRef is the style position of a group: either a literal style
// descriptor or a $variable resolved against the style bindings at render
// time. At most one of the fields is set; both empty means the group carries
// no style of its own.
type StyleRef struct {
	Literal  string
	Variable string
}

// IsZero reports whether the group has no style of its own
func (s StyleRef) IsZero() bool { return s.Literal == "" && s.Variable == "" }

// GroupNode represents a [content](style) group. The group is dropped at
// render time unless at least one variable inside it produced output.
type GroupNode struct {
	pos      Position
	Children []Node
	Style    StyleRef
}

// Type returns NodeTypeGroup
func (n *GroupNode) Type() NodeType { return NodeTypeGroup }

// Pos returns the source position
func (n *GroupNode) Pos() Position { return n.pos }

// String returns a string representation
func (n *GroupNode) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("GroupNode{children=%d", len(n.Children)))
	if n.Style.Literal != "" {
		sb.WriteString(fmt.Sprintf(", style=%q", n.Style.Literal))
	}
	if n.Style.Variable != "" {
		sb.WriteString(fmt.Sprintf(", style=$%s", n.Style.Variable))
	}
	sb.WriteString(fmt.Sprintf(" @ %s}", n.pos))
	return sb.String()
}

// NewGroupNode creates a new group node
func NewGroupNode(children []Node, style StyleRef, pos Position) *GroupNode {
	return &GroupNode{pos: pos, Children: children, Style: style}
}

// FormatAST is the parsed form of a prompt format string
type FormatAST struct {
	Children []Node
	source   string
}

// Source returns the format string the AST was parsed from
func (a *FormatAST) Source() string { return a.source }

// String returns a string representation of the whole tree
func (a *FormatAST) String() string {
	var sb strings.Builder
	sb.WriteString("FormatAST{\n")
	for i, child := range a.Children {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, child.String()))
	}
	sb.WriteString("}")
	return sb.String()
}

// Variables returns the names of all variables the format references, in
// source order and deduplicated. Style-position variables are included; the
// orchestrator needs the full set to know what to resolve.
func (a *FormatAST) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, node := range nodes {
			switch n := node.(type) {
			case *VariableNode:
				add(n.Name)
			case *GroupNode:
				walk(n.Children)
				add(n.Style.Variable)
			}
		}
	}
	walk(a.Children)
	return names
}
