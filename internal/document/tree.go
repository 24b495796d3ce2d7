package document

import "strings"

// NodeType identifies a display tree node.
type NodeType int

const (
	NodeDocument NodeType = iota
	NodeHeading
	NodeParagraph
	NodeText
	NodeEmphasis
	NodeStrong
	NodeList
	NodeListItem
	NodeCodeBlock
	NodeCodeSpan
	NodePreformatted
)

func (t NodeType) String() string {
	switch t {
	case NodeDocument:
		return "document"
	case NodeHeading:
		return "heading"
	case NodeParagraph:
		return "paragraph"
	case NodeText:
		return "text"
	case NodeEmphasis:
		return "emphasis"
	case NodeStrong:
		return "strong"
	case NodeList:
		return "list"
	case NodeListItem:
		return "list_item"
	case NodeCodeBlock:
		return "code_block"
	case NodeCodeSpan:
		return "code_span"
	case NodePreformatted:
		return "preformatted"
	default:
		return "unknown"
	}
}

// Node is one node of the rendered display tree.
type Node struct {
	Type     NodeType
	Level    int    // heading level, 1-based
	Ordered  bool   // list ordering
	Text     string // leaf text; whitespace preserved for code and preformatted
	Children []*Node
}

// PlainText flattens the subtree's leaf text, for search and export fallbacks.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.writePlainText(&sb)
	return sb.String()
}

func (n *Node) writePlainText(sb *strings.Builder) {
	if n.Text != "" {
		sb.WriteString(n.Text)
	}
	for _, c := range n.Children {
		c.writePlainText(sb)
	}
}
