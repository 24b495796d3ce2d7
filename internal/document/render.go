package document

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Render converts raw text into a display tree for the given kind. It is pure:
// identical inputs always yield structurally identical trees.
func Render(raw string, kind Kind) *Node {
	root := &Node{Type: NodeDocument}
	if raw == "" {
		return root
	}

	if kind == KindPlainText {
		// One preformatted block, whitespace preserved exactly.
		root.Children = []*Node{{Type: NodePreformatted, Text: raw}}
		return root
	}

	src := []byte(raw)
	parsed := goldmark.New().Parser().Parse(text.NewReader(src))
	root.Children = convertChildren(parsed, src)
	return root
}

func convertChildren(n ast.Node, src []byte) []*Node {
	var out []*Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convertNode(c, src)...)
	}
	return out
}

// convertNode maps one markdown AST node to display nodes. Unrecognized
// containers are spliced into their children so no text is ever dropped.
func convertNode(n ast.Node, src []byte) []*Node {
	switch v := n.(type) {
	case *ast.Heading:
		return []*Node{{
			Type:     NodeHeading,
			Level:    v.Level,
			Children: convertChildren(v, src),
		}}
	case *ast.Paragraph:
		return []*Node{{Type: NodeParagraph, Children: convertChildren(v, src)}}
	case *ast.TextBlock:
		return []*Node{{Type: NodeParagraph, Children: convertChildren(v, src)}}
	case *ast.Text:
		t := string(v.Segment.Value(src))
		if v.SoftLineBreak() || v.HardLineBreak() {
			t += "\n"
		}
		if t == "" {
			return nil
		}
		return []*Node{{Type: NodeText, Text: t}}
	case *ast.String:
		if len(v.Value) == 0 {
			return nil
		}
		return []*Node{{Type: NodeText, Text: string(v.Value)}}
	case *ast.Emphasis:
		typ := NodeEmphasis
		if v.Level >= 2 {
			typ = NodeStrong
		}
		return []*Node{{Type: typ, Children: convertChildren(v, src)}}
	case *ast.List:
		return []*Node{{
			Type:     NodeList,
			Ordered:  v.IsOrdered(),
			Children: convertChildren(v, src),
		}}
	case *ast.ListItem:
		return []*Node{{Type: NodeListItem, Children: convertChildren(v, src)}}
	case *ast.FencedCodeBlock:
		return []*Node{{Type: NodeCodeBlock, Text: blockText(v, src)}}
	case *ast.CodeBlock:
		return []*Node{{Type: NodeCodeBlock, Text: blockText(v, src)}}
	case *ast.CodeSpan:
		return []*Node{{Type: NodeCodeSpan, Children: convertChildren(v, src)}}
	case *ast.ThematicBreak:
		return nil
	default:
		// Blockquotes, links, raw HTML: keep the content, drop the wrapper.
		return convertChildren(n, src)
	}
}

func blockText(n interface{ Lines() *text.Segments }, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
