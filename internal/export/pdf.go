// Package export turns rendered display trees into downloadable artifacts.
// PDF generation happens entirely in memory; nothing touches disk.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/obelearn/portal/internal/document"
)

// Page geometry mirrors the portal's download layout: A4 portrait with
// half-inch margins.
const (
	pageSize    = "A4"
	orientation = "P"
	marginPt    = 36 // 0.5 inch
)

const (
	bodySize    = 11.0
	lineSpacing = 1.4
)

// Options tunes PDF generation. The zero value produces the default layout.
type Options struct {
	Title string  // document title in PDF metadata, optional
	Scale float64 // font scale factor, default 1.0
}

// ExportError reports a failed export. The source document is untouched; the
// faculty member re-triggers the export explicitly.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// PDF renders a display tree into a paginated PDF. The same tree always
// produces the same layout; page breaks are handled by the writer.
func PDF(tree *document.Node, opts Options) ([]byte, error) {
	if tree == nil {
		return nil, &ExportError{Format: "pdf", Err: fmt.Errorf("nil display tree")}
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1.0
	}

	pdf := fpdf.New(orientation, "pt", pageSize, "")
	pdf.SetMargins(marginPt, marginPt, marginPt)
	pdf.SetAutoPageBreak(true, marginPt)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, scale: scale}
	if tree.Type == document.NodeDocument {
		w.writeBlocks(tree.Children)
	} else {
		w.writeBlocks([]*document.Node{tree})
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Format: "pdf", Err: err}
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	scale float64
}

func (w *pdfWriter) writeBlocks(blocks []*document.Node) {
	for _, n := range blocks {
		switch n.Type {
		case document.NodeHeading:
			w.writeHeading(n)
		case document.NodeParagraph:
			w.setFont("Helvetica", "", bodySize)
			w.writeInline(n, "")
			w.pdf.Ln(w.lineHeight(bodySize) * lineSpacing)
		case document.NodeList:
			w.writeList(n)
		case document.NodeCodeBlock, document.NodePreformatted:
			w.writeVerbatim(n.Text)
		default:
			w.writeBlocks(n.Children)
		}
	}
}

func headingSize(level int) float64 {
	switch level {
	case 1:
		return 18
	case 2:
		return 15
	case 3:
		return 13
	default:
		return 12
	}
}

func (w *pdfWriter) writeHeading(n *document.Node) {
	size := headingSize(n.Level)
	w.setFont("Helvetica", "B", size)
	w.pdf.MultiCell(0, w.lineHeight(size), n.PlainText(), "", "L", false)
	w.pdf.Ln(w.lineHeight(bodySize) * 0.5)
}

func (w *pdfWriter) writeList(n *document.Node) {
	num := 1
	for _, item := range n.Children {
		if item.Type != document.NodeListItem {
			continue
		}
		marker := "- "
		if n.Ordered {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		w.setFont("Helvetica", "", bodySize)
		w.pdf.Write(w.lineHeight(bodySize), marker)
		for _, c := range item.Children {
			switch c.Type {
			case document.NodeList:
				w.pdf.Ln(w.lineHeight(bodySize))
				w.writeList(c)
			default:
				w.writeInline(c, "")
			}
		}
		w.pdf.Ln(w.lineHeight(bodySize) * 1.2)
	}
	w.pdf.Ln(w.lineHeight(bodySize) * 0.2)
}

// writeInline walks inline runs, switching font style as emphasis nesting
// changes.
func (w *pdfWriter) writeInline(n *document.Node, style string) {
	switch n.Type {
	case document.NodeText:
		w.setFont("Helvetica", style, bodySize)
		w.pdf.Write(w.lineHeight(bodySize), n.Text)
		return
	case document.NodeEmphasis:
		style += "I"
	case document.NodeStrong:
		style += "B"
	case document.NodeCodeSpan:
		// Span content lives in child text nodes; flatten it here so the
		// whole run stays in Courier.
		w.setFont("Courier", style, bodySize)
		w.pdf.Write(w.lineHeight(bodySize), n.PlainText())
		return
	}
	if n.Text != "" {
		w.setFont("Helvetica", style, bodySize)
		w.pdf.Write(w.lineHeight(bodySize), n.Text)
	}
	for _, c := range n.Children {
		w.writeInline(c, style)
	}
}

func (w *pdfWriter) writeVerbatim(text string) {
	w.setFont("Courier", "", bodySize-1)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line == "" {
			w.pdf.Ln(w.lineHeight(bodySize - 1))
			continue
		}
		w.pdf.MultiCell(0, w.lineHeight(bodySize-1), line, "", "L", false)
	}
	w.pdf.Ln(w.lineHeight(bodySize) * 0.5)
}

func (w *pdfWriter) setFont(family, style string, size float64) {
	w.pdf.SetFont(family, style, size*w.scale)
}

func (w *pdfWriter) lineHeight(size float64) float64 {
	return size * w.scale * lineSpacing
}
