// Package document classifies generated assessment text and renders it as a
// display tree. The raw text is the single source of truth; trees are always
// derived from it, never edited directly.
package document

import "strings"

// Kind is the recognized content-kind variant driving rendering choice.
type Kind int

const (
	// KindPlainText is unformatted prose rendered as one preformatted block.
	KindPlainText Kind = iota
	// KindStructured is lightweight markup rendered as nested display nodes.
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	default:
		return "plain_text"
	}
}

// classifyMarkers are the heading/emphasis markers (plus newline) whose
// presence classifies text as structured. A single unformatted sentence with
// no newline stays plain; this is a heuristic, not a parse.
const classifyMarkers = "#*\n"

// Classify inspects raw text and resolves its content kind.
func Classify(raw string) Kind {
	if strings.ContainsAny(raw, classifyMarkers) {
		return KindStructured
	}
	return KindPlainText
}

// Document is the in-memory, editable representation of one assessment's text.
type Document struct {
	RawText string
	Kind    Kind
	Dirty   bool
}

// New creates a document, classifying the given text. Empty text is valid:
// the viewer starts empty and is populated by the generation response.
func New(raw string) *Document {
	return &Document{RawText: raw, Kind: Classify(raw)}
}

// SetText replaces the raw text and reclassifies. Dirty is set when the text
// actually changed.
func (d *Document) SetText(raw string) {
	if raw != d.RawText {
		d.Dirty = true
	}
	d.RawText = raw
	d.Kind = Classify(raw)
}

// Render derives the display tree from the current raw text.
func (d *Document) Render() *Node {
	return Render(d.RawText, d.Kind)
}
