package document_test

import (
	"testing"

	"github.com/obelearn/portal/internal/document"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want document.Kind
	}{
		{"plain sentence", "Just one plain sentence.", document.KindPlainText},
		{"heading", "# Heading\nBody text", document.KindStructured},
		{"newline only", "line one\nline two", document.KindStructured},
		{"emphasis marker", "this is *important*", document.KindStructured},
		{"hash marker", "question #3", document.KindStructured},
		{"empty", "", document.KindPlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := document.Classify(tt.raw); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDocument_SetText(t *testing.T) {
	doc := document.New("Just one plain sentence.")
	if doc.Dirty {
		t.Error("new document should not be dirty")
	}
	if doc.Kind != document.KindPlainText {
		t.Errorf("Kind = %v, want KindPlainText", doc.Kind)
	}

	doc.SetText("# Now a heading\nAnd a body")
	if !doc.Dirty {
		t.Error("SetText with changed text should mark dirty")
	}
	if doc.Kind != document.KindStructured {
		t.Errorf("Kind = %v, want KindStructured after edit", doc.Kind)
	}
}

func TestDocument_SetText_Unchanged(t *testing.T) {
	doc := document.New("same text")
	doc.SetText("same text")
	if doc.Dirty {
		t.Error("SetText with identical text should not mark dirty")
	}
}
