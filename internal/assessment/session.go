package assessment

import (
	"context"
	"errors"
	"sync"

	"github.com/obelearn/portal/internal/document"
)

// State is the viewer's edit/preview mode.
type State int

const (
	StatePreview State = iota
	StateEditing
)

func (s State) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "preview"
}

var (
	// ErrGenerationInFlight rejects a new generation while one is pending.
	ErrGenerationInFlight = errors.New("a generation is already in progress")
	// ErrStaleGeneration marks a response that arrived after the session
	// moved on (closed, or superseded by a newer generation).
	ErrStaleGeneration = errors.New("generation response discarded as stale")
	// ErrSessionClosed rejects operations on a closed viewer session.
	ErrSessionClosed = errors.New("viewer session is closed")
)

// Session owns one viewer's GeneratedDocument and its edit/preview state
// machine. Each open viewer gets its own session; nothing is shared globally.
//
// The document's raw text is the single source of truth. Entering edit mode
// copies it into a buffer and freezes the rendered tree; committing writes
// the buffer back and re-renders. Leaving without committing loses buffer
// edits.
type Session struct {
	mu      sync.Mutex
	invoker *Invoker
	doc     *document.Document
	state   State
	buffer  string
	frozen  *document.Node // tree frozen while editing
	busy    bool
	token   uint64 // latest generation token; stale responses are discarded
	closed  bool
}

// NewSession creates an empty viewer session in preview mode.
func NewSession(invoker *Invoker) *Session {
	return &Session{
		invoker: invoker,
		doc:     document.New(""),
	}
}

// Generate runs one generation call and, on success, replaces the document
// content. Only one generation may be in flight per session; a response
// arriving after Close (or after a newer call took over) is discarded.
func (s *Session) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrSessionClosed
	}
	if s.busy {
		s.mu.Unlock()
		return "", ErrGenerationInFlight
	}
	s.busy = true
	s.token++
	token := s.token
	s.mu.Unlock()

	raw, err := s.invoker.Invoke(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return "", ErrStaleGeneration
	}
	s.busy = false
	if err != nil {
		return "", err
	}

	s.doc.SetText(raw)
	s.doc.Dirty = false // fresh content, no edits yet
	s.state = StatePreview
	s.buffer = ""
	s.frozen = nil
	return raw, nil
}

// Load replaces the document with previously persisted content for viewing.
func (s *Session) Load(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.SetText(raw)
	s.doc.Dirty = false
	s.state = StatePreview
	s.buffer = ""
	s.frozen = nil
}

// BeginEdit transitions Preview -> Editing: the raw text is copied into the
// edit buffer and the rendered tree is frozen. Already editing is a no-op.
func (s *Session) BeginEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing {
		return
	}
	s.frozen = s.doc.Render()
	s.buffer = s.doc.RawText
	s.state = StateEditing
}

// SetBuffer replaces the edit buffer. Ignored outside edit mode.
func (s *Session) SetBuffer(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return
	}
	s.buffer = text
}

// Buffer returns the current edit buffer.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// CommitEdit transitions Editing -> Preview, writing the buffer back into the
// document and reclassifying. Not editing is a no-op.
func (s *Session) CommitEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked()
}

func (s *Session) commitLocked() {
	if s.state != StateEditing {
		return
	}
	s.doc.SetText(s.buffer)
	s.state = StatePreview
	s.buffer = ""
	s.frozen = nil
}

// DiscardEdit leaves edit mode without committing; buffer edits are lost and
// the raw text is unchanged.
func (s *Session) DiscardEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateEditing {
		return
	}
	s.state = StatePreview
	s.buffer = ""
	s.frozen = nil
}

// Render returns the display tree: the frozen tree while editing, otherwise a
// fresh render of the raw text.
func (s *Session) Render() *document.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEditing {
		return s.frozen
	}
	return s.doc.Render()
}

// CommittedTree force-commits any pending edit and returns the rendered tree.
// Export operates on committed content only.
func (s *Session) CommittedTree() *document.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked()
	return s.doc.Render()
}

// RawText returns the committed raw text.
func (s *Session) RawText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.RawText
}

// Kind returns the committed content kind.
func (s *Session) Kind() document.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Kind
}

// Dirty reports whether the document has committed edits since generation.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Dirty
}

// State returns the current edit/preview state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close discards the session. An in-flight generation is not cancelled; its
// eventual response is discarded by the token check.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.token++
	s.busy = false
	s.buffer = ""
	s.frozen = nil
}
