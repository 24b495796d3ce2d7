// Package content persists finished assessments as immutable records tied to
// a course, a CLO set, and the faculty member who created them. Records are
// never updated in place; a re-saved edit becomes a new record.
package content

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when a record id does not resolve.
var ErrNotFound = errors.New("content record not found")

// Question is one question entry of a stored record.
type Question struct {
	Text string `json:"text"`
}

// Record is one persisted assessment.
type Record struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"` // ASSIGNMENT | QUIZ | EXAM
	CourseID  string     `json:"course_id"`
	CLOIDs    []string   `json:"clo_ids"`
	FacultyID string     `json:"faculty_id"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// Store persists content records.
type Store interface {
	Create(rec Record) (string, error)
	Get(id string) (*Record, error)
	ListByFaculty(facultyID string) ([]Record, error)
	Delete(id string) error
}

// PersistenceError reports a store failure. Saving never touches the
// in-memory document, so the caller simply retries.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("content %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	records map[string]*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory content store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

func (s *MemoryStore) Create(rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := generateID()
	rec = cloneRecord(rec)
	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.records[id] = &rec
	return id, nil
}

func (s *MemoryStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneRecord(*rec)
	return &out, nil
}

func (s *MemoryStore) ListByFaculty(facultyID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0)
	for _, rec := range s.records {
		if rec.FacultyID == facultyID {
			out = append(out, cloneRecord(*rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// cloneRecord copies the slices so callers cannot mutate stored records.
func cloneRecord(rec Record) Record {
	rec.CLOIDs = append([]string(nil), rec.CLOIDs...)
	rec.Questions = append([]Question(nil), rec.Questions...)
	return rec
}

func generateID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
