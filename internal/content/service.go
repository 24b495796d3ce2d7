package content

import (
	"context"
	"log/slog"
	"strings"

	"github.com/obelearn/portal/internal/assessment"
	"github.com/obelearn/portal/internal/directory"
)

// Service validates and persists content records. Validation happens once,
// at save time; stored records are never re-checked against later catalog
// changes.
type Service struct {
	store Store
	dir   directory.Directory
}

// NewService creates a content service over the given store and directory.
func NewService(store Store, dir directory.Directory) *Service {
	return &Service{store: store, dir: dir}
}

// Save validates and persists one assessment as a new record, returning the
// record id. The document text is stored as a single question entry. A store
// failure leaves nothing persisted; the caller's document is untouched either
// way.
func (s *Service) Save(ctx context.Context, assessmentType, courseID string, cloIDs []string, facultyID, text string) (string, error) {
	parsed, ok := assessment.ParseType(assessmentType)
	if !ok {
		return "", &assessment.ValidationError{Field: "type", Reason: "unknown assessment type " + assessmentType}
	}
	if strings.TrimSpace(text) == "" {
		return "", &assessment.ValidationError{Field: "text", Reason: "content text is required"}
	}
	if len(cloIDs) == 0 {
		return "", &assessment.ValidationError{Field: "clo_ids", Reason: "at least one CLO is required"}
	}

	course, err := s.dir.Course(ctx, courseID)
	if err != nil {
		return "", &assessment.ValidationError{Field: "course_id", Reason: "course " + courseID + " not found"}
	}
	for _, id := range cloIDs {
		if !course.HasCLO(id) {
			return "", &assessment.ValidationError{
				Field:  "clo_ids",
				Reason: "CLO " + id + " does not belong to course " + courseID,
			}
		}
	}
	if _, err := s.dir.Faculty(ctx, facultyID); err != nil {
		return "", &assessment.ValidationError{Field: "faculty_id", Reason: "faculty " + facultyID + " not found"}
	}

	id, err := s.store.Create(Record{
		Type:      parsed.RecordType(),
		CourseID:  courseID,
		CLOIDs:    cloIDs,
		FacultyID: facultyID,
		Questions: []Question{{Text: text}},
	})
	if err != nil {
		return "", &PersistenceError{Op: "save", Err: err}
	}

	slog.Info("content record saved",
		"record_id", id,
		"type", parsed.RecordType(),
		"course_id", courseID,
		"faculty_id", facultyID,
		"clo_count", len(cloIDs),
	)
	return id, nil
}

// Get returns one record by id, or ErrNotFound.
func (s *Service) Get(_ context.Context, id string) (*Record, error) {
	return s.store.Get(id)
}

// ListByFaculty returns a faculty member's records, newest first, optionally
// filtered by assessment type ("QUIZ", "Quiz", ...).
func (s *Service) ListByFaculty(_ context.Context, facultyID, typeFilter string) ([]Record, error) {
	records, err := s.store.ListByFaculty(facultyID)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	if typeFilter == "" {
		return records, nil
	}

	parsed, ok := assessment.ParseType(typeFilter)
	if !ok {
		return nil, &assessment.ValidationError{Field: "type", Reason: "unknown assessment type " + typeFilter}
	}
	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Type == parsed.RecordType() {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

// Delete removes one record. Deleting an absent id returns ErrNotFound; the
// operation is not idempotent.
func (s *Service) Delete(_ context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	slog.Info("content record deleted", "record_id", id)
	return nil
}
