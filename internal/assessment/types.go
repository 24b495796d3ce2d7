// Package assessment implements the generation pipeline core: building a
// structured generation request from course metadata and a selected CLO
// subset, invoking the generation service, and managing the viewer session
// around the resulting document.
package assessment

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/obelearn/portal/internal/directory"
)

// Type is the kind of assessment being generated.
type Type string

const (
	TypeAssignment Type = "Assignment"
	TypeQuiz       Type = "Quiz"
	TypeExam       Type = "Exam"
)

// Valid reports whether t is a recognized assessment type.
func (t Type) Valid() bool {
	switch t {
	case TypeAssignment, TypeQuiz, TypeExam:
		return true
	}
	return false
}

// RecordType returns the persisted content-record form (e.g. "QUIZ").
func (t Type) RecordType() string {
	return strings.ToUpper(string(t))
}

// ParseType resolves an assessment type from either its display form
// ("Quiz") or its record form ("QUIZ").
func ParseType(s string) (Type, bool) {
	switch strings.ToUpper(s) {
	case "ASSIGNMENT":
		return TypeAssignment, true
	case "QUIZ":
		return TypeQuiz, true
	case "EXAM":
		return TypeExam, true
	}
	return "", false
}

// CourseLevel is the academic level the assessment targets.
type CourseLevel string

const (
	LevelUndergraduate CourseLevel = "undergraduate"
	LevelGraduate      CourseLevel = "graduate"
	LevelProfessional  CourseLevel = "professional"
	LevelCertification CourseLevel = "certification"
)

func (l CourseLevel) Valid() bool {
	switch l {
	case LevelUndergraduate, LevelGraduate, LevelProfessional, LevelCertification:
		return true
	}
	return false
}

// Difficulty is the requested difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return true
	}
	return false
}

// QuestionType is one entry of the fixed question-type vocabulary.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	ShortAnswer    QuestionType = "short-answer"
	Essay          QuestionType = "essay"
	ProblemSolving QuestionType = "problem-solving"
	Matching       QuestionType = "matching"
	FillInTheBlank QuestionType = "fill-in-the-blank"
)

// QuestionTypes returns the full fixed vocabulary in canonical order.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		MultipleChoice,
		TrueFalse,
		ShortAnswer,
		Essay,
		ProblemSolving,
		Matching,
		FillInTheBlank,
	}
}

func (q QuestionType) Valid() bool {
	for _, known := range QuestionTypes() {
		if q == known {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// Label returns the human form shown in tables and exports,
// e.g. "multiple-choice" -> "Multiple Choice".
func (q QuestionType) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(q), "-", " "))
}

// GenerationRequest is the structured input to one generation call. It is
// transient: assembled by the Builder, consumed by the Invoker, never stored.
type GenerationRequest struct {
	AssessmentType         Type
	CourseID               string
	CourseName             string
	CourseLevel            CourseLevel
	Topic                  string
	SelectedCLOs           []directory.CLO
	DifficultyLevel        Difficulty
	QuestionCount          int
	QuestionTypes          []QuestionType
	TimeLimitMinutes       int
	AdditionalInstructions string
}

// SelectedCLOIDs returns the ids of the selected CLOs, in selection order.
func (r GenerationRequest) SelectedCLOIDs() []string {
	ids := make([]string, len(r.SelectedCLOs))
	for i, clo := range r.SelectedCLOs {
		ids[i] = clo.ID
	}
	return ids
}

// ValidationError reports a malformed or incomplete generation request. It is
// recovered locally: the caller corrects the input and retries explicitly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GenerationError reports a generation-service failure, carrying the
// service's own message when it supplied one.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "assessment generation failed"
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
