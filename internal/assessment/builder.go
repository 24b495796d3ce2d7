package assessment

import (
	"strings"

	"github.com/obelearn/portal/internal/directory"
)

// Form bounds carried over from the portal's input constraints.
const (
	MinQuestionCount = 1
	MaxQuestionCount = 50
	MinTimeLimit     = 5
	MaxTimeLimit     = 180
)

// Builder accumulates a faculty member's selections and produces a validated
// GenerationRequest. Construction is pure; the builder has no side effects
// beyond its own state.
type Builder struct {
	assessmentType Type
	course         *directory.Course
	level          CourseLevel
	topic          string
	selected       map[string]directory.CLO
	selectedOrder  []string
	difficulty     Difficulty
	questionCount  int
	questionTypes  map[QuestionType]bool
	typeOrder      []QuestionType
	timeLimit      int
	instructions   string
}

// NewBuilder creates a builder with the form's initial defaults: level
// undergraduate, difficulty medium, five questions, multiple-choice only,
// thirty minutes.
func NewBuilder(t Type) *Builder {
	b := &Builder{
		assessmentType: t,
		level:          LevelUndergraduate,
		selected:       make(map[string]directory.CLO),
		difficulty:     DifficultyMedium,
		questionCount:  5,
		questionTypes:  make(map[QuestionType]bool),
		timeLimit:      30,
	}
	b.questionTypes[MultipleChoice] = true
	b.typeOrder = []QuestionType{MultipleChoice}
	return b
}

// SelectCourse sets the course. Any previously selected CLOs are cleared:
// CLOs are course-scoped, so switching courses invalidates the selection.
func (b *Builder) SelectCourse(course directory.Course) {
	b.course = &course
	b.selected = make(map[string]directory.CLO)
	b.selectedOrder = nil
}

// ToggleCLO flips the selection state of a CLO, keyed by id. Two CLOs with
// identical descriptions remain distinct selections.
func (b *Builder) ToggleCLO(clo directory.CLO) {
	if _, ok := b.selected[clo.ID]; ok {
		delete(b.selected, clo.ID)
		for i, id := range b.selectedOrder {
			if id == clo.ID {
				b.selectedOrder = append(b.selectedOrder[:i], b.selectedOrder[i+1:]...)
				break
			}
		}
		return
	}
	b.selected[clo.ID] = clo
	b.selectedOrder = append(b.selectedOrder, clo.ID)
}

// SelectedCLOs returns the current selection in toggle order.
func (b *Builder) SelectedCLOs() []directory.CLO {
	clos := make([]directory.CLO, 0, len(b.selectedOrder))
	for _, id := range b.selectedOrder {
		clos = append(clos, b.selected[id])
	}
	return clos
}

// ToggleQuestionType flips a question type's membership in the set.
func (b *Builder) ToggleQuestionType(qt QuestionType) {
	if b.questionTypes[qt] {
		delete(b.questionTypes, qt)
		for i, t := range b.typeOrder {
			if t == qt {
				b.typeOrder = append(b.typeOrder[:i], b.typeOrder[i+1:]...)
				break
			}
		}
		return
	}
	b.questionTypes[qt] = true
	b.typeOrder = append(b.typeOrder, qt)
}

// SelectedQuestionTypes returns the current set in toggle order.
func (b *Builder) SelectedQuestionTypes() []QuestionType {
	out := make([]QuestionType, len(b.typeOrder))
	copy(out, b.typeOrder)
	return out
}

func (b *Builder) SetLevel(l CourseLevel)      { b.level = l }
func (b *Builder) SetTopic(topic string)       { b.topic = topic }
func (b *Builder) SetDifficulty(d Difficulty)  { b.difficulty = d }
func (b *Builder) SetQuestionCount(n int)      { b.questionCount = n }
func (b *Builder) SetTimeLimit(minutes int)    { b.timeLimit = minutes }
func (b *Builder) SetInstructions(text string) { b.instructions = text }

// Build validates the accumulated selections and assembles the request.
func (b *Builder) Build() (GenerationRequest, error) {
	if !b.assessmentType.Valid() {
		return GenerationRequest{}, &ValidationError{Field: "assessment_type", Reason: "unknown assessment type"}
	}
	if b.course == nil {
		return GenerationRequest{}, &ValidationError{Field: "course", Reason: "no course selected"}
	}
	if strings.TrimSpace(b.topic) == "" {
		return GenerationRequest{}, &ValidationError{Field: "topic", Reason: "topic is required"}
	}
	if len(b.selectedOrder) == 0 {
		return GenerationRequest{}, &ValidationError{Field: "clos", Reason: "at least one CLO must be selected"}
	}
	for _, id := range b.selectedOrder {
		if !b.course.HasCLO(id) {
			return GenerationRequest{}, &ValidationError{
				Field:  "clos",
				Reason: "CLO " + id + " does not belong to course " + b.course.ID,
			}
		}
	}
	if !b.level.Valid() {
		return GenerationRequest{}, &ValidationError{Field: "course_level", Reason: "unknown course level"}
	}
	if !b.difficulty.Valid() {
		return GenerationRequest{}, &ValidationError{Field: "difficulty_level", Reason: "unknown difficulty level"}
	}
	if b.questionCount < MinQuestionCount || b.questionCount > MaxQuestionCount {
		return GenerationRequest{}, &ValidationError{Field: "question_count", Reason: "must be between 1 and 50"}
	}
	if len(b.typeOrder) == 0 {
		return GenerationRequest{}, &ValidationError{Field: "question_types", Reason: "at least one question type must be selected"}
	}
	for _, qt := range b.typeOrder {
		if !qt.Valid() {
			return GenerationRequest{}, &ValidationError{Field: "question_types", Reason: "unknown question type " + string(qt)}
		}
	}
	if b.timeLimit < MinTimeLimit || b.timeLimit > MaxTimeLimit {
		return GenerationRequest{}, &ValidationError{Field: "time_limit_minutes", Reason: "must be between 5 and 180"}
	}

	return GenerationRequest{
		AssessmentType:         b.assessmentType,
		CourseID:               b.course.ID,
		CourseName:             b.course.Name,
		CourseLevel:            b.level,
		Topic:                  strings.TrimSpace(b.topic),
		SelectedCLOs:           b.SelectedCLOs(),
		DifficultyLevel:        b.difficulty,
		QuestionCount:          b.questionCount,
		QuestionTypes:          b.SelectedQuestionTypes(),
		TimeLimitMinutes:       b.timeLimit,
		AdditionalInstructions: b.instructions,
	}, nil
}
