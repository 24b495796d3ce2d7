package assessment

import (
	"fmt"
	"strings"
)

// Prompt serializes a GenerationRequest into the single natural-language
// instruction block the generation service expects. Field order is fixed;
// CLOs are identified by description text because the service is text-only.
func Prompt(req GenerationRequest) string {
	descriptions := make([]string, len(req.SelectedCLOs))
	for i, clo := range req.SelectedCLOs {
		descriptions[i] = clo.Description
	}

	types := make([]string, len(req.QuestionTypes))
	for i, qt := range req.QuestionTypes {
		types[i] = string(qt)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a %s for the course %q\n", req.AssessmentType, req.CourseName)
	fmt.Fprintf(&sb, "Course level: %s\n", req.CourseLevel)
	fmt.Fprintf(&sb, "Topic: %s\n", req.Topic)
	sb.WriteString("\nCourse Learning Outcomes to assess:\n")
	sb.WriteString(strings.Join(descriptions, "\n"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Difficulty level: %s\n", req.DifficultyLevel)
	fmt.Fprintf(&sb, "Number of questions: %d\n", req.QuestionCount)
	fmt.Fprintf(&sb, "Question types: %s\n", strings.Join(types, ", "))
	fmt.Fprintf(&sb, "Time limit: %d minutes\n", req.TimeLimitMinutes)
	sb.WriteString("\nAdditional instructions:\n")
	sb.WriteString(req.AdditionalInstructions)

	return sb.String()
}
