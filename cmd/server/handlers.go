package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/obelearn/portal/internal/assessment"
	"github.com/obelearn/portal/internal/content"
	"github.com/obelearn/portal/internal/directory"
	"github.com/obelearn/portal/internal/document"
	"github.com/obelearn/portal/internal/export"
	"github.com/obelearn/portal/internal/platform/cache"
	"github.com/obelearn/portal/internal/platform/database"
)

type app struct {
	invoker  *assessment.Invoker
	contents *content.Service
	dir      directory.Directory
	db       *database.DB
	cache    *cache.Cache
	pdfScale float64
}

func (a *app) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.HandleFunc("POST /api/assessments/generate", a.handleGenerate)
	mux.HandleFunc("POST /api/contents", a.handleSaveContent)
	mux.HandleFunc("GET /api/contents", a.handleListContents)
	mux.HandleFunc("GET /api/contents/export", a.handleExportXLSX)
	mux.HandleFunc("GET /api/contents/{id}", a.handleGetContent)
	mux.HandleFunc("GET /api/contents/{id}/pdf", a.handleExportPDF)
	mux.HandleFunc("DELETE /api/contents/{id}", a.handleDeleteContent)
	return mux
}

// Request bodies are checked against a JSON schema before decoding, so domain
// code only ever sees well-formed input.
var (
	generateSchema = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["assessment_type", "course_id", "topic", "clo_ids"],
		"properties": {
			"assessment_type": {"type": "string"},
			"course_id": {"type": "string", "minLength": 1},
			"course_level": {"type": "string"},
			"topic": {"type": "string"},
			"clo_ids": {"type": "array", "items": {"type": "string"}},
			"difficulty_level": {"type": "string"},
			"question_count": {"type": "integer", "minimum": 1},
			"question_types": {"type": "array", "items": {"type": "string"}},
			"time_limit_minutes": {"type": "integer", "minimum": 1},
			"additional_instructions": {"type": "string"}
		},
		"additionalProperties": false
	}`)

	saveContentSchema = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["type", "course_id", "clo_ids", "faculty_id", "text"],
		"properties": {
			"type": {"type": "string"},
			"course_id": {"type": "string", "minLength": 1},
			"clo_ids": {"type": "array", "items": {"type": "string"}},
			"faculty_id": {"type": "string", "minLength": 1},
			"text": {"type": "string"}
		},
		"additionalProperties": false
	}`)
)

type generateRequest struct {
	AssessmentType         string   `json:"assessment_type"`
	CourseID               string   `json:"course_id"`
	CourseLevel            string   `json:"course_level"`
	Topic                  string   `json:"topic"`
	CLOIDs                 []string `json:"clo_ids"`
	DifficultyLevel        string   `json:"difficulty_level"`
	QuestionCount          int      `json:"question_count"`
	QuestionTypes          []string `json:"question_types"`
	TimeLimitMinutes       int      `json:"time_limit_minutes"`
	AdditionalInstructions string   `json:"additional_instructions"`
}

func (a *app) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var in generateRequest
	if !decodeBody(w, r, generateSchema, &in) {
		return
	}

	req, err := a.buildRequest(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	raw, err := a.invoker.Invoke(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"content": raw,
		"kind":    document.Classify(raw).String(),
	})
}

// buildRequest maps the HTTP body onto the form builder; omitted optional
// fields keep the form defaults.
func (a *app) buildRequest(ctx context.Context, in generateRequest) (assessment.GenerationRequest, error) {
	aType, ok := assessment.ParseType(in.AssessmentType)
	if !ok {
		return assessment.GenerationRequest{}, &assessment.ValidationError{
			Field: "assessment_type", Reason: "unknown assessment type " + in.AssessmentType,
		}
	}

	course, err := a.dir.Course(ctx, in.CourseID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return assessment.GenerationRequest{}, err
		}
		return assessment.GenerationRequest{}, fmt.Errorf("resolve course: %w", err)
	}

	b := assessment.NewBuilder(aType)
	b.SelectCourse(course)
	b.SetTopic(in.Topic)
	b.SetInstructions(in.AdditionalInstructions)
	if in.CourseLevel != "" {
		b.SetLevel(assessment.CourseLevel(in.CourseLevel))
	}
	if in.DifficultyLevel != "" {
		b.SetDifficulty(assessment.Difficulty(in.DifficultyLevel))
	}
	// Zero means omitted: the schema floors explicit values at 1, so a zero
	// can only be an absent field keeping the form default.
	if in.QuestionCount != 0 {
		b.SetQuestionCount(in.QuestionCount)
	}
	if in.TimeLimitMinutes != 0 {
		b.SetTimeLimit(in.TimeLimitMinutes)
	}

	for _, id := range in.CLOIDs {
		clo, ok := course.CLOByID(id)
		if !ok {
			// Leave membership rejection to Build.
			clo = directory.CLO{ID: id}
		}
		b.ToggleCLO(clo)
	}

	if len(in.QuestionTypes) > 0 {
		for _, qt := range b.SelectedQuestionTypes() {
			b.ToggleQuestionType(qt) // drop defaults
		}
		for _, qt := range in.QuestionTypes {
			b.ToggleQuestionType(assessment.QuestionType(qt))
		}
	}

	return b.Build()
}

type saveContentRequest struct {
	Type      string   `json:"type"`
	CourseID  string   `json:"course_id"`
	CLOIDs    []string `json:"clo_ids"`
	FacultyID string   `json:"faculty_id"`
	Text      string   `json:"text"`
}

func (a *app) handleSaveContent(w http.ResponseWriter, r *http.Request) {
	var in saveContentRequest
	if !decodeBody(w, r, saveContentSchema, &in) {
		return
	}

	id, err := a.contents.Save(r.Context(), in.Type, in.CourseID, in.CLOIDs, in.FacultyID, in.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *app) handleListContents(w http.ResponseWriter, r *http.Request) {
	facultyID := r.URL.Query().Get("faculty_id")
	if facultyID == "" {
		writeError(w, &assessment.ValidationError{Field: "faculty_id", Reason: "query parameter is required"})
		return
	}

	records, err := a.contents.ListByFaculty(r.Context(), facultyID, r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *app) handleGetContent(w http.ResponseWriter, r *http.Request) {
	rec, err := a.contents.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *app) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	if err := a.contents.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *app) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	rec, err := a.contents.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var text strings.Builder
	for i, q := range rec.Questions {
		if i > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(q.Text)
	}
	raw := text.String()

	tree := document.Render(raw, document.Classify(raw))
	data, err := export.PDF(tree, export.Options{
		Title: fmt.Sprintf("%s %s", rec.CourseID, rec.Type),
		Scale: a.pdfScale,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (a *app) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	facultyID := r.URL.Query().Get("faculty_id")
	if facultyID == "" {
		writeError(w, &assessment.ValidationError{Field: "faculty_id", Reason: "query parameter is required"})
		return
	}

	records, err := a.contents.ListByFaculty(r.Context(), facultyID, r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := export.Workbook(records)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="assessments.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (a *app) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *app) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		if err := a.db.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}
	if a.cache != nil {
		if err := a.cache.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "cache unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// decodeBody validates the request body against the schema and decodes it
// into out. On failure it writes the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, schema gojsonschema.JSONLoader, out any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable request body"})
		return false
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": strings.Join(msgs, "; ")})
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var verr *assessment.ValidationError
	var genErr *assessment.GenerationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.Is(err, content.ErrNotFound), errors.Is(err, directory.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &genErr):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
