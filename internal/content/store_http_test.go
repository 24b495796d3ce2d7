package content_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/obelearn/portal/internal/content"
)

func TestHTTPStore_Create(t *testing.T) {
	var received content.Record
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/contents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		received.ID = "rec-1"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(received)
	}))
	defer server.Close()

	store := content.NewHTTPStore(server.URL)
	id, err := store.Create(content.Record{
		Type:      "QUIZ",
		CourseID:  "cs101",
		CLOIDs:    []string{"cs101-1"},
		FacultyID: "fac-1",
		Questions: []content.Question{{Text: "1. What is HTML?"}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != "rec-1" {
		t.Errorf("Create() = %q, want rec-1", id)
	}
	if received.CourseID != "cs101" || len(received.CLOIDs) != 1 {
		t.Errorf("server received %+v", received)
	}
}

func TestHTTPStore_ListByFaculty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("faculty_id"); got != "fac-1" {
			t.Errorf("faculty_id = %q, want fac-1", got)
		}
		json.NewEncoder(w).Encode([]content.Record{
			{ID: "rec-1", Type: "QUIZ", FacultyID: "fac-1"},
			{ID: "rec-2", Type: "EXAM", FacultyID: "fac-1"},
		})
	}))
	defer server.Close()

	store := content.NewHTTPStore(server.URL)
	records, err := store.ListByFaculty("fac-1")
	if err != nil {
		t.Fatalf("ListByFaculty() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestHTTPStore_DeleteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such record", http.StatusNotFound)
	}))
	defer server.Close()

	store := content.NewHTTPStore(server.URL)
	if err := store.Delete("missing"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestHTTPStore_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := content.NewHTTPStore(server.URL)
	if _, err := store.Get("rec-1"); err == nil {
		t.Error("Get() should surface server errors")
	}
}
