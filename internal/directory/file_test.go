package directory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/obelearn/portal/internal/directory"
)

const testCatalog = `
courses:
  - id: cs101
    name: Introduction to Web Development
    code: CS101
    level: undergraduate
    credit_hours: 3
    clos:
      - id: cs101-2
        number: 2
        description: Style pages with CSS
      - id: cs101-1
        number: 1
        description: Understand HTML structure
faculty:
  - id: fac-1
    name: Dr. Ayesha Khan
    email: akhan@example.edu
`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog file: %v", err)
	}
	return dir
}

func TestFileDirectory_LoadsCoursesAndFaculty(t *testing.T) {
	dir := writeCatalog(t, "catalog.yaml", testCatalog)

	d, err := directory.NewFileDirectory(dir)
	if err != nil {
		t.Fatalf("NewFileDirectory() error = %v", err)
	}

	course, err := d.Course(context.Background(), "cs101")
	if err != nil {
		t.Fatalf("Course() error = %v", err)
	}
	if course.Name != "Introduction to Web Development" {
		t.Errorf("Name = %q", course.Name)
	}
	if len(course.CLOs) != 2 {
		t.Fatalf("CLO count = %d, want 2", len(course.CLOs))
	}

	faculty, err := d.Faculty(context.Background(), "fac-1")
	if err != nil {
		t.Fatalf("Faculty() error = %v", err)
	}
	if faculty.Email != "akhan@example.edu" {
		t.Errorf("Email = %q", faculty.Email)
	}
}

func TestFileDirectory_CourseNotFound(t *testing.T) {
	dir := writeCatalog(t, "catalog.yaml", testCatalog)

	d, err := directory.NewFileDirectory(dir)
	if err != nil {
		t.Fatalf("NewFileDirectory() error = %v", err)
	}

	_, err = d.Course(context.Background(), "missing")
	if err != directory.ErrNotFound {
		t.Errorf("Course() error = %v, want ErrNotFound", err)
	}
}

func TestFileDirectory_SkipsInvalidYAML(t *testing.T) {
	dir := writeCatalog(t, "broken.yaml", "courses: [not: {valid")

	if _, err := directory.NewFileDirectory(dir); err != nil {
		t.Fatalf("NewFileDirectory() should skip invalid YAML, got error = %v", err)
	}
}

func TestCLOs_OrderedBySequenceNumber(t *testing.T) {
	dir := writeCatalog(t, "catalog.yaml", testCatalog)

	d, err := directory.NewFileDirectory(dir)
	if err != nil {
		t.Fatalf("NewFileDirectory() error = %v", err)
	}

	clos, err := directory.CLOs(context.Background(), d, "cs101")
	if err != nil {
		t.Fatalf("CLOs() error = %v", err)
	}
	if len(clos) != 2 {
		t.Fatalf("CLO count = %d, want 2", len(clos))
	}
	if clos[0].Number != 1 || clos[1].Number != 2 {
		t.Errorf("CLOs not ordered by number: %+v", clos)
	}
	if clos[0].Description != "Understand HTML structure" {
		t.Errorf("first CLO = %q", clos[0].Description)
	}
}
