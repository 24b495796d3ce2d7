package content_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/obelearn/portal/internal/content"
)

// startPostgres spins up a throwaway database. Set PORTAL_TEST_DATABASE=1 to
// run; the container needs a local Docker daemon.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("PORTAL_TEST_DATABASE") == "" {
		t.Skip("set PORTAL_TEST_DATABASE=1 to run database integration tests")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("portal"),
		tcpostgres.WithUsername("portal"),
		tcpostgres.WithPassword("portal"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, content.Schema()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}

func TestPostgresStore_CRUD(t *testing.T) {
	pool := startPostgres(t)

	store, err := content.NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}

	id, err := store.Create(content.Record{
		Type:      "QUIZ",
		CourseID:  "cs101",
		CLOIDs:    []string{"cs101-1", "cs101-2"},
		FacultyID: "fac-1",
		Questions: []content.Question{{Text: "1. What is HTML?"}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rec, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if rec.Type != "QUIZ" || rec.CourseID != "cs101" || rec.FacultyID != "fac-1" {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.CLOIDs) != 2 || rec.CLOIDs[0] != "cs101-1" {
		t.Errorf("CLOIDs = %v", rec.CLOIDs)
	}
	if len(rec.Questions) != 1 || rec.Questions[0].Text != "1. What is HTML?" {
		t.Errorf("Questions = %+v", rec.Questions)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(id); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(id); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPostgresStore_ListByFaculty(t *testing.T) {
	pool := startPostgres(t)

	store, err := content.NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i, rec := range []content.Record{
		{Type: "QUIZ", CourseID: "cs101", CLOIDs: []string{"cs101-1"}, FacultyID: "fac-1", Questions: []content.Question{{Text: "first"}}},
		{Type: "EXAM", CourseID: "cs101", CLOIDs: []string{"cs101-2"}, FacultyID: "fac-1", Questions: []content.Question{{Text: "second"}}},
		{Type: "QUIZ", CourseID: "math200", CLOIDs: []string{"math200-1"}, FacultyID: "fac-2", Questions: []content.Question{{Text: "other faculty"}}},
	} {
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := store.Create(rec); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	records, err := store.ListByFaculty("fac-1")
	if err != nil {
		t.Fatalf("ListByFaculty() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	// Newest first.
	if records[0].Type != "EXAM" || records[1].Type != "QUIZ" {
		t.Errorf("order = [%s, %s], want newest first", records[0].Type, records[1].Type)
	}
}
