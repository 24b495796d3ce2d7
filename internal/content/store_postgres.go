package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// Record ids come from gen_random_uuid(); anything else cannot exist, and
// would only trip the uuid cast in the query.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func isRecordID(id string) bool {
	return uuidPattern.MatchString(id)
}

// PostgresStore is a PostgreSQL-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed content store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Schema returns the DDL the store expects. Callers apply it during
// provisioning; the store never migrates on its own.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS contents (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    assessment_type text NOT NULL,
    course_id text NOT NULL,
    clo_ids jsonb NOT NULL,
    faculty_id text NOT NULL,
    questions jsonb NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS contents_faculty_idx ON contents (faculty_id, created_at DESC);
`
}

func (s *PostgresStore) Create(rec Record) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cloIDs, err := json.Marshal(rec.CLOIDs)
	if err != nil {
		return "", fmt.Errorf("encode clo ids: %w", err)
	}
	questions, err := json.Marshal(rec.Questions)
	if err != nil {
		return "", fmt.Errorf("encode questions: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO contents (assessment_type, course_id, clo_ids, faculty_id, questions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id::text`,
		rec.Type,
		rec.CourseID,
		cloIDs,
		rec.FacultyID,
		questions,
		createdAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create content: %w", err)
	}

	return id, nil
}

func (s *PostgresStore) Get(id string) (*Record, error) {
	if !isRecordID(id) {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rec, err := scanRecord(s.pool.QueryRow(ctx,
		`SELECT id::text, assessment_type, course_id, clo_ids, faculty_id, questions, created_at
		 FROM contents
		 WHERE id = $1::uuid`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) ListByFaculty(facultyID string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, assessment_type, course_id, clo_ids, faculty_id, questions, created_at
		 FROM contents
		 WHERE faculty_id = $1
		 ORDER BY created_at DESC`,
		facultyID,
	)
	if err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contents: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) Delete(id string) error {
	if !isRecordID(id) {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cmd, err := s.pool.Exec(ctx,
		`DELETE FROM contents WHERE id = $1::uuid`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	rec := &Record{}
	var cloIDs, questions []byte

	if err := row.Scan(
		&rec.ID,
		&rec.Type,
		&rec.CourseID,
		&cloIDs,
		&rec.FacultyID,
		&questions,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(cloIDs, &rec.CLOIDs); err != nil {
		return nil, fmt.Errorf("decode clo ids: %w", err)
	}
	if err := json.Unmarshal(questions, &rec.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	return rec, nil
}
