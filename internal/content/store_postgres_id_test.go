package content

import (
	"errors"
	"testing"
)

// Malformed ids are rejected before any query, so these run without a pool.
func TestPostgresStore_MalformedID(t *testing.T) {
	store := &PostgresStore{}

	for _, id := range []string{"", "not-a-uuid", "42", "a3f1c2d4e5b6"} {
		if _, err := store.Get(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
		if err := store.Delete(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestIsRecordID(t *testing.T) {
	if !isRecordID("a3f1c2d4-e5b6-4a7c-8d9e-0f1a2b3c4d5e") {
		t.Error("well-formed uuid rejected")
	}
	if isRecordID("a3f1c2d4-e5b6-4a7c-8d9e-0f1a2b3c4d5g") {
		t.Error("non-hex uuid accepted")
	}
}
