package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped pq unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "40001"}) {
			t.Fatalf("expected false for serialization failure")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("boom")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error to not match")
	}
}

func TestNullableRoundHelpers(t *testing.T) {
	if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null round, got %d", *got)
	}

	round := 7
	encoded := intPtrToNullInt64(&round)
	if !encoded.Valid || encoded.Int64 != 7 {
		t.Fatalf("unexpected encoded round: %+v", encoded)
	}
	decoded := nullInt64ToIntPtr(encoded)
	if decoded == nil || *decoded != 7 {
		t.Fatalf("unexpected decoded round: %v", decoded)
	}
}

func TestNullStringHelpers(t *testing.T) {
	if stringToNullString("").Valid {
		t.Fatalf("expected empty captain to be null")
	}
	if got := nullStringValue(stringToNullString("P001")); got != "P001" {
		t.Fatalf("unexpected value: %q", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
