package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert cita: %w", &pgconn.PgError{Code: "23505", ConstraintName: "citas_slot_activo_uniq"})
	if !IsUniqueViolation(err) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}
	if ConstraintName(err) != "citas_slot_activo_uniq" {
		t.Errorf("unexpected constraint name %q", ConstraintName(err))
	}
	if IsForeignKeyViolation(err) {
		t.Error("23505 is not a foreign key violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503"}
	if !IsForeignKeyViolation(err) {
		t.Error("expected 23503 to be a foreign key violation")
	}
}

func TestIsInvalidDatetime(t *testing.T) {
	for _, code := range []string{"22007", "22008"} {
		if !IsInvalidDatetime(&pgconn.PgError{Code: code}) {
			t.Errorf("expected %s to be an invalid datetime", code)
		}
	}
	if IsInvalidDatetime(errors.New("boom")) {
		t.Error("plain error is not a datetime error")
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("get cita: %w", pgx.ErrNoRows)) {
		t.Error("expected wrapped pgx.ErrNoRows to be detected")
	}
	if IsNoRows(errors.New("other")) {
		t.Error("unexpected match on unrelated error")
	}
	if ConstraintName(errors.New("other")) != "" {
		t.Error("expected empty constraint name for non-pg error")
	}
}
