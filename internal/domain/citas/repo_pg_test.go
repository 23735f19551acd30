package citas

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateWriteErr(t *testing.T) {
	assert.NoError(t, translateWriteErr(nil))

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "citas_slot_activo_uniq"}
	assert.ErrorIs(t, translateWriteErr(dup), ErrSlotUnavailable)

	// Only the slot index means the slot is taken.
	pkey := &pgconn.PgError{Code: "23505", ConstraintName: "citas_pkey"}
	assert.Equal(t, error(pkey), translateWriteErr(pkey))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "citas_doctor_id_fkey"}
	assert.ErrorIs(t, translateWriteErr(fk), ErrInvalidRequest)

	badDate := &pgconn.PgError{Code: "22008"}
	assert.ErrorIs(t, translateWriteErr(badDate), ErrInvalidRequest)

	other := errors.New("connection reset by peer")
	assert.Equal(t, other, translateWriteErr(other))
}
