package citas

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotUnavailable means the doctor already has an active booking at
	// the requested date and time.
	ErrSlotUnavailable = errors.New("horario no disponible")
	// ErrNotFound means no appointment matched the id.
	ErrNotFound = errors.New("cita no encontrada")
	// ErrInvalidRequest wraps a field-level validation message.
	ErrInvalidRequest = errors.New("solicitud inválida")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
