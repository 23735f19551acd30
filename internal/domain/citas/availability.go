package citas

import (
	"context"
	"fmt"
	"time"
)

// Working day grid. Slots start every slotStep from dayStart up to, but not
// including, dayEnd.
const (
	dayStart = 8 * time.Hour
	dayEnd   = 17 * time.Hour
	slotStep = 30 * time.Minute

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

var slotGrid = buildGrid()

func buildGrid() []string {
	var grid []string
	for d := dayStart; d < dayEnd; d += slotStep {
		h := int(d / time.Hour)
		m := int((d % time.Hour) / time.Minute)
		grid = append(grid, fmt.Sprintf("%02d:%02d:00", h, m))
	}
	return grid
}

// SlotGrid returns the candidate start times of a working day, ascending.
func SlotGrid() []string {
	out := make([]string, len(slotGrid))
	copy(out, slotGrid)
	return out
}

// IsGridSlot reports whether t (HH:MM:SS) is a slot start.
func IsGridSlot(t string) bool {
	for _, s := range slotGrid {
		if s == t {
			return true
		}
	}
	return false
}

// FreeSlots filters the grid against the booked times. Booked values that do
// not parse are ignored. The result is never nil.
func FreeSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		if n, err := NormalizeTime(b); err == nil {
			taken[n] = struct{}{}
		}
	}
	free := make([]string, 0, len(slotGrid))
	for _, s := range slotGrid {
		if _, ok := taken[s]; !ok {
			free = append(free, s)
		}
	}
	return free
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeTime(s string) (string, error) {
	for _, layout := range []string{timeLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timeLayout), nil
		}
	}
	return "", invalid("hora debe tener formato HH:MM o HH:MM:SS, recibido %q", s)
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return invalid("fecha debe tener formato YYYY-MM-DD, recibido %q", s)
	}
	return nil
}

// validateSlot checks the date and returns the normalized time, which must be
// a grid slot.
func validateSlot(fecha, hora string) (string, error) {
	if err := ValidateDate(fecha); err != nil {
		return "", err
	}
	t, err := NormalizeTime(hora)
	if err != nil {
		return "", err
	}
	if !IsGridSlot(t) {
		return "", invalid("hora %s fuera del horario de atención (08:00 a 17:00 cada 30 minutos)", t)
	}
	return t, nil
}

// AvailableSlots returns the free slots for a doctor on a date.
func (s *Service) AvailableSlots(ctx context.Context, doctorID int64, fecha string) ([]string, error) {
	if doctorID <= 0 {
		return nil, invalid("doctorId debe ser un entero positivo")
	}
	if err := ValidateDate(fecha); err != nil {
		return nil, err
	}
	if doctorID > maxID {
		// No doctor row can carry this id, so nothing is booked.
		return SlotGrid(), nil
	}
	booked, err := s.citas.BookedTimes(ctx, doctorID, fecha, 0)
	if err != nil {
		return nil, fmt.Errorf("booked times: %w", err)
	}
	return FreeSlots(booked), nil
}

// IsAvailable reports whether hora is free for the doctor on fecha, ignoring
// the appointment excludeID (0 ignores nothing).
func (s *Service) IsAvailable(ctx context.Context, doctorID int64, fecha, hora string, excludeID int64) (bool, error) {
	if doctorID > maxID {
		return true, nil
	}
	booked, err := s.citas.BookedTimes(ctx, doctorID, fecha, excludeID)
	if err != nil {
		return false, fmt.Errorf("booked times: %w", err)
	}
	for _, b := range booked {
		if n, err := NormalizeTime(b); err == nil && n == hora {
			return false, nil
		}
	}
	return true, nil
}
