package citas

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

// maxID is the largest key the int4 SERIAL columns can hold. Larger ids
// cannot match a row and must not reach the driver, which rejects them.
const maxID = math.MaxInt32

// Outcome labels reported to the Observer.
const (
	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
	ResultInvalid     = "invalid"
	ResultError       = "error"
)

// Observer receives lifecycle events, typically a Prometheus recorder.
type Observer interface {
	ObserveBooking(result string)
	ObserveCancellation()
	ObserveReschedule(result string)
}

type noopObserver struct{}

func (noopObserver) ObserveBooking(string)    {}
func (noopObserver) ObserveCancellation()     {}
func (noopObserver) ObserveReschedule(string) {}

type Service struct {
	citas     AppointmentRepository
	doctores  DoctorRepository
	pacientes PatientRepository
	obs       Observer
}

func NewService(c AppointmentRepository, d DoctorRepository, p PatientRepository) *Service {
	return &Service{citas: c, doctores: d, pacientes: p, obs: noopObserver{}}
}

// WithObserver sets the lifecycle observer and returns s.
func (s *Service) WithObserver(o Observer) *Service {
	if o == nil {
		o = noopObserver{}
	}
	s.obs = o
	return s
}

func outcome(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrSlotUnavailable):
		return ResultUnavailable
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrNotFound):
		return ResultInvalid
	}
	return ResultError
}

// -- Lifecycle --

// Book validates the request, checks the slot and inserts a new appointment
// in status agendada.
func (s *Service) Book(ctx context.Context, req BookRequest) (c *Cita, err error) {
	defer func() { s.obs.ObserveBooking(outcome(err)) }()

	if req.PacienteID <= 0 {
		return nil, invalid("paciente_id es requerido")
	}
	if req.PacienteID > maxID {
		return nil, invalid("paciente_id fuera de rango")
	}
	if req.DoctorID <= 0 {
		return nil, invalid("doctor_id es requerido")
	}
	if req.DoctorID > maxID {
		return nil, invalid("doctor_id fuera de rango")
	}
	hora, err := validateSlot(req.Fecha, req.Hora)
	if err != nil {
		return nil, err
	}

	ok, err := s.IsAvailable(ctx, req.DoctorID, req.Fecha, hora, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSlotUnavailable
	}

	c = &Cita{
		PacienteID: req.PacienteID,
		DoctorID:   req.DoctorID,
		Fecha:      req.Fecha,
		Hora:       hora,
		Estado:     EstadoAgendada,
	}
	if m := strings.TrimSpace(req.Motivo); m != "" {
		c.Motivo = &m
	}
	if err := s.citas.CreateIfFree(ctx, c); err != nil {
		if errors.Is(err, ErrSlotUnavailable) || errors.Is(err, ErrInvalidRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("create cita: %w", err)
	}
	return c, nil
}

// Reschedule moves an appointment to a new date and time and marks it
// reprogramada, whatever its previous status.
func (s *Service) Reschedule(ctx context.Context, id int64, req RescheduleRequest) (err error) {
	defer func() { s.obs.ObserveReschedule(outcome(err)) }()

	if id <= 0 {
		return invalid("id debe ser un entero positivo")
	}
	hora, err := validateSlot(req.Fecha, req.Hora)
	if err != nil {
		return err
	}
	if id > maxID {
		return ErrNotFound
	}

	current, err := s.citas.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.IsAvailable(ctx, current.DoctorID, req.Fecha, hora, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotUnavailable
	}

	return s.citas.Reschedule(ctx, id, req.Fecha, hora)
}

// Cancel marks an appointment cancelada, whatever its previous status.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("id debe ser un entero positivo")
	}
	if id > maxID {
		return ErrNotFound
	}
	if err := s.citas.SetStatus(ctx, id, EstadoCancelada); err != nil {
		return err
	}
	s.obs.ObserveCancellation()
	return nil
}

// -- Reads --

func (s *Service) Get(ctx context.Context, id int64) (*Cita, error) {
	if id <= 0 {
		return nil, invalid("id debe ser un entero positivo")
	}
	if id > maxID {
		return nil, ErrNotFound
	}
	return s.citas.GetByID(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context) ([]*Cita, error) {
	return s.citas.List(ctx)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.doctores.ListActive(ctx)
}

func (s *Service) ListPatients(ctx context.Context) ([]*Paciente, error) {
	return s.pacientes.List(ctx)
}
