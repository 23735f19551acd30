package citas

import "context"

type AppointmentRepository interface {
	// List returns every appointment, newest date and time first.
	List(ctx context.Context) ([]*Cita, error)
	GetByID(ctx context.Context, id int64) (*Cita, error)
	// BookedTimes returns the HH:MM:SS times of active appointments for the
	// doctor on fecha, skipping excludeID.
	BookedTimes(ctx context.Context, doctorID int64, fecha string, excludeID int64) ([]string, error)
	// CreateIfFree inserts c unless the slot already holds an active
	// appointment, in which case it returns ErrSlotUnavailable.
	CreateIfFree(ctx context.Context, c *Cita) error
	Reschedule(ctx context.Context, id int64, fecha, hora string) error
	SetStatus(ctx context.Context, id int64, estado string) error
}

type DoctorRepository interface {
	ListActive(ctx context.Context) ([]*Doctor, error)
	Create(ctx context.Context, d *Doctor) error
}

type PatientRepository interface {
	List(ctx context.Context) ([]*Paciente, error)
	Create(ctx context.Context, p *Paciente) error
}
