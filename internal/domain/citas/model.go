package citas

import "time"

// Appointment statuses as stored in citas.estado.
const (
	EstadoAgendada     = "agendada"
	EstadoConfirmada   = "confirmada"
	EstadoReprogramada = "reprogramada"
	EstadoCancelada    = "cancelada"
)

// Doctor statuses as stored in doctores.estado.
const (
	DoctorActivo   = "activo"
	DoctorInactivo = "inactivo"
)

// ActiveStatuses are the statuses that occupy a slot.
var ActiveStatuses = []string{EstadoAgendada, EstadoConfirmada}

// Cita is an appointment joined with the patient and doctor display fields.
type Cita struct {
	ID         int64     `json:"id"`
	PacienteID int64     `json:"paciente_id"`
	DoctorID   int64     `json:"doctor_id"`
	Fecha      string    `json:"fecha"`
	Hora       string    `json:"hora"`
	Motivo     *string   `json:"motivo"`
	Estado     string    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`

	PacienteNombre string `json:"paciente_nombre,omitempty"`
	DoctorNombre   string `json:"doctor_nombre,omitempty"`
	Especialidad   string `json:"especialidad,omitempty"`
}

type Doctor struct {
	ID           int64     `json:"id"`
	Nombre       string    `json:"nombre"`
	Especialidad string    `json:"especialidad"`
	Email        *string   `json:"email"`
	Telefono     *string   `json:"telefono"`
	Estado       string    `json:"estado"`
	CreatedAt    time.Time `json:"created_at"`
}

type Paciente struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	Email           *string   `json:"email"`
	Telefono        *string   `json:"telefono"`
	FechaNacimiento *string   `json:"fecha_nacimiento"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookRequest is the body of POST /api/citas/agendar.
type BookRequest struct {
	PacienteID int64  `json:"paciente_id" form:"paciente_id"`
	DoctorID   int64  `json:"doctor_id" form:"doctor_id"`
	Fecha      string `json:"fecha" form:"fecha"`
	Hora       string `json:"hora" form:"hora"`
	Motivo     string `json:"motivo" form:"motivo"`
}

// RescheduleRequest is the body of PUT /api/citas/reprogramar/:id.
type RescheduleRequest struct {
	Fecha string `json:"fecha" form:"fecha"`
	Hora  string `json:"hora" form:"hora"`
}
