package citas

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/citas/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// slotConstraint is the partial unique index on active bookings.
const slotConstraint = "citas_slot_activo_uniq"

// translateWriteErr maps constraint and literal errors to domain errors.
func translateWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err) && db.ConstraintName(err) == slotConstraint:
		return ErrSlotUnavailable
	case db.IsForeignKeyViolation(err):
		return invalid("paciente o doctor inexistente")
	case db.IsInvalidDatetime(err):
		return invalid("fecha u hora inválida")
	}
	return err
}

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const citaSelect = `
	SELECT c.id, c.paciente_id, c.doctor_id,
		to_char(c.fecha, 'YYYY-MM-DD'), to_char(c.hora, 'HH24:MI:SS'),
		c.motivo, c.estado, c.created_at,
		p.nombre, d.nombre, d.especialidad
	FROM citas c
	JOIN pacientes p ON c.paciente_id = p.id
	JOIN doctores d ON c.doctor_id = d.id`

func scanCita(row pgx.Row) (*Cita, error) {
	var c Cita
	err := row.Scan(&c.ID, &c.PacienteID, &c.DoctorID, &c.Fecha, &c.Hora,
		&c.Motivo, &c.Estado, &c.CreatedAt,
		&c.PacienteNombre, &c.DoctorNombre, &c.Especialidad)
	return &c, err
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*Cita, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, citaSelect+` ORDER BY c.fecha DESC, c.hora DESC`)
	if err != nil {
		return nil, fmt.Errorf("list citas: %w", err)
	}
	defer rows.Close()

	out := make([]*Cita, 0)
	for rows.Next() {
		c, err := scanCita(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cita: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Cita, error) {
	c, err := scanCita(conn(ctx, r.pool).QueryRow(ctx, citaSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get cita %d: %w", id, err)
	}
	return c, nil
}

func (r *appointmentRepoPG) BookedTimes(ctx context.Context, doctorID int64, fecha string, excludeID int64) ([]string, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT to_char(hora, 'HH24:MI:SS') FROM citas
		WHERE doctor_id = $1 AND fecha = $2::text::date
			AND estado = ANY($3::text[]) AND id <> $4
		ORDER BY hora`,
		doctorID, fecha, ActiveStatuses, excludeID)
	if err != nil {
		return nil, translateWriteErr(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// CreateIfFree inserts in one statement so two concurrent bookings of the
// same slot cannot both pass the existence check. The partial unique index
// citas_slot_activo_uniq backs it up.
func (r *appointmentRepoPG) CreateIfFree(ctx context.Context, c *Cita) error {
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO citas (paciente_id, doctor_id, fecha, hora, motivo)
		SELECT $1::int, $2::int, $3::text::date, $4::text::time, $5::text
		WHERE NOT EXISTS (
			SELECT 1 FROM citas
			WHERE doctor_id = $2::int AND fecha = $3::text::date AND hora = $4::text::time
				AND estado = ANY($6::text[])
		)
		RETURNING id, estado, created_at`,
		c.PacienteID, c.DoctorID, c.Fecha, c.Hora, c.Motivo, ActiveStatuses,
	).Scan(&c.ID, &c.Estado, &c.CreatedAt)
	if db.IsNoRows(err) {
		return ErrSlotUnavailable
	}
	return translateWriteErr(err)
}

func (r *appointmentRepoPG) Reschedule(ctx context.Context, id int64, fecha, hora string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE citas SET fecha = $1::text::date, hora = $2::text::time, estado = $3
		WHERE id = $4`,
		fecha, hora, EstadoReprogramada, id)
	if err != nil {
		return translateWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *appointmentRepoPG) SetStatus(ctx context.Context, id int64, estado string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `UPDATE citas SET estado = $1 WHERE id = $2`, estado, id)
	if err != nil {
		return translateWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) ListActive(ctx context.Context) ([]*Doctor, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, nombre, especialidad, email, telefono, estado, created_at
		FROM doctores WHERE estado = $1 ORDER BY id`, DoctorActivo)
	if err != nil {
		return nil, fmt.Errorf("list doctores: %w", err)
	}
	defer rows.Close()

	out := make([]*Doctor, 0)
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Nombre, &d.Especialidad, &d.Email, &d.Telefono, &d.Estado, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	if d.Estado == "" {
		d.Estado = DoctorActivo
	}
	return conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO doctores (nombre, especialidad, email, telefono, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		d.Nombre, d.Especialidad, d.Email, d.Telefono, d.Estado,
	).Scan(&d.ID, &d.CreatedAt)
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) List(ctx context.Context) ([]*Paciente, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, nombre, email, telefono, to_char(fecha_nacimiento, 'YYYY-MM-DD'), created_at
		FROM pacientes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pacientes: %w", err)
	}
	defer rows.Close()

	out := make([]*Paciente, 0)
	for rows.Next() {
		var p Paciente
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Email, &p.Telefono, &p.FechaNacimiento, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan paciente: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *patientRepoPG) Create(ctx context.Context, p *Paciente) error {
	return translateWriteErr(conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO pacientes (nombre, email, telefono, fecha_nacimiento)
		VALUES ($1, $2, $3, $4::text::date)
		RETURNING id, created_at`,
		p.Nombre, p.Email, p.Telefono, p.FechaNacimiento,
	).Scan(&p.ID, &p.CreatedAt))
}
