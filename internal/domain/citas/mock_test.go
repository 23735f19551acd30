package citas

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// -- Mock Repositories --

type mockAppointmentRepo struct {
	mu     sync.Mutex
	citas  map[int64]*Cita
	nextID int64
	// err, when set, is returned by every method.
	err error
}

// isActive mirrors the estado filter of the slot index.
func isActive(estado string) bool {
	for _, s := range ActiveStatuses {
		if s == estado {
			return true
		}
	}
	return false
}

// checkInt4 fails like the driver does when an id cannot be encoded as int4.
func checkInt4(ids ...int64) error {
	for _, id := range ids {
		if id > math.MaxInt32 {
			return fmt.Errorf("%d is greater than maximum value for int4", id)
		}
	}
	return nil
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{citas: make(map[int64]*Cita), nextID: 1}
}

func (m *mockAppointmentRepo) seed(c Cita) *Cita {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	if c.Estado == "" {
		c.Estado = EstadoAgendada
	}
	m.citas[c.ID] = &c
	return &c
}

func (m *mockAppointmentRepo) List(_ context.Context) ([]*Cita, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*Cita, 0, len(m.citas))
	for _, c := range m.citas {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha != out[j].Fecha {
			return out[i].Fecha > out[j].Fecha
		}
		return out[i].Hora > out[j].Hora
	})
	return out, nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id int64) (*Cita, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkInt4(id); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.citas[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockAppointmentRepo) bookedLocked(doctorID int64, fecha string, excludeID int64) []string {
	var out []string
	for _, c := range m.citas {
		if c.DoctorID == doctorID && c.Fecha == fecha && c.ID != excludeID && isActive(c.Estado) {
			out = append(out, c.Hora)
		}
	}
	sort.Strings(out)
	return out
}

func (m *mockAppointmentRepo) BookedTimes(_ context.Context, doctorID int64, fecha string, excludeID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkInt4(doctorID, excludeID); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.bookedLocked(doctorID, fecha, excludeID), nil
}

func (m *mockAppointmentRepo) CreateIfFree(_ context.Context, c *Cita) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkInt4(c.PacienteID, c.DoctorID); err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}
	for _, h := range m.bookedLocked(c.DoctorID, c.Fecha, 0) {
		if h == c.Hora {
			return ErrSlotUnavailable
		}
	}
	c.ID = m.nextID
	m.nextID++
	c.Estado = EstadoAgendada
	c.CreatedAt = time.Now()
	cp := *c
	m.citas[c.ID] = &cp
	return nil
}

func (m *mockAppointmentRepo) Reschedule(_ context.Context, id int64, fecha, hora string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkInt4(id); err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}
	c, ok := m.citas[id]
	if !ok {
		return ErrNotFound
	}
	c.Fecha, c.Hora, c.Estado = fecha, hora, EstadoReprogramada
	return nil
}

func (m *mockAppointmentRepo) SetStatus(_ context.Context, id int64, estado string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkInt4(id); err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}
	c, ok := m.citas[id]
	if !ok {
		return ErrNotFound
	}
	c.Estado = estado
	return nil
}

type mockDoctorRepo struct {
	doctores []*Doctor
	err      error
}

func (m *mockDoctorRepo) ListActive(_ context.Context) ([]*Doctor, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*Doctor, 0)
	for _, d := range m.doctores {
		if d.Estado == DoctorActivo {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDoctorRepo) Create(_ context.Context, d *Doctor) error {
	if m.err != nil {
		return m.err
	}
	d.ID = int64(len(m.doctores) + 1)
	if d.Estado == "" {
		d.Estado = DoctorActivo
	}
	m.doctores = append(m.doctores, d)
	return nil
}

type mockPatientRepo struct {
	pacientes []*Paciente
	err       error
}

func (m *mockPatientRepo) List(_ context.Context) ([]*Paciente, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append(make([]*Paciente, 0, len(m.pacientes)), m.pacientes...), nil
}

func (m *mockPatientRepo) Create(_ context.Context, p *Paciente) error {
	if m.err != nil {
		return m.err
	}
	p.ID = int64(len(m.pacientes) + 1)
	m.pacientes = append(m.pacientes, p)
	return nil
}

type recordingObserver struct {
	bookings      []string
	reschedules   []string
	cancellations int
}

func (o *recordingObserver) ObserveBooking(r string)    { o.bookings = append(o.bookings, r) }
func (o *recordingObserver) ObserveCancellation()       { o.cancellations++ }
func (o *recordingObserver) ObserveReschedule(r string) { o.reschedules = append(o.reschedules, r) }

type testEnv struct {
	svc       *Service
	citas     *mockAppointmentRepo
	doctores  *mockDoctorRepo
	pacientes *mockPatientRepo
	obs       *recordingObserver
}

func newTestEnv() *testEnv {
	env := &testEnv{
		citas: newMockAppointmentRepo(),
		doctores: &mockDoctorRepo{doctores: []*Doctor{
			{ID: 1, Nombre: "Dra. Ana Pérez", Especialidad: "Cardiología", Estado: DoctorActivo},
			{ID: 2, Nombre: "Dr. Luis Gómez", Especialidad: "Pediatría", Estado: DoctorInactivo},
			{ID: 3, Nombre: "Dra. Marta Ruiz", Especialidad: "Dermatología", Estado: DoctorActivo},
		}},
		pacientes: &mockPatientRepo{pacientes: []*Paciente{
			{ID: 1, Nombre: "Juan López"},
			{ID: 2, Nombre: "María García"},
		}},
		obs: &recordingObserver{},
	}
	env.svc = NewService(env.citas, env.doctores, env.pacientes).WithObserver(env.obs)
	return env
}
