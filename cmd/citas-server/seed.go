package main

import (
	"context"
	"fmt"

	"github.com/clinica/citas/internal/domain/citas"
)

type seedResult struct {
	Doctores  int
	Pacientes int
}

func strPtr(s string) *string { return &s }

func demoDoctors() []*citas.Doctor {
	return []*citas.Doctor{
		{Nombre: "Dra. Ana Pérez", Especialidad: "Cardiología", Email: strPtr("ana.perez@clinica.test"), Telefono: strPtr("555-0101")},
		{Nombre: "Dr. Luis Gómez", Especialidad: "Pediatría", Email: strPtr("luis.gomez@clinica.test"), Telefono: strPtr("555-0102")},
		{Nombre: "Dra. Marta Ruiz", Especialidad: "Dermatología", Email: strPtr("marta.ruiz@clinica.test"), Telefono: strPtr("555-0103")},
		{Nombre: "Dr. Jorge Castro", Especialidad: "Medicina General", Email: strPtr("jorge.castro@clinica.test"), Telefono: strPtr("555-0104")},
	}
}

func demoPatients() []*citas.Paciente {
	return []*citas.Paciente{
		{Nombre: "Juan López", Email: strPtr("juan.lopez@correo.test"), Telefono: strPtr("555-0201"), FechaNacimiento: strPtr("1985-03-14")},
		{Nombre: "María García", Email: strPtr("maria.garcia@correo.test"), Telefono: strPtr("555-0202"), FechaNacimiento: strPtr("1992-11-02")},
		{Nombre: "Carlos Sánchez", Email: strPtr("carlos.sanchez@correo.test"), Telefono: strPtr("555-0203"), FechaNacimiento: strPtr("1978-07-21")},
	}
}

// seedDemoData inserts the demo rows into tables that are still empty, so
// running it twice is harmless.
func seedDemoData(ctx context.Context, doctores citas.DoctorRepository, pacientes citas.PatientRepository) (seedResult, error) {
	var res seedResult

	existingDocs, err := doctores.ListActive(ctx)
	if err != nil {
		return res, fmt.Errorf("list doctores: %w", err)
	}
	if len(existingDocs) == 0 {
		for _, d := range demoDoctors() {
			if err := doctores.Create(ctx, d); err != nil {
				return res, fmt.Errorf("create doctor %q: %w", d.Nombre, err)
			}
			res.Doctores++
		}
	}

	existingPats, err := pacientes.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list pacientes: %w", err)
	}
	if len(existingPats) == 0 {
		for _, p := range demoPatients() {
			if err := pacientes.Create(ctx, p); err != nil {
				return res, fmt.Errorf("create paciente %q: %w", p.Nombre, err)
			}
			res.Pacientes++
		}
	}
	return res, nil
}
