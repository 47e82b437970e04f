// Package reports maneja los reportes de entrenamiento por cita.
package reports

import "time"

// TrainingReport referencia una cita. No hay constraint de unicidad: pueden
// existir varios reportes por cita (el cliente muestra el primero).
type TrainingReport struct {
	ID            string
	AppointmentID string
	ReportText    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
