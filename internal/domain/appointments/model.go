package appointments

import "time"

// Appointment es una sesión de entrenamiento agendada. Las referencias son
// IDs planos; Create valida que existan, después de eso pueden quedar
// colgando si se borra el dueño/perro (igual que el modelo original).
// StartTime <= EndTime no se valida: el original nunca lo hizo y hay datos
// históricos cargados al revés.
type Appointment struct {
	ID        string
	DogID     string
	OwnerID   string
	TrainerID string

	StartTime time.Time
	EndTime   time.Time

	Location   string
	Purpose    string
	BalanceDue string // texto libre, ej "$50"

	CreatedAt time.Time
	UpdatedAt time.Time
}
