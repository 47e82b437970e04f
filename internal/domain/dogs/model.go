package dogs

import "time"

// Dog es el perfil de un perro. Age/Weight quedan como texto libre: así los
// carga el cliente y ningún flujo los opera como números.
type Dog struct {
	ID             string
	Name           string
	Age            string
	Breed          string
	Weight         string
	AdditionalInfo string
	OwnerID        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
