package trainers

import "time"

// Trainer es el perfil público de un entrenador (página "Our Team").
type Trainer struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	Email     string
	Bio       string
	ImgURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
