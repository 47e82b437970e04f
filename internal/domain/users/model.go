package users

import (
	"time"

	"dog-training-api/internal/ports/auth"
)

// User es el perfil de una cuenta, keyed por el UID del identity provider
// (registro) o por un ID generado (alta por admin).
type User struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
	Email     string
	Role      auth.Role

	// Dogs guarda los IDs de los perros del dueño. Es el array denormalizado
	// que el cliente consume; Dog.OwnerID sigue siendo el link canónico y
	// ambos lados se tocan por un único code path (MergeDogs/UnlinkDog).
	Dogs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
