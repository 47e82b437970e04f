// Package catalog maneja los servicios ofrecidos (colección ServiceLibrary).
package catalog

import "time"

// Item es un servicio de entrenamiento publicado en el sitio. Price queda
// como texto libre ("$80 / session"): así lo carga y lo muestra el cliente.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
