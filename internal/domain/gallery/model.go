// Package gallery maneja las fotos del sitio. Acá solo viven las URLs;
// el hosting de las imágenes es externo.
package gallery

import "time"

type Image struct {
	ID       string
	ImageURL string

	CreatedAt time.Time
}
