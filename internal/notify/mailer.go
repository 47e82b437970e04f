// Package notify arma y despacha los mails salientes (confirmación de cita,
// recordatorio del día). El envío es un side effect encolado después del
// write: nunca falla el request HTTP ni tira abajo el proceso.
package notify

import "context"

// Message es un mail ya renderizado, listo para el transporte.
type Message struct {
	To       string
	Subject  string
	BodyHTML string
	BodyText string
}

// Mailer entrega un mensaje por el transporte configurado.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Enqueuer es lo que ven los servicios de dominio: encolar y seguir.
type Enqueuer interface {
	Enqueue(msg Message) bool
}
