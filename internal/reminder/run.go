// Package reminder implementa el job diario que manda los recordatorios de
// citas del día. Reemplaza el cron fire-and-forget original por un registro
// durable por fecha: un restart en el mismo día no duplica el batch.
package reminder

import (
	"context"
	"errors"
	"time"
)

var ErrRunNotFound = errors.New("reminder run not found")

// Run es el registro durable de un batch ejecutado.
type Run struct {
	// Date es la fecha local del batch, formato 2006-01-02.
	Date   string
	RanAt  time.Time
	Sent   int
	Failed int
}

type RunRepository interface {
	Get(ctx context.Context, date string) (Run, error)
	Record(ctx context.Context, run Run) error
}
