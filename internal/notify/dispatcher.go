package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultQueueSize  = 64
	defaultMaxRetries = 3
	defaultBackoff    = 2 * time.Second
)

// Dispatcher desacopla el envío de mails del request: cola en memoria con un
// worker y reintentos acotados para fallas transitorias. At-least-once dentro
// del proceso; si el proceso muere con la cola llena, esos mails se pierden
// (igual que el original, pero sin matar el proceso por un SMTP caído).
type Dispatcher struct {
	mailer     Mailer
	log        zerolog.Logger
	queue      chan Message
	maxRetries int
	backoff    time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

type DispatcherOption func(*Dispatcher)

func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan Message, n)
		}
	}
}

func WithRetries(max int, backoff time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if max >= 0 {
			d.maxRetries = max
		}
		if backoff > 0 {
			d.backoff = backoff
		}
	}
}

func NewDispatcher(mailer Mailer, log zerolog.Logger, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		mailer:     mailer,
		log:        log.With().Str("component", "mail-dispatcher").Logger(),
		queue:      make(chan Message, defaultQueueSize),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.worker()
	})
}

// Enqueue nunca bloquea: con la cola llena descarta y loguea.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case d.queue <- msg:
		return true
	default:
		d.log.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail queue full, dropping")
		return false
	}
}

// Stop corta el worker y espera, hasta el deadline del ctx, a que drene lo
// que quedó encolado. Durante el drenaje no hay reintentos: cada mensaje
// tiene un intento de salir.
func (d *Dispatcher) Stop(ctx context.Context) {
	d.stopOnce.Do(func() { close(d.done) })

	finished := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.done:
			d.drain()
			return
		case msg := <-d.queue:
			d.deliver(msg)
		}
	}
}

// drain entrega lo que quedó en la cola al momento del Stop. deliver no
// reintenta acá: con done cerrado el backoff corta al primer fallo.
func (d *Dispatcher) drain() {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	for attempt := 0; ; attempt++ {
		err := d.mailer.Send(context.Background(), msg)
		if err == nil {
			d.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
			return
		}

		if !IsTransient(err) || attempt >= d.maxRetries {
			d.log.Error().Err(err).
				Str("to", msg.To).
				Str("subject", msg.Subject).
				Int("attempts", attempt+1).
				Msg("mail delivery failed, dropping")
			return
		}

		d.log.Warn().Err(err).Str("to", msg.To).Int("attempt", attempt+1).Msg("mail send failed, retrying")

		select {
		case <-d.done:
			return
		case <-time.After(d.backoff * time.Duration(attempt+1)):
		}
	}
}
