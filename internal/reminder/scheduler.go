package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dog-training-api/internal/domain/appointments"
	"dog-training-api/internal/domain/dogs"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/notify"
)

// Dependencias vía interfaces locales, como en el resto de los módulos.
type AppointmentSource interface {
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error)
}

type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

type DogDirectory interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

type Config struct {
	CheckInterval time.Duration
	// SendHour: hora local (0-23) a partir de la cual corre el batch del día.
	SendHour int
	Location *time.Location
}

type Scheduler struct {
	appts  AppointmentSource
	owners OwnerDirectory
	dogDir DogDirectory
	runs   RunRepository
	queue  notify.Enqueuer
	cfg    Config
	log    zerolog.Logger
	now    func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewScheduler(
	appts AppointmentSource,
	owners OwnerDirectory,
	dogDir DogDirectory,
	runs RunRepository,
	queue notify.Enqueuer,
	cfg Config,
	log zerolog.Logger,
) *Scheduler {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Scheduler{
		appts:  appts,
		owners: owners,
		dogDir: dogDir,
		runs:   runs,
		queue:  queue,
		cfg:    cfg,
		log:    log.With().Str("component", "reminder").Logger(),
		now:    time.Now,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		go s.loop()
	})
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	<-s.doneCh
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()

	// Chequeo inmediato al arrancar: si el proceso se reinició después de la
	// hora de envío y el batch de hoy no corrió, corre ahora.
	s.tick()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := s.now().In(s.cfg.Location)
	if now.Hour() < s.cfg.SendHour {
		return
	}

	date := now.Format("2006-01-02")
	if _, err := s.runs.Get(ctx, date); err == nil {
		return // el batch de hoy ya corrió
	} else if !errors.Is(err, ErrRunNotFound) {
		s.log.Error().Err(err).Msg("reminder run lookup failed")
		return
	}

	run, err := s.RunOnce(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("reminder batch failed")
		return
	}
	s.log.Info().Str("date", run.Date).Int("sent", run.Sent).Int("failed", run.Failed).Msg("reminder batch done")
}

// RunOnce ejecuta el batch para el día de `now` y registra el run. Cada cita
// se procesa aislada: una referencia rota o un render fallido cuenta como
// failed y no corta el resto (antes una sola cita rota tiraba todo el batch).
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (Run, error) {
	now = now.In(s.cfg.Location)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
	to := from.AddDate(0, 0, 1)

	items, err := s.appts.ListStartingBetween(ctx, from, to)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		Date:  from.Format("2006-01-02"),
		RanAt: now,
	}

	for _, a := range items {
		if err := s.remind(ctx, a); err != nil {
			run.Failed++
			s.log.Warn().Err(err).Str("appointment", a.ID).Msg("reminder skipped")
			continue
		}
		run.Sent++
	}

	if err := s.runs.Record(ctx, run); err != nil {
		// Sin registro, un restart hoy re-enviaría el batch. Lo logueamos
		// como error y devolvemos el run igual: los mails ya salieron.
		s.log.Error().Err(err).Str("date", run.Date).Msg("reminder run not recorded")
	}
	return run, nil
}

func (s *Scheduler) remind(ctx context.Context, a appointments.Appointment) error {
	owner, err := s.owners.GetByID(ctx, a.OwnerID)
	if err != nil {
		return err
	}
	dog, err := s.dogDir.GetByID(ctx, a.DogID)
	if err != nil {
		return err
	}

	msg, err := notify.ReminderMessage(notify.AppointmentEmail{
		To:        owner.Email,
		OwnerName: owner.FullName(),
		DogName:   dog.Name,
		StartTime: a.StartTime.In(s.cfg.Location),
		EndTime:   a.EndTime.In(s.cfg.Location),
		Location:  a.Location,
		Purpose:   a.Purpose,
	})
	if err != nil {
		return err
	}

	s.queue.Enqueue(msg)
	return nil
}
