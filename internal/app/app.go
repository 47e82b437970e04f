// Package app arma el grafo de la aplicación: repos según config, services
// por módulo, la cola de mails y el job de recordatorios.
package app

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	mem "dog-training-api/internal/adapters/storage/memory"
	pg "dog-training-api/internal/adapters/storage/postgres"
	"dog-training-api/internal/config"
	"dog-training-api/internal/domain/appointments"
	"dog-training-api/internal/domain/catalog"
	"dog-training-api/internal/domain/dogs"
	"dog-training-api/internal/domain/gallery"
	"dog-training-api/internal/domain/reports"
	"dog-training-api/internal/domain/trainers"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/notify"
	"dog-training-api/internal/reminder"
)

type App struct {
	Users        *users.Service
	Dogs         *dogs.Service
	Trainers     *trainers.Service
	Appointments *appointments.Service
	Catalog      *catalog.Service
	Reports      *reports.Service
	Gallery      *gallery.Service

	Dispatcher *notify.Dispatcher
	Reminder   *reminder.Scheduler // nil si el job está deshabilitado

	DB  *sql.DB // nil con repos in-memory
	Log zerolog.Logger
}

type repos struct {
	users    users.Repository
	dogs     dogs.Repository
	trainers trainers.Repository
	appts    appointments.Repository
	catalog  catalog.Repository
	reports  reports.Repository
	gallery  gallery.Repository
	runs     reminder.RunRepository
}

// New construye la aplicación. DSN vacío => repos in-memory (dev/tests);
// con DSN abre Postgres y falla rápido si no hay conexión.
func New(cfg config.Config, log zerolog.Logger, mailer notify.Mailer) (*App, error) {
	var (
		db *sql.DB
		rp repos
	)

	if dsn := cfg.Database.DSN; dsn != "" {
		opened, err := pg.Open(dsn, pg.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		db = opened
		rp = repos{
			users:    pg.NewUsersRepo(db),
			dogs:     pg.NewDogsRepo(db),
			trainers: pg.NewTrainersRepo(db),
			appts:    pg.NewAppointmentsRepo(db),
			catalog:  pg.NewCatalogRepo(db),
			reports:  pg.NewReportsRepo(db),
			gallery:  pg.NewGalleryRepo(db),
			runs:     pg.NewReminderRunsRepo(db),
		}
		log.Info().Msg("storage: postgres")
	} else {
		rp = repos{
			users:    mem.NewUsersRepo(),
			dogs:     mem.NewDogsRepo(),
			trainers: mem.NewTrainersRepo(),
			appts:    mem.NewAppointmentsRepo(),
			catalog:  mem.NewCatalogRepo(),
			reports:  mem.NewReportsRepo(),
			gallery:  mem.NewGalleryRepo(),
			runs:     mem.NewReminderRunsRepo(),
		}
		log.Info().Msg("storage: in-memory")
	}

	dispatcher := notify.NewDispatcher(mailer, log)

	usersSvc := users.NewService(rp.users)
	dogsSvc := dogs.NewService(rp.dogs, usersSvc)
	trainersSvc := trainers.NewService(rp.trainers)
	apptsSvc := appointments.NewService(rp.appts, rp.users, rp.dogs, rp.trainers, dispatcher, log)

	a := &App{
		Users:        usersSvc,
		Dogs:         dogsSvc,
		Trainers:     trainersSvc,
		Appointments: apptsSvc,
		Catalog:      catalog.NewService(rp.catalog),
		Reports:      reports.NewService(rp.reports),
		Gallery:      gallery.NewService(rp.gallery),
		Dispatcher:   dispatcher,
		DB:           db,
		Log:          log,
	}

	if cfg.Reminder.Enabled {
		a.Reminder = reminder.NewScheduler(
			rp.appts,
			rp.users,
			rp.dogs,
			rp.runs,
			dispatcher,
			reminder.Config{
				CheckInterval: cfg.Reminder.CheckInterval,
				SendHour:      cfg.Reminder.SendHour,
				Location:      cfg.ReminderLocation(),
			},
			log,
		)
	}

	return a, nil
}

// Start arranca los procesos de fondo (cola de mails, job de recordatorios).
func (a *App) Start() {
	a.Dispatcher.Start()
	if a.Reminder != nil {
		a.Reminder.Start()
	}
}

// Stop frena los procesos de fondo en orden inverso y cierra la DB. La cola
// se drena con el deadline del ctx: los mails encolados intentan salir antes
// de cortar.
func (a *App) Stop(ctx context.Context) {
	if a.Reminder != nil {
		a.Reminder.Stop()
	}
	a.Dispatcher.Stop(ctx)
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
