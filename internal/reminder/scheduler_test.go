package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dog-training-api/internal/domain/appointments"
	"dog-training-api/internal/domain/dogs"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/notify"
)

// -------------------------
// Fakes
// -------------------------

type fakeAppts []appointments.Appointment

func (f fakeAppts) ListStartingBetween(ctx context.Context, from, to time.Time) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	for _, a := range f {
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeOwners map[string]users.User

func (f fakeOwners) GetByID(ctx context.Context, id string) (users.User, error) {
	u, ok := f[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

type fakeDogs map[string]dogs.Dog

func (f fakeDogs) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	d, ok := f[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

type fakeRuns struct {
	byDate map[string]Run
}

func newFakeRuns() *fakeRuns {
	return &fakeRuns{byDate: map[string]Run{}}
}

func (r *fakeRuns) Get(ctx context.Context, date string) (Run, error) {
	run, ok := r.byDate[date]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

func (r *fakeRuns) Record(ctx context.Context, run Run) error {
	r.byDate[run.Date] = run
	return nil
}

type fakeQueue struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (q *fakeQueue) Enqueue(msg notify.Message) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
	return true
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

func appt(id, ownerID, dogID string, start time.Time) appointments.Appointment {
	return appointments.Appointment{
		ID:        id,
		OwnerID:   ownerID,
		DogID:     dogID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Location:  "Main Park",
	}
}

var testLoc = time.UTC

func newTestScheduler(appts fakeAppts, runs *fakeRuns, queue *fakeQueue) *Scheduler {
	return NewScheduler(
		appts,
		fakeOwners{"owner-1": {ID: "owner-1", FirstName: "Sam", Email: "sam@example.com"}},
		fakeDogs{"dog-1": {ID: "dog-1", Name: "Milo"}},
		runs,
		queue,
		Config{CheckInterval: time.Hour, SendHour: 7, Location: testLoc},
		zerolog.Nop(),
	)
}

// -------------------------
// Tests
// -------------------------

func TestRunOnce_SelectsSameDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, testLoc)

	appts := fakeAppts{
		appt("a-today-early", "owner-1", "dog-1", time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc)),  // límite inferior, entra
		appt("a-today-late", "owner-1", "dog-1", time.Date(2026, 3, 10, 23, 59, 0, 0, testLoc)), // entra
		appt("a-yesterday", "owner-1", "dog-1", time.Date(2026, 3, 9, 23, 59, 0, 0, testLoc)),   // fuera
		appt("a-tomorrow", "owner-1", "dog-1", time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)),     // límite superior, fuera
	}

	queue := &fakeQueue{}
	runs := newFakeRuns()
	s := newTestScheduler(appts, runs, queue)

	run, err := s.RunOnce(context.Background(), now)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if run.Sent != 2 || run.Failed != 0 {
		t.Fatalf("expected sent=2 failed=0, got sent=%d failed=%d", run.Sent, run.Failed)
	}
	if queue.count() != 2 {
		t.Fatalf("expected 2 queued reminders, got %d", queue.count())
	}
	if run.Date != "2026-03-10" {
		t.Fatalf("expected run date 2026-03-10, got %s", run.Date)
	}
}

func TestRunOnce_IsolatesBrokenReferences(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, testLoc)

	appts := fakeAppts{
		appt("a-broken", "owner-gone", "dog-1", time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc)),
		appt("a-ok", "owner-1", "dog-1", time.Date(2026, 3, 10, 10, 0, 0, 0, testLoc)),
	}

	queue := &fakeQueue{}
	s := newTestScheduler(appts, newFakeRuns(), queue)

	run, err := s.RunOnce(context.Background(), now)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if run.Sent != 1 || run.Failed != 1 {
		t.Fatalf("expected sent=1 failed=1, got sent=%d failed=%d", run.Sent, run.Failed)
	}
	if queue.count() != 1 {
		t.Fatalf("expected 1 queued reminder, got %d", queue.count())
	}
}

func TestTick_GatesOnSendHour(t *testing.T) {
	appts := fakeAppts{
		appt("a-1", "owner-1", "dog-1", time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc)),
	}

	queue := &fakeQueue{}
	runs := newFakeRuns()
	s := newTestScheduler(appts, runs, queue)

	// Antes de la hora de envío no corre nada.
	s.now = func() time.Time { return time.Date(2026, 3, 10, 6, 59, 0, 0, testLoc) }
	s.tick()
	if queue.count() != 0 {
		t.Fatalf("expected no reminders before send hour, got %d", queue.count())
	}
	if len(runs.byDate) != 0 {
		t.Fatal("expected no run recorded before send hour")
	}

	// Pasada la hora, corre y registra.
	s.now = func() time.Time { return time.Date(2026, 3, 10, 7, 5, 0, 0, testLoc) }
	s.tick()
	if queue.count() != 1 {
		t.Fatalf("expected 1 reminder after send hour, got %d", queue.count())
	}
	if _, ok := runs.byDate["2026-03-10"]; !ok {
		t.Fatal("expected run recorded for 2026-03-10")
	}
}

func TestTick_DoesNotRepeatSameDay(t *testing.T) {
	appts := fakeAppts{
		appt("a-1", "owner-1", "dog-1", time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc)),
	}

	queue := &fakeQueue{}
	runs := newFakeRuns()
	s := newTestScheduler(appts, runs, queue)

	s.now = func() time.Time { return time.Date(2026, 3, 10, 7, 5, 0, 0, testLoc) }
	s.tick()
	s.tick() // simula el restart/re-chequeo del mismo día
	s.now = func() time.Time { return time.Date(2026, 3, 10, 18, 0, 0, 0, testLoc) }
	s.tick()

	if queue.count() != 1 {
		t.Fatalf("expected batch to run once per day, got %d reminders", queue.count())
	}

	// Al día siguiente vuelve a correr (con su propia ventana).
	s.now = func() time.Time { return time.Date(2026, 3, 11, 7, 5, 0, 0, testLoc) }
	s.tick()
	if _, ok := runs.byDate["2026-03-11"]; !ok {
		t.Fatal("expected a fresh run for the next day")
	}
	if queue.count() != 1 {
		t.Fatalf("next-day window has no appointments, got %d reminders", queue.count())
	}
}
