package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dog-training-api/internal/domain/dogs"
	"dog-training-api/internal/domain/trainers"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/notify"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context, ownerID string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if ownerID == "" || a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
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

type fakeTrainers map[string]trainers.Trainer

func (f fakeTrainers) GetByID(ctx context.Context, id string) (trainers.Trainer, error) {
	t, ok := f[id]
	if !ok {
		return trainers.Trainer{}, trainers.ErrNotFound
	}
	return t, nil
}

type fakeQueue struct {
	msgs []notify.Message
}

func (q *fakeQueue) Enqueue(msg notify.Message) bool {
	q.msgs = append(q.msgs, msg)
	return true
}

func newTestService(queue *fakeQueue) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(
		repo,
		fakeOwners{"owner-1": {ID: "owner-1", FirstName: "Sam", Email: "sam@example.com"}},
		fakeDogs{"dog-1": {ID: "dog-1", Name: "Milo", OwnerID: "owner-1"}},
		fakeTrainers{"trainer-1": {ID: "trainer-1", FirstName: "Alex"}},
		queue,
		zerolog.Nop(),
	)
	return svc, repo
}

func validInput() Input {
	start := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	return Input{
		DogID:     "dog-1",
		OwnerID:   "owner-1",
		TrainerID: "trainer-1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Location:  "Main Park",
		Purpose:   "obedience",
	}
}

// -------------------------
// Tests
// -------------------------

func TestCreate_EnqueuesConfirmation(t *testing.T) {
	queue := &fakeQueue{}
	svc, _ := newTestService(queue)

	a, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" {
		t.Fatal("create: missing id")
	}

	if len(queue.msgs) != 1 {
		t.Fatalf("expected 1 queued mail, got %d", len(queue.msgs))
	}
	msg := queue.msgs[0]
	if msg.To != "sam@example.com" {
		t.Fatalf("mail to %q, want sam@example.com", msg.To)
	}
	if !strings.Contains(msg.Subject, "Milo") {
		t.Fatalf("subject should name the dog, got %q", msg.Subject)
	}
}

func TestCreate_RejectsBrokenReferences(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"unknown owner", func(in *Input) { in.OwnerID = "nope" }},
		{"unknown dog", func(in *Input) { in.DogID = "nope" }},
		{"unknown trainer", func(in *Input) { in.TrainerID = "nope" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			queue := &fakeQueue{}
			svc, repo := newTestService(queue)

			in := validInput()
			tc.mutate(&in)

			if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrBadReference) {
				t.Fatalf("expected ErrBadReference, got %v", err)
			}
			// Nada persistido, nada encolado
			if len(repo.byID) != 0 {
				t.Fatalf("expected no appointment persisted, got %d", len(repo.byID))
			}
			if len(queue.msgs) != 0 {
				t.Fatalf("expected no mail queued, got %d", len(queue.msgs))
			}
		})
	}
}

func TestCreate_RequiresTimes(t *testing.T) {
	queue := &fakeQueue{}
	svc, _ := newTestService(queue)

	in := validInput()
	in.StartTime = time.Time{}

	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOverwrite_DoesNotResendConfirmation(t *testing.T) {
	queue := &fakeQueue{}
	svc, _ := newTestService(queue)

	a, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Location = "Back Field"
	updated, err := svc.Overwrite(context.Background(), a.ID, in)
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if updated.Location != "Back Field" {
		t.Fatalf("overwrite location got %q", updated.Location)
	}
	if !updated.CreatedAt.Equal(a.CreatedAt) {
		t.Fatal("overwrite should preserve CreatedAt")
	}

	if len(queue.msgs) != 1 {
		t.Fatalf("overwrite should not re-send confirmation, got %d mails", len(queue.msgs))
	}
}

func TestDelete_MissingIsNoop(t *testing.T) {
	queue := &fakeQueue{}
	svc, _ := newTestService(queue)

	if err := svc.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("delete missing should be noop, got %v", err)
	}
}
