package users

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"dog-training-api/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Save(ctx context.Context, u User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestRegister_UpsertsByUID(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	u1, err := svc.Register(ctx, "uid-1", Input{Email: "a@example.com"}, auth.RoleCustomer)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u1.ID != "uid-1" || u1.Role != auth.RoleCustomer {
		t.Fatalf("unexpected user %+v", u1)
	}

	// Re-registro con el mismo UID pisa el documento, no falla.
	u2, err := svc.Register(ctx, "uid-1", Input{Email: "b@example.com", FirstName: "Sam"}, auth.RoleTrainer)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if u2.Email != "b@example.com" || u2.Role != auth.RoleTrainer {
		t.Fatalf("re-register did not overwrite: %+v", u2)
	}
}

func TestRegister_RequiresUIDAndEmail(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", Input{Email: "a@example.com"}, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty uid, got %v", err)
	}
	if _, err := svc.Register(ctx, "uid-1", Input{}, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty email, got %v", err)
	}
}

func TestMergeDogs_UnionIdempotent(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "uid-1", Input{Email: "a@example.com", Dogs: []string{"d1"}}, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.MergeDogs(ctx, "uid-1", []string{"d2", "d1", "d3", "d2"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	want := []string{"d1", "d2", "d3"}
	if !reflect.DeepEqual(u.Dogs, want) {
		t.Fatalf("merge got %v, want %v", u.Dogs, want)
	}

	// Replay exacto: mismo resultado
	u, err = svc.MergeDogs(ctx, "uid-1", []string{"d2", "d1", "d3", "d2"})
	if err != nil {
		t.Fatalf("merge replay: %v", err)
	}
	if !reflect.DeepEqual(u.Dogs, want) {
		t.Fatalf("merge replay got %v, want %v", u.Dogs, want)
	}
}

func TestMergeDogs_UnknownUser(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.MergeDogs(context.Background(), "nope", []string{"d1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnlinkDog_RemovesOnlyThatID(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "uid-1", Input{Email: "a@example.com", Dogs: []string{"d1", "d2"}}, ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.UnlinkDog(ctx, "uid-1", "d1")
	if err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if !reflect.DeepEqual(u.Dogs, []string{"d2"}) {
		t.Fatalf("unlink got %v, want [d2]", u.Dogs)
	}

	// Unlink de un ID que no está es no-op.
	u, err = svc.UnlinkDog(ctx, "uid-1", "d1")
	if err != nil {
		t.Fatalf("unlink noop: %v", err)
	}
	if !reflect.DeepEqual(u.Dogs, []string{"d2"}) {
		t.Fatalf("unlink noop got %v, want [d2]", u.Dogs)
	}
}

func TestOverwrite_ZeroesOmittedFieldsKeepsRole(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	orig, err := svc.Register(ctx, "uid-1", Input{
		Email:     "a@example.com",
		FirstName: "Sam",
		LastName:  "Rivera",
		Dogs:      []string{"d1"},
	}, auth.RoleTrainer)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Overwrite(ctx, "uid-1", Input{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if u.FirstName != "" || u.LastName != "" || len(u.Dogs) != 0 {
		t.Fatalf("overwrite should zero omitted fields: %+v", u)
	}
	if u.Role != auth.RoleTrainer {
		t.Fatalf("overwrite should preserve role, got %q", u.Role)
	}
	if !u.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("overwrite should preserve CreatedAt")
	}
}

func TestDelete_MissingIsNoop(t *testing.T) {
	svc := NewService(newTestRepo())

	if err := svc.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("delete missing should be noop, got %v", err)
	}
}
