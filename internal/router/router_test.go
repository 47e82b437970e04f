package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dog-training-api/internal/app"
	"dog-training-api/internal/config"
	"dog-training-api/internal/notify"
	"dog-training-api/internal/router"
)

// -------------------------
// Mailer de captura
// -------------------------

type captureMailer struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (m *captureMailer) Send(ctx context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *captureMailer) last() notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

// waitFor espera a que la cola de mails drene (el envío es asíncrono).
func (m *captureMailer) waitFor(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.count() >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d mails, got %d", n, m.count())
}

func newTestServer(t *testing.T) (*httptest.Server, *captureMailer) {
	t.Helper()

	mailer := &captureMailer{}
	cfg := config.Config{} // DSN vacío => in-memory; reminder deshabilitado

	a, err := app.New(cfg, zerolog.Nop(), mailer)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	a.Start()

	ts := httptest.NewServer(router.New(a, router.Options{AuthVerifier: nil}))
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		a.Stop(ctx)
	})
	return ts, mailer
}

func TestHTTP_EndToEnd_AppointmentFlow(t *testing.T) {
	ts, mailer := newTestServer(t)

	ownerID := "owner-1"
	trainerID := "trainer-1"

	// 1) El dueño registra su perfil
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/register", ownerID, "", map[string]any{
			"firstName": "Sam",
			"lastName":  "Rivera",
			"email":     "sam@example.com",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
		}
	}

	// 2) El admin da de alta al entrenador (queda con rol trainer)
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/registerTrainer", "admin-1", "admin", map[string]any{
			"uid":       trainerID,
			"firstName": "Alex",
			"lastName":  "Cole",
			"email":     "alex@example.com",
			"bio":       "10 years of obedience training",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 registerTrainer, got %d body=%s", st, string(body))
		}
	}

	// 3) El dueño da de alta su perro
	dogID := createDog(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"breed":   "mixed",
		"ownerID": ownerID,
	})

	// 4) El dueño agenda una cita; dispara el mail de confirmación
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	apptID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/api/appointments", ownerID, "", map[string]any{
			"dog":        dogID,
			"owner":      ownerID,
			"trainer":    trainerID,
			"startTime":  start.Format(time.RFC3339),
			"endTime":    start.Add(time.Hour).Format(time.RFC3339),
			"location":   "Main Park",
			"purpose":    "obedience",
			"balanceDue": "$50",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" {
			t.Fatalf("create appointment: missing id body=%s", string(body))
		}
		apptID = resp.ID
	}

	mailer.waitFor(t, 1)
	if got := mailer.last().To; got != "sam@example.com" {
		t.Fatalf("confirmation mail to %q, want sam@example.com", got)
	}

	// 5) Sin filtro la lista la ve el staff; el dueño filtra por sí mismo
	{
		st, body := doReq(t, ts.URL, "GET", "/api/appointments?owner="+ownerID, ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list own appointments, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 appointment for owner, got %d", len(items))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/api/appointments?owner=somebody-else", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered list as admin, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected empty list for other owner, got %d", len(items))
		}
	}

	// 6) PUT es overwrite completo: purpose omitido queda vacío
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/appointments/"+apptID, ownerID, "", map[string]any{
			"dog":       dogID,
			"owner":     ownerID,
			"trainer":   trainerID,
			"startTime": start.Format(time.RFC3339),
			"endTime":   start.Add(2 * time.Hour).Format(time.RFC3339),
			"location":  "Back Field",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 overwrite, got %d body=%s", st, string(body))
		}
		var resp struct {
			Location string `json:"location"`
			Purpose  string `json:"purpose"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Location != "Back Field" || resp.Purpose != "" {
			t.Fatalf("overwrite did not replace fields: %+v", resp)
		}
	}

	// 7) El overwrite no re-manda mail de confirmación
	time.Sleep(50 * time.Millisecond)
	if mailer.count() != 1 {
		t.Fatalf("expected 1 mail after overwrite, got %d", mailer.count())
	}

	// 8) DELETE de un ID inexistente es no-op OK
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/appointments/nope", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete missing appointment, got %d", st)
		}
	}
}

func TestHTTP_MergeDogs_UnionIdempotent(t *testing.T) {
	ts, _ := newTestServer(t)

	ownerID := "owner-2"
	registerUser(t, ts.URL, ownerID, "pat@example.com")

	dogA := createDog(t, ts.URL, ownerID, map[string]any{"name": "Rex", "ownerID": ownerID})
	dogB := createDog(t, ts.URL, ownerID, map[string]any{"name": "Luna", "ownerID": ownerID})

	patch := map[string]any{"dogs": []string{dogA, dogB}}

	first := patchDogs(t, ts.URL, ownerID, patch)
	second := patchDogs(t, ts.URL, ownerID, patch) // replay exacto

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected union of 2 dogs, got %v then %v", first, second)
	}

	// Unlink saca la referencia pero no borra el documento del perro
	{
		st, body := doReq(t, ts.URL, "DELETE", "/api/users/"+ownerID+"/dogs/"+dogA, ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 unlink, got %d body=%s", st, string(body))
		}
		var resp struct {
			Dogs []string `json:"dogs"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Dogs) != 1 || resp.Dogs[0] != dogB {
			t.Fatalf("unlink left dogs=%v, want [%s]", resp.Dogs, dogB)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/dogs/"+dogA, ownerID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected dog document to survive unlink, got %d", st)
		}
	}
}

func TestHTTP_AuthPolicy(t *testing.T) {
	ts, _ := newTestServer(t)

	// /protected: 401 sin identidad, claims con identidad
	{
		st, _ := doReq(t, ts.URL, "GET", "/protected", "", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 on /protected without token, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/protected", "user-9", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on /protected with identity, got %d", st)
		}
		var resp struct {
			UserID string `json:"userId"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.UserID != "user-9" {
			t.Fatalf("expected claims echo, got %s", string(body))
		}
	}

	// Lecturas públicas sin sesión
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/trainers", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 public trainers list, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/ServiceLibrary", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 public service library, got %d", st)
		}
	}

	// Mutaciones de catálogo: anónimo 403, customer 403, admin 201
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/ServiceLibrary", "", "", map[string]any{"name": "Puppy Class"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 anonymous catalog create, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/ServiceLibrary", "owner-3", "", map[string]any{"name": "Puppy Class"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 customer catalog create, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/api/ServiceLibrary", "admin-1", "admin", map[string]any{
			"name":  "Puppy Class",
			"price": "$80 / session",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 admin catalog create, got %d body=%s", st, string(body))
		}
	}

	// Listado de usuarios requiere sesión (401) y rol admin (403)
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/users", "", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous users list, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/users", "owner-3", "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 customer users list, got %d", st)
		}
	}

	// Un customer no puede tocar el perfil de otro
	registerUser(t, ts.URL, "owner-4", "a@example.com")
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/users/owner-4", "owner-5", "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 cross-user read, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/users/owner-4", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin user read, got %d", st)
		}
	}
}

func TestHTTP_RegisterTrainer_AdminOnly(t *testing.T) {
	ts, _ := newTestServer(t)

	payload := map[string]any{
		"uid":       "trainer-9",
		"firstName": "Alex",
		"lastName":  "Cole",
		"email":     "alex@example.com",
	}

	// Sin identidad: 401 (la ruta vive detrás de RequireUser)
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/auth/registerTrainer", "", "", payload)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 anonymous registerTrainer, got %d", st)
		}
	}

	// Un customer autenticado no puede auto-promoverse a trainer
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/auth/registerTrainer", "mallory", "", map[string]any{
			"firstName": "Mallory",
			"email":     "mallory@example.com",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 customer registerTrainer, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/api/trainers", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trainers list, got %d", st)
		}
		var items []map[string]any
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("rejected registration must not create a trainer profile, got %v", items)
		}
	}

	// El admin sí, keyed por el UID del body
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/registerTrainer", "admin-1", "admin", payload)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 admin registerTrainer, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != "trainer-9" || resp.Role != "trainer" {
			t.Fatalf("unexpected registerTrainer response %s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/api/users/trainer-9", "admin-1", "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trainer user profile, got %d", st)
		}
		var resp struct {
			Role string `json:"role"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Role != "trainer" {
			t.Fatalf("expected user role trainer, got %s", string(body))
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func registerUser(t *testing.T, baseURL, userID, email string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/auth/register", userID, "", map[string]any{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
}

func createDog(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/dogs", userID, "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create dog: missing id body=%s", string(body))
	}
	return resp.ID
}

func patchDogs(t *testing.T, baseURL, userID string, payload map[string]any) []string {
	t.Helper()

	st, body := doReq(t, baseURL, "PATCH", "/api/users/"+userID, userID, "", payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 patch dogs, got %d body=%s", st, string(body))
	}

	var resp struct {
		Dogs []string `json:"dogs"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Dogs
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	if debugRole != "" {
		req.Header.Set("X-Debug-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
