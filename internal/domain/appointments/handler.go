package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, policy auth.Policy) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc, policy))
		ar.Post("/", createAppointmentHandler(svc, policy))

		ar.Put("/{appointmentID}", overwriteAppointmentHandler(svc, policy))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc, policy))
	})
}

type appointmentRequest struct {
	Dog        string `json:"dog"`
	Owner      string `json:"owner"`
	Trainer    string `json:"trainer"`
	StartTime  string `json:"startTime"` // RFC3339
	EndTime    string `json:"endTime"`
	Location   string `json:"location"`
	Purpose    string `json:"purpose"`
	BalanceDue string `json:"balanceDue"`
}

type appointmentResponse struct {
	ID         string    `json:"id"`
	Dog        string    `json:"dog"`
	Owner      string    `json:"owner"`
	Trainer    string    `json:"trainer"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Location   string    `json:"location"`
	Purpose    string    `json:"purpose"`
	BalanceDue string    `json:"balanceDue"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:         a.ID,
		Dog:        a.DogID,
		Owner:      a.OwnerID,
		Trainer:    a.TrainerID,
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Location:   a.Location,
		Purpose:    a.Purpose,
		BalanceDue: a.BalanceDue,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// toInput parsea los timestamps del body (RFC3339) al tipo nativo.
func (req appointmentRequest) toInput() (Input, error) {
	in := Input{
		DogID:      req.Dog,
		OwnerID:    req.Owner,
		TrainerID:  req.Trainer,
		Location:   req.Location,
		Purpose:    req.Purpose,
		BalanceDue: req.BalanceDue,
	}

	if s := strings.TrimSpace(req.StartTime); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Input{}, errors.New("startTime must be RFC3339")
		}
		in.StartTime = t
	}
	if s := strings.TrimSpace(req.EndTime); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Input{}, errors.New("endTime must be RFC3339")
		}
		in.EndTime = t
	}
	return in, nil
}

func listAppointmentsHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		ownerID := r.URL.Query().Get("owner")
		if ownerID == "" {
			if !policy.CanListAll(claims) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		} else if !policy.CanActFor(claims, ownerID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.List(r.Context(), ownerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createAppointmentHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if !policy.CanActFor(claims, req.Owner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func overwriteAppointmentHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !policy.CanActFor(claims, current.OwnerID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toInput()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Overwrite(r.Context(), current.ID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		// delete-on-missing es no-op; si existe, chequeamos dueño.
		if a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID")); err == nil {
			if !policy.CanActFor(claims, a.OwnerID) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted"})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBadReference):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "appointment not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
