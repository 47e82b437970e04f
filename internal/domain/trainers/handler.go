package trainers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

// Los GET son públicos: la página del equipo se renderiza sin sesión.
func RegisterRoutes(r chi.Router, svc *Service, policy auth.Policy) {
	r.Route("/trainers", func(tr chi.Router) {
		tr.Get("/", listTrainersHandler(svc))
		tr.Get("/{trainerID}", getTrainerHandler(svc))

		tr.Post("/", createTrainerHandler(svc, policy))
		tr.Put("/{trainerID}", overwriteTrainerHandler(svc, policy))
		tr.Delete("/{trainerID}", deleteTrainerHandler(svc, policy))
	})
}

type trainerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	ImgURL    string `json:"imgURL"`
}

type trainerResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	ImgURL    string    `json:"imgURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toTrainerResponse(t Trainer) trainerResponse {
	return trainerResponse{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Username:  t.Username,
		Email:     t.Email,
		Bio:       t.Bio,
		ImgURL:    t.ImgURL,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func listTrainersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]trainerResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTrainerResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTrainerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "trainerID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTrainerResponse(t))
	}
}

func createTrainerHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanManageTrainers(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req trainerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), Input(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTrainerResponse(t))
	}
}

func overwriteTrainerHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanManageTrainers(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req trainerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Overwrite(r.Context(), chi.URLParam(r, "trainerID"), Input(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTrainerResponse(t))
	}
}

func deleteTrainerHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanManageTrainers(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "trainerID")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "trainer deleted"})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "trainer not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
