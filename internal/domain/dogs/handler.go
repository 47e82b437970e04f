package dogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, policy auth.Policy) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, policy))
		dr.Post("/", createDogHandler(svc, policy))

		dr.Get("/{dogID}", getDogHandler(svc, policy))
		dr.Put("/{dogID}", overwriteDogHandler(svc, policy))
		dr.Delete("/{dogID}", deleteDogHandler(svc, policy))
	})
}

type dogRequest struct {
	Name           string `json:"name"`
	Age            string `json:"age"`
	Breed          string `json:"breed"`
	Weight         string `json:"weight"`
	AdditionalInfo string `json:"additionalInfo"`
	OwnerID        string `json:"ownerID"`
}

type dogResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Age            string    `json:"age"`
	Breed          string    `json:"breed"`
	Weight         string    `json:"weight"`
	AdditionalInfo string    `json:"additionalInfo"`
	OwnerID        string    `json:"ownerID"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:             d.ID,
		Name:           d.Name,
		Age:            d.Age,
		Breed:          d.Breed,
		Weight:         d.Weight,
		AdditionalInfo: d.AdditionalInfo,
		OwnerID:        d.OwnerID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func listDogsHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		ownerID := r.URL.Query().Get("ownerID")
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

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createDogHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if !policy.CanActFor(claims, req.OwnerID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		d, err := svc.Create(r.Context(), Input(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

func getDogHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !policy.CanActFor(claims, d.OwnerID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func overwriteDogHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		current, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !policy.CanActFor(claims, current.OwnerID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Overwrite(r.Context(), current.ID, Input(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		// delete-on-missing es no-op, pero si existe chequeamos dueño.
		if d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID")); err == nil {
			if !policy.CanActFor(claims, d.OwnerID) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "dog deleted"})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "dog not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
