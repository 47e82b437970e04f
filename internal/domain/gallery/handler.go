package gallery

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

// GET público (la galería se muestra sin sesión); mutaciones solo admin.
func RegisterRoutes(r chi.Router, svc *Service, policy auth.Policy) {
	r.Route("/gallery", func(gr chi.Router) {
		gr.Get("/", listImagesHandler(svc))
		gr.Post("/", addImageHandler(svc, policy))
		gr.Delete("/{imageID}", deleteImageHandler(svc, policy))
	})
}

type imageResponse struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func listImagesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]imageResponse, 0, len(items))
		for _, img := range items {
			out = append(out, imageResponse{ID: img.ID, ImageURL: img.ImageURL, CreatedAt: img.CreatedAt})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func addImageHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanManageGallery(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req struct {
			ImageURL string `json:"imageUrl"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		img, err := svc.Add(r.Context(), req.ImageURL)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, imageResponse{ID: img.ID, ImageURL: img.ImageURL, CreatedAt: img.CreatedAt})
	}
}

func deleteImageHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanManageGallery(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "imageID")); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "image deleted"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
