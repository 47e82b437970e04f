package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dog-training-api/internal/domain/trainers"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

// Rutas de registro: crean/pisan el perfil keyed por el UID del identity
// provider. El token (o los headers de debug) ya pasó por
// AuthContext + RequireUser.
func registerAuthRoutes(r chi.Router, usersSvc *users.Service, trainersSvc *trainers.Service, policy auth.Policy) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(usersSvc))
		ar.Post("/registerTrainer", registerTrainerHandler(usersSvc, trainersSvc, policy))
	})
}

type registerRequest struct {
	UID       string `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	ImgURL    string `json:"imgURL"`
}

func registerHandler(usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Email == "" {
			req.Email = claims.Email
		}

		u, err := usersSvc.Register(r.Context(), claims.UserID, users.Input{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  req.Username,
			Email:     req.Email,
		}, auth.RoleCustomer)
		if err != nil {
			writeRegisterError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"id":    u.ID,
			"email": u.Email,
			"role":  string(u.Role),
		})
	}
}

// registerTrainer crea el perfil público del entrenador y deja el perfil de
// usuario con rol trainer, ambos bajo el mismo UID. Solo admin: dar de alta
// entrenadores es una operación sobre la colección trainers, y esa colección
// solo la muta el admin (mismo check que POST /api/trainers). El UID del
// entrenador viene en el body; sin UID se asume que el admin se registra a
// sí mismo.
func registerTrainerHandler(usersSvc *users.Service, trainersSvc *trainers.Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanManageTrainers(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		uid := strings.TrimSpace(req.UID)
		if uid == "" {
			uid = claims.UserID
		}
		if req.Email == "" && uid == claims.UserID {
			req.Email = claims.Email
		}

		t, err := trainersSvc.Register(r.Context(), uid, trainers.Input{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  req.Username,
			Email:     req.Email,
			Bio:       req.Bio,
			ImgURL:    req.ImgURL,
		})
		if err != nil {
			writeRegisterError(w, err)
			return
		}

		if _, err := usersSvc.Register(r.Context(), uid, users.Input{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Username:  req.Username,
			Email:     req.Email,
		}, auth.RoleTrainer); err != nil {
			writeRegisterError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{
			"id":    t.ID,
			"email": t.Email,
			"role":  string(auth.RoleTrainer),
		})
	}
}

func writeRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidInput), errors.Is(err, trainers.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
