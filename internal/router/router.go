package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"dog-training-api/internal/app"
	"dog-training-api/internal/domain/appointments"
	"dog-training-api/internal/domain/catalog"
	"dog-training-api/internal/domain/dogs"
	"dog-training-api/internal/domain/gallery"
	"dog-training-api/internal/domain/reports"
	"dog-training-api/internal/domain/trainers"
	"dog-training-api/internal/domain/users"
	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
}

func New(a *app.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Smoke test de autenticación: 401 sin token, claims del caller con token.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)
		pr.Get("/protected", protectedHandler)
	})

	policy := auth.Policy{}

	r.Route("/api", func(api chi.Router) {
		// El cliente React corre en otro origin; mismo criterio abierto que
		// tenía el backend original.
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID", "X-Debug-Email", "X-Debug-Role"},
			MaxAge:         300,
		}))
		api.Use(httprate.LimitByIP(100, time.Minute))

		// Módulos con lecturas públicas: el check de rol vive en cada
		// handler de mutación.
		trainers.RegisterRoutes(api, a.Trainers, policy)
		catalog.RegisterRoutes(api, a.Catalog, policy)
		gallery.RegisterRoutes(api, a.Gallery, policy)

		// El resto requiere usuario resuelto en todas sus rutas.
		api.Group(func(priv chi.Router) {
			priv.Use(middleware.RequireUser)

			users.RegisterRoutes(priv, a.Users, policy)
			dogs.RegisterRoutes(priv, a.Dogs, policy)
			appointments.RegisterRoutes(priv, a.Appointments, policy)
			reports.RegisterRoutes(priv, a.Reports, policy)

			registerAuthRoutes(priv, a.Users, a.Trainers, policy)
		})
	})

	return r
}

func protectedHandler(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.GetClaims(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"userId": claims.UserID,
		"email":  claims.Email,
		"role":   string(claims.Role),
	})
}
