package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-training-api/internal/middleware"
	"dog-training-api/internal/ports/auth"
)

// Reads: cualquier usuario autenticado (el dueño mira los reportes de sus
// citas). Writes: trainers/admin.
func RegisterRoutes(r chi.Router, svc *Service, policy auth.Policy) {
	r.Route("/trainingReports", func(rr chi.Router) {
		rr.Get("/", listReportsHandler(svc))
		rr.Get("/{reportID}", getReportHandler(svc))

		rr.Post("/", createReportHandler(svc, policy))
		rr.Put("/{reportID}", overwriteReportHandler(svc, policy))
		rr.Delete("/{reportID}", deleteReportHandler(svc, policy))
	})
}

type reportRequest struct {
	Appointment string `json:"appointment"`
	ReportText  string `json:"reportText"`
}

type reportResponse struct {
	ID          string    `json:"id"`
	Appointment string    `json:"appointment"`
	ReportText  string    `json:"reportText"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toReportResponse(tr TrainingReport) reportResponse {
	return reportResponse{
		ID:          tr.ID,
		Appointment: tr.AppointmentID,
		ReportText:  tr.ReportText,
		CreatedAt:   tr.CreatedAt,
		UpdatedAt:   tr.UpdatedAt,
	}
}

func listReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("appointment"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reportResponse, 0, len(items))
		for _, tr := range items {
			out = append(out, toReportResponse(tr))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tr, err := svc.GetByID(r.Context(), chi.URLParam(r, "reportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(tr))
	}
}

func createReportHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanWriteReports(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req reportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tr, err := svc.Create(r.Context(), Input{
			AppointmentID: req.Appointment,
			ReportText:    req.ReportText,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReportResponse(tr))
	}
}

func overwriteReportHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanWriteReports(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req reportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tr, err := svc.Overwrite(r.Context(), chi.URLParam(r, "reportID"), Input{
			AppointmentID: req.Appointment,
			ReportText:    req.ReportText,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReportResponse(tr))
	}
}

func deleteReportHandler(svc *Service, policy auth.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if !policy.CanWriteReports(claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "reportID")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "report deleted"})
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "report not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
