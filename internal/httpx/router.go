package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AngelCh415/leadcalc/internal/capture"
	"github.com/AngelCh415/leadcalc/internal/metrics"
	"github.com/AngelCh415/leadcalc/internal/models"
	"github.com/AngelCh415/leadcalc/internal/report"
	"github.com/AngelCh415/leadcalc/internal/telemetry"
	"github.com/AngelCh415/leadcalc/internal/utils"
)

const maxBody = 64 << 10

type Deps struct {
	Log            *slog.Logger
	Estimator      *metrics.Service
	Gate           *capture.Gate
	Telemetry      *telemetry.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	RevealDelay    time.Duration
}

type unlockRequest struct {
	Contact models.Contact `json:"contact"`
	Inputs  models.Inputs  `json:"inputs"`
}

type unlockResponse struct {
	Unlocked      bool            `json:"unlocked"`
	Duplicate     bool            `json:"duplicate"`
	SubmissionID  string          `json:"submission_id"`
	RevealAfterMS int64           `json:"reveal_after_ms"`
	Estimate      models.Estimate `json:"estimate"`
}

type submissionStatus struct {
	ID        string                  `json:"id"`
	Status    models.SubmissionStatus `json:"status"`
	Attempts  int                     `json:"attempts"`
	LastError string                  `json:"last_error,omitempty"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func NewRouter(d Deps) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(d.Log))
	mux.Use(middleware.Recoverer)
	mux.Use(d.Telemetry.Middleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	if d.Gatherer != nil {
		mux.Method(http.MethodGet, "/metrics", telemetry.Handler(d.Gatherer))
	}

	mux.Route("/api", func(api chi.Router) {
		api.Get("/options", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, d.Estimator.Options())
		})

		api.Get("/estimate", func(w http.ResponseWriter, r *http.Request) {
			est, err := d.Estimator.EstimateQuery(r.URL.Query())
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			writeJSON(w, http.StatusOK, est)
		})

		api.Post("/estimate", func(w http.ResponseWriter, r *http.Request) {
			in := models.DefaultInputs()
			if err := decode(w, r, &in); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			est, err := d.Estimator.Estimate(in)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			writeJSON(w, http.StatusOK, est)
		})

		api.Post("/unlock", func(w http.ResponseWriter, r *http.Request) {
			req := unlockRequest{Inputs: models.DefaultInputs()}
			if err := decode(w, r, &req); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			est, err := d.Estimator.Estimate(req.Inputs)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			sub, dup, err := d.Gate.Unlock(req.Contact, est)
			var ve capture.ValidationError
			if errors.As(err, &ve) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "invalid contact", "fields": ve})
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusOK, unlockResponse{
				Unlocked:      true,
				Duplicate:     dup,
				SubmissionID:  sub.ID,
				RevealAfterMS: d.RevealDelay.Milliseconds(),
				Estimate:      sub.Estimate,
			})
		})

		api.Get("/submissions/{id}", func(w http.ResponseWriter, r *http.Request) {
			sub, ok := d.Gate.Submission(chi.URLParam(r, "id"))
			if !ok {
				writeError(w, http.StatusNotFound, errors.New("submission not found"))
				return
			}
			writeJSON(w, http.StatusOK, submissionStatus{
				ID:        sub.ID,
				Status:    sub.Status,
				Attempts:  sub.Attempts,
				LastError: sub.LastError,
				UpdatedAt: sub.UpdatedAt,
			})
		})

		api.Get("/report/{id}", func(w http.ResponseWriter, r *http.Request) {
			sub, ok := d.Gate.Submission(chi.URLParam(r, "id"))
			if !ok {
				http.Error(w, "report not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if err := report.HTML(w, sub.Estimate); err != nil {
				d.Log.Error("render report", slog.String("submission", sub.ID), slog.String("err", err.Error()))
			}
		})
	})

	return mux
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
