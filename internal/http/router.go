package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-conversation-transcriber/internal/app"
	"ai-conversation-transcriber/internal/service/session"
)

// StatusSource reports the state of the transcription session.
// *session.RequestSession implements it.
type StatusSource interface {
	Status() session.Status
}

type sessionResponse struct {
	Service       string         `json:"service"`
	UptimeSeconds float64        `json:"uptimeSeconds"`
	Session       session.Status `json:"session"`
}

// NewRouter constructs the HTTP router for the service.
func NewRouter(application *app.Application, status StatusSource) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	// Health endpoints
	r.Get("/v1/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/readiness", func(w http.ResponseWriter, _ *http.Request) {
		if status == nil || status.Status().State != session.StateRecognizing.String() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// API routes
	r.Route("/v1", func(r chi.Router) {
		r.Get("/session", func(w http.ResponseWriter, _ *http.Request) {
			if status == nil {
				http.Error(w, `{"error":"no session"}`, http.StatusNotFound)
				return
			}

			resp := sessionResponse{Session: status.Status()}
			if application != nil {
				resp.UptimeSeconds = application.Uptime().Seconds()
				if application.Cfg != nil {
					resp.Service = application.Cfg.Service.Name
				}
			}

			body, err := json.Marshal(resp)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
		})
	})

	return r
}
