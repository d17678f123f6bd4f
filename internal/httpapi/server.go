package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"csms/internal/models"
	"csms/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the read side of the session store consumed by the admin surface.
type Store interface {
	ListAll(ctx context.Context) ([]models.Session, error)
	GetByID(ctx context.Context, id int64) (*models.Session, error)
}

type Server struct {
	Store      Store
	Supervisor *ws.Supervisor
}

func NewServer(store Store, supervisor *ws.Supervisor) *Server {
	return &Server{Store: store, Supervisor: supervisor}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/ocpp", s.Supervisor.HandleConnection)
	r.Get("/sessions", s.ListSessions)
	r.Get("/sessions/{id}", s.GetSession)
	r.Post("/start_charging", s.StartCharging)
	r.Post("/stop_charging", s.StopCharging)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("CSMS is running (OCPP 1.6J at /ocpp)"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type sessionView struct {
	Id         int64   `json:"id"`
	IdTag      string  `json:"idTag"`
	StartTime  string  `json:"startTime"`
	EndTime    *string `json:"endTime"`
	Status     string  `json:"status"`
	MeterValue float64 `json:"meterValue"`
}

func toView(sess models.Session) sessionView {
	v := sessionView{
		Id:         sess.Id,
		IdTag:      sess.IdTag,
		StartTime:  sess.StartTime.UTC().Format(time.RFC3339),
		Status:     string(sess.Status),
		MeterValue: sess.MeterValue,
	}
	if sess.EndTime != nil {
		end := sess.EndTime.UTC().Format(time.RFC3339)
		v.EndTime = &end
	}
	return v
}

// ListSessions returns every session in insertion order, timestamps as
// ISO-8601 UTC with a Z suffix, endTime null while charging.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.ListAll(r.Context())
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	views := make([]sessionView, 0, len(items))
	for _, sess := range items {
		views = append(views, toView(sess))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	sess, err := s.Store.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if sess == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toView(*sess))
}

// StartCharging and StopCharging are operator stubs; charging is driven by
// the charge points themselves over OCPP.
func (s *Server) StartCharging(w http.ResponseWriter, r *http.Request) {
	log.Println("start_charging requested over HTTP; replying with a stub")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "Charging started (dummy via HTTP)"})
}

func (s *Server) StopCharging(w http.ResponseWriter, r *http.Request) {
	log.Println("stop_charging requested over HTTP; replying with a stub")
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "message": "Charging stopped (dummy via HTTP)"})
}
