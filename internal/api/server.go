package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sadopc/calendr/internal/service"
)

const healthMessage = "Calendar API Server is running"

type Server struct {
	svc     *service.Services
	log     *slog.Logger
	version string
	debug   bool
	now     func() time.Time
	httpSrv *http.Server
}

type Options struct {
	Services *service.Services
	Logger   *slog.Logger
	Version  string
	// Debug adds the underlying error text to 500 responses.
	Debug bool
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}
	s := &Server{
		svc:     opts.Services,
		log:     logger,
		version: version,
		debug:   opts.Debug,
		now:     time.Now,
	}
	s.httpSrv = &http.Server{
		Handler:           s.logRequests(allowCORS(s.routes())),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) ServeTCP(ctx context.Context, bind string) error {
	if bind == "" {
		return errors.New("bind required")
	}
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	s.log.Info("api listening", "addr", ln.Addr().String())
	go s.shutdownOnContext(ctx)
	if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) shutdownOnContext(ctx context.Context) {
	<-ctx.Done()
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(timeout)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)

	mux.HandleFunc("GET /api/events", s.listEvents)
	mux.HandleFunc("GET /api/events/{id}", s.getEvent)
	mux.HandleFunc("POST /api/events", s.createEvent)
	mux.HandleFunc("PUT /api/events/{id}", s.updateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", s.deleteEvent)

	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("GET /api/tasks/{id}", s.getTask)
	mux.HandleFunc("POST /api/tasks", s.createTask)
	mux.HandleFunc("PUT /api/tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.deleteTask)
	mux.HandleFunc("PATCH /api/tasks/{id}/toggle", s.toggleTask)

	mux.HandleFunc("GET /api/appointments", s.listAppointments)
	mux.HandleFunc("GET /api/appointments/{id}", s.getAppointment)
	mux.HandleFunc("POST /api/appointments", s.createAppointment)
	mux.HandleFunc("PUT /api/appointments/{id}", s.updateAppointment)
	mux.HandleFunc("DELETE /api/appointments/{id}", s.deleteAppointment)

	mux.HandleFunc("GET /api/calendars", s.listCalendars)
	mux.HandleFunc("GET /api/calendars/{id}", s.getCalendar)
	mux.HandleFunc("POST /api/calendars", s.createCalendar)
	mux.HandleFunc("PUT /api/calendars/{id}", s.updateCalendar)
	mux.HandleFunc("DELETE /api/calendars/{id}", s.deleteCalendar)
	mux.HandleFunc("PATCH /api/calendars/{id}/toggle", s.toggleCalendar)

	mux.HandleFunc("GET /api/task-lists", s.listTaskLists)
	mux.HandleFunc("GET /api/task-lists/{id}", s.getTaskList)
	mux.HandleFunc("POST /api/task-lists", s.createTaskList)
	mux.HandleFunc("PUT /api/task-lists/{id}", s.updateTaskList)
	mux.HandleFunc("DELETE /api/task-lists/{id}", s.deleteTaskList)

	mux.HandleFunc("/", s.handleUnknown)
	return mux
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   healthMessage,
		Version:   s.version,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	writeErr(w, http.StatusNotFound, "Route not found", r.Method+" "+r.URL.Path)
}

// Envelope wraps every API response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, code int, data any, message string) {
	writeJSON(w, code, Envelope{Success: true, Data: data, Message: message})
}

func writeErr(w http.ResponseWriter, code int, msg, details string) {
	writeJSON(w, code, Envelope{Success: false, Error: msg, Details: details})
}

// fail maps a service error onto the status taxonomy. Unexpected errors are
// logged and reported with the generic message for op.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, op string) {
	var (
		nf service.NotFoundError
		ve service.ValidationError
		ce service.ConflictError
	)
	switch {
	case errors.As(err, &nf):
		writeErr(w, http.StatusNotFound, nf.Error(), "")
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, ve.Error(), "")
	case errors.As(err, &ce):
		writeErr(w, http.StatusBadRequest, ce.Error(), "")
	default:
		s.log.Error("request failed", "op", op, "method", r.Method, "path", r.URL.Path, "err", err)
		details := ""
		if s.debug {
			details = err.Error()
		}
		writeErr(w, http.StatusInternalServerError, "Failed to "+op, details)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return false
	}
	return true
}
