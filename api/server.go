package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/nstehr/vimy/tower-core/model"
)

// Decider makes the per-phase decisions; *agent.Agent satisfies it.
type Decider interface {
	HandleNegotiate(ctx context.Context, req model.NegotiationRequest) ([]model.DiplomacyProposal, error)
	HandleCombat(ctx context.Context, req model.CombatRequest) ([]model.Action, error)
}

// Server exposes the bot to the game server over HTTP.
type Server struct {
	identity Identity
	decider  Decider
	limiter  *rate.Limiter // nil = unlimited
	router   *mux.Router
}

// NewServer wires the routes. A non-positive rps disables throttling.
func NewServer(identity Identity, decider Decider, rps float64, burst int) *Server {
	s := &Server{identity: identity, decider: decider}
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	r := mux.NewRouter()
	r.Use(s.requestLog)
	if s.limiter != nil {
		r.Use(s.throttle)
	}
	r.HandleFunc(RouteHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(RouteInfo, s.handleInfo).Methods(http.MethodGet)
	r.HandleFunc(RouteNegotiate, s.handleNegotiate).Methods(http.MethodPost)
	r.HandleFunc(RouteCombat, s.handleCombat).Methods(http.MethodPost)
	r.NotFoundHandler = s.requestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("no route for "+r.URL.Path))
	}))
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request by the logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder captures the status code for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLog tags every request with an id and logs it with the bot name.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(ctx))

		slog.Info("request",
			"bot", s.identity.Name,
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			slog.Warn("request throttled", "id", RequestID(r.Context()), "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthMessage{Status: "OK"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.identity)
}

func (s *Server) handleNegotiate(w http.ResponseWriter, r *http.Request) {
	var req model.NegotiationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Warn("bad negotiate body", "id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	proposals, err := s.decider.HandleNegotiate(r.Context(), req)
	if err != nil {
		s.decisionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

func (s *Server) handleCombat(w http.ResponseWriter, r *http.Request) {
	var req model.CombatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Warn("bad combat body", "id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	actions, err := s.decider.HandleCombat(r.Context(), req)
	if err != nil {
		s.decisionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (s *Server) decisionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, model.ErrInvalidRequest) {
		slog.Warn("rejected request", "id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	slog.Error("decision error", "id", RequestID(r.Context()), "error", err)
	writeError(w, http.StatusInternalServerError, err)
}
