// Package server exposes the application over JSON RPC-style HTTP
// endpoints and mounts the server-rendered web UI.
//
// Authentication is delegated to the hosted identity provider sitting in
// front of this server; by the time a request arrives here, the
// authenticated user id is carried in the X-Bossy-User header.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bossyapp/bossy/billing"
	"github.com/bossyapp/bossy/boss"
	"github.com/bossyapp/bossy/checkin"
	"github.com/bossyapp/bossy/goal"
	"github.com/bossyapp/bossy/plan"
	"github.com/bossyapp/bossy/store"
	"github.com/bossyapp/bossy/web"
)

// UserHeader carries the authenticated user id, set by the identity
// layer in front of this server.
const UserHeader = "X-Bossy-User"

const shutdownTimeout = 5 * time.Second

// Options configures a server.
type Options struct {
	// DatabasePath is the SQLite file path.
	DatabasePath string

	// BaseURL is the externally visible URL used by the web UI to
	// reach the RPC endpoints. Empty means derive from the request.
	BaseURL string

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server handles bossy RPCs.
type Server struct {
	store    *store.Store
	goals    *goal.Service
	checkIns *checkin.Service
	gate     *plan.Gate
	baseURL  string
	logger   *log.Logger
}

// New creates a server and opens its backing store.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(opts.DatabasePath) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	st, err := store.Open(opts.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	gate := plan.NewGate(st, st)
	counter := checkin.NewCounter(st, st, logger)

	return &Server{
		store:    st,
		goals:    goal.NewService(st, gate, st),
		checkIns: checkin.NewService(st, st, counter, st, logger),
		gate:     gate,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		logger:   logger,
	}, nil
}

// Close closes the backing store. Serve closes it on shutdown; Close is
// for callers that mount Handler themselves.
func (s *Server) Close() error {
	return s.store.Close()
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.handler(s.baseURL)
}

func (s *Server) handler(baseURL string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/goals/list", s.handleGoalsList)
	mux.HandleFunc("/goals/create", s.handleGoalsCreate)
	mux.HandleFunc("/goals/update", s.handleGoalsUpdate)
	mux.HandleFunc("/goals/complete", s.handleGoalsComplete)
	mux.HandleFunc("/goals/abandon", s.handleGoalsAbandon)
	mux.HandleFunc("/goals/tasks", s.handleGoalTasks)
	mux.HandleFunc("/checkins/submit", s.handleCheckInsSubmit)
	mux.HandleFunc("/events/list", s.handleEventsList)
	mux.HandleFunc("/plan", s.handlePlan)
	mux.Handle("/billing/webhook", billing.NewHandler(s.store, s.logger))
	webHandler := web.NewHandler(web.Options{BaseURL: baseURL})
	mux.Handle("/web/", webHandler)
	mux.Handle("/web", http.RedirectHandler("/web/goals", http.StatusFound))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/web/goals", http.StatusFound)
	})
	return s.recoverHandler(mux)
}

// Serve runs the server on the given address until an interrupt.
func (s *Server) Serve(addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped", "err", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logger.Info("interrupt received, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		closeErr := s.store.Close()
		return errors.Join(shutdownErr, listenErr, closeErr)
	}
}

// requestUser extracts the authenticated user id.
func requestUser(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get(UserHeader))
	if userID == "" {
		return "", fmt.Errorf("%w: %s", errMissingUser, UserHeader)
	}
	return userID, nil
}

// requestLocale resolves the feedback locale from the explicit header or
// Accept-Language, defaulting to English.
func requestLocale(r *http.Request) boss.Locale {
	if value := strings.TrimSpace(r.Header.Get("X-Bossy-Locale")); value != "" {
		return boss.MatchLocale(value)
	}
	return boss.MatchLocale(r.Header.Get("Accept-Language"))
}

func decodeRequest(r *http.Request, dest any) error {
	if r.Method != http.MethodPost {
		return errMethodNotAllowed
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

var (
	errMethodNotAllowed = errors.New("method not allowed")
	errMissingUser      = errors.New("missing user header")
)

// errorStatus maps domain errors to HTTP statuses. Unauthorized access
// surfaces as not-found upstream of here, so there is no 403 for
// ownership, only for plan limits.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, goal.ErrNotFound), errors.Is(err, goal.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, plan.ErrGoalLimitReached), errors.Is(err, plan.ErrBossTypeLocked):
		return http.StatusForbidden
	case errors.Is(err, errMissingUser),
		errors.Is(err, goal.ErrEmptyTitle),
		errors.Is(err, goal.ErrTitleTooLong),
		errors.Is(err, goal.ErrInvalidIntensity),
		errors.Is(err, goal.ErrInvalidStatus),
		errors.Is(err, goal.ErrInvalidTaskStatus),
		errors.Is(err, goal.ErrInvalidDateRange),
		errors.Is(err, goal.ErrMissingDates),
		errors.Is(err, goal.ErrInvalidTransition),
		errors.Is(err, goal.ErrEmptyTaskDescription),
		errors.Is(err, checkin.ErrInvalidStatus),
		errors.Is(err, boss.ErrInvalidPersonality),
		errors.Is(err, boss.ErrInvalidLocale),
		errors.Is(err, boss.ErrInvalidOutcome):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (t *responseTracker) WriteHeader(status int) {
	t.wroteHeader = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *responseTracker) Write(data []byte) (int, error) {
	t.wroteHeader = true
	return t.ResponseWriter.Write(data)
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logger.Error("panic handling request", "method", r.Method, "path", r.URL.Path, "recovered", recovered, "stack", string(debug.Stack()))
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}
