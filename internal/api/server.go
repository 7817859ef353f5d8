package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/TimurManjosov/bfhl/internal/dispatch"
	"github.com/TimurManjosov/bfhl/internal/telemetry"
)

const (
	// MaxBodyBytes caps POST /bfhl request bodies.
	MaxBodyBytes = 1 << 20
	// DefaultRequestTimeout bounds a request when no timeout is given.
	DefaultRequestTimeout = 10 * time.Second

	msgBodyTooLarge = "Request body too large"
)

type Server struct {
	dispatcher     *dispatch.Dispatcher
	email          string
	requestTimeout time.Duration
	logger         zerolog.Logger

	info     []byte
	infoETag string
}

type infoResponse struct {
	IsSuccess     bool              `json:"is_success"`
	OfficialEmail string            `json:"official_email"`
	Message       string            `json:"message"`
	Endpoints     map[string]string `json:"endpoints"`
}

type healthResponse struct {
	IsSuccess     bool   `json:"is_success"`
	OfficialEmail string `json:"official_email"`
}

type operationCodeResponse struct {
	OperationCode int `json:"operation_code"`
}

// NewServer creates the HTTP API around d. email is echoed in every envelope.
func NewServer(d *dispatch.Dispatcher, email string, requestTimeout time.Duration, logger zerolog.Logger) *Server {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	s := &Server{
		dispatcher:     d,
		email:          email,
		requestTimeout: requestTimeout,
		logger:         logger,
	}

	// the info document never changes for the life of the process
	s.info, _ = json.Marshal(infoResponse{
		IsSuccess:     true,
		OfficialEmail: email,
		Message:       "BFHL API",
		Endpoints: map[string]string{
			"POST /bfhl":  "Process fibonacci, prime, lcm, hcf, AI",
			"GET /bfhl":   "Operation code probe",
			"GET /health": "Health check endpoint",
		},
	})
	s.infoETag = fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(s.info))

	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.GetHead)
	r.Use(hlog.NewHandler(s.logger), s.accessLog)
	r.Use(s.recoverer)
	r.Use(telemetry.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(s.requestTimeout))

	r.NotFound(s.NotFoundError)
	r.MethodNotAllowed(s.NotFoundError)

	r.Get("/", s.handleInfo)
	r.Get("/health", s.handleHealth)
	r.Get("/bfhl", s.handleOperationCode)
	r.Post("/bfhl", s.handleBFHL)

	return r
}

// ---- handlers ----

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == s.infoETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", s.infoETag)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.info)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{IsSuccess: true, OfficialEmail: s.email})
}

func (s *Server) handleOperationCode(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, operationCodeResponse{OperationCode: 1})
}

func (s *Server) handleBFHL(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		s.BadRequestError(w, dispatch.MsgInvalidBody)
		return
	}
	// exactly one JSON value; trailing content is malformed
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		s.BadRequestError(w, dispatch.MsgInvalidBody)
		return
	}

	// arrays, scalars and null are not request envelopes
	body, ok := raw.(map[string]any)
	if !ok {
		s.BadRequestError(w, dispatch.MsgInvalidBody)
		return
	}

	data, err := s.dispatcher.Handle(r.Context(), body)
	if err != nil {
		var vErr *dispatch.ValidationError
		if errors.As(err, &vErr) {
			s.BadRequestError(w, vErr.Message)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("dispatch failed")
		s.InternalError(w)
		return
	}

	s.writeData(w, data)
}

// ---- middleware ----

// recoverer converts panics into the generic 500 envelope.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			hlog.FromRequest(r).Error().
				Interface("panic", rec).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("unhandled panic")
			s.InternalError(w)
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})(next)
}
