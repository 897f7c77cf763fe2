// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/moneywiki/internal/cache"
	"github.com/iwvelando/moneywiki/internal/calculator"
	"github.com/iwvelando/moneywiki/internal/policy"
	"github.com/iwvelando/moneywiki/pkg/constants"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// Options configures NewHandler. Service is required.
type Options struct {
	Logger      *zap.Logger
	Service     *calculator.Service
	Cache       cache.Repository
	CacheTTL    time.Duration
	MaxBodySize int64
	Version     string
}

type handler struct {
	logger      *zap.Logger
	service     *calculator.Service
	cache       cache.Repository
	cacheTTL    time.Duration
	maxBodySize int64
	version     string
}

type contextKey struct{}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Service == nil {
		return nil, errors.New("server requires a calculator service")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      logger,
		service:     opts.Service,
		cache:       opts.Cache,
		cacheTTL:    opts.CacheTTL,
		maxBodySize: maxBodySize,
		version:     version,
	}

	r := mux.NewRouter()
	r.Use(h.requestID, h.logRequests)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/calculators", h.handleListCalculators).Methods(http.MethodGet)
	api.HandleFunc("/calculators/{name}", h.handleCalculate).Methods(http.MethodPost)
	api.HandleFunc("/policies", h.handleListPolicies).Methods(http.MethodGet)
	api.HandleFunc("/policies/{year:[0-9]+}", h.handlePolicy).Methods(http.MethodGet)

	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		h.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": http.StatusText(http.StatusMethodNotAllowed)})
	})

	return r, nil
}

type calculationResponse struct {
	Calculator string `json:"calculator"`
	Year       int    `json:"year"`
	PolicyYear int    `json:"policyYear,omitempty"`
	Result     any    `json:"result"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"

	name := mux.Vars(r)["name"]
	def, ok := lookupCalculator(name)
	if !ok {
		h.respondErrorWithOp(w, r, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", name), op)
		return
	}

	year, err := yearParam(r)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if year == 0 {
		year = h.service.ActiveYear()
	}

	resp := calculationResponse{Calculator: def.Name, Year: year}
	if def.UsesPolicy {
		set, err := h.service.Policy(year)
		if err != nil {
			h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
			return
		}
		resp.PolicyYear = set.Year
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "request body is empty", op)
		return
	}

	input, err := def.decode(body)
	if err != nil {
		h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
		return
	}

	var key string
	if def.Cached && h.cache != nil {
		key, err = cache.Key(def.Name, struct {
			PolicyYear int `json:"policyYear"`
			Input      any `json:"input"`
		}{resp.PolicyYear, input})
		if err != nil {
			h.logger.Warn("failed to derive cache key", zap.String("op", op), zap.Error(err))
		} else if hit := def.newResult(); h.lookupCache(r.Context(), key, hit) {
			w.Header().Set("X-Cache", "hit")
			resp.Result = hit
			h.writeJSON(w, http.StatusOK, resp)
			return
		} else {
			w.Header().Set("X-Cache", "miss")
		}
	}

	result, err := def.run(h.service, year, input)
	if err != nil {
		h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
		return
	}
	resp.Result = result

	if key != "" {
		if err := cache.SetJSON(r.Context(), h.cache, key, result, h.cacheTTL); err != nil {
			h.logger.Warn("failed to store cached result",
				zap.String("op", op),
				zap.String("calculator", def.Name),
				zap.Error(err),
			)
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) lookupCache(ctx context.Context, key string, dst any) bool {
	err := cache.GetJSON(ctx, h.cache, key, dst)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		h.logger.Warn("cache lookup failed",
			zap.String("op", "server.lookupCache"),
			zap.Error(err),
		)
	}
	return false
}

func (h *handler) handleListCalculators(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"calculators": calculators})
}

func (h *handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"activeYear": h.service.ActiveYear(),
		"years":      h.service.Registry().Years(),
	})
}

func (h *handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid year: %v", err), "server.handlePolicy")
		return
	}
	set, err := h.service.Policy(year)
	if err != nil {
		h.respondErrorWithOp(w, r, statusFor(err), err.Error(), "server.handlePolicy")
		return
	}
	h.writeJSON(w, http.StatusOK, set)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func yearParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 0 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return year, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, policy.ErrUnknownYear):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	level := zap.WarnLevel
	if status >= http.StatusInternalServerError {
		level = zap.ErrorLevel
	}
	h.logger.Log(level, "calculator request failed",
		zap.String("op", op),
		zap.String("requestId", RequestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// RequestID returns the identifier assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("request served",
			zap.String("op", "server.logRequests"),
			zap.String("requestId", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
