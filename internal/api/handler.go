package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eugenenazirov/apportionment/internal/apportion"
	"github.com/eugenenazirov/apportionment/internal/metrics"
	"github.com/eugenenazirov/apportionment/internal/population"
	"github.com/eugenenazirov/apportionment/internal/report"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const (
	defaultSeats      = population.Census2013Seats
	defaultMaxSeats   = 10000
	defaultMaxRegions = 1000
	maxRequestBytes   = 1 << 20
)

// Handler wires the method registry, population store and metrics into HTTP handlers.
type Handler struct {
	registry *apportion.Registry
	store    population.Store
	recorder metrics.Recorder

	defaultSeats int
	maxSeats     int
	maxRegions   int
	clock        func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithRecorder sets the metrics recorder notified after every apportionment.
func WithRecorder(rec metrics.Recorder) HandlerOption {
	return func(h *Handler) {
		if rec != nil {
			h.recorder = rec
		}
	}
}

// WithDefaultSeats sets the seat target used when a request omits one.
func WithDefaultSeats(seats int) HandlerOption {
	return func(h *Handler) {
		if seats > 0 {
			h.defaultSeats = seats
		}
	}
}

// WithLimits bounds the seat target and the size of an inline population a
// request may ask for. Non-positive values keep the defaults.
func WithLimits(maxSeats, maxRegions int) HandlerOption {
	return func(h *Handler) {
		if maxSeats > 0 {
			h.maxSeats = maxSeats
		}
		if maxRegions > 0 {
			h.maxRegions = maxRegions
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(registry *apportion.Registry, store population.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry:     registry,
		store:        store,
		recorder:     metrics.Nop{},
		defaultSeats: defaultSeats,
		maxSeats:     defaultMaxSeats,
		maxRegions:   defaultMaxRegions,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMethods(w http.ResponseWriter, r *http.Request) {
	_ = r
	methods := h.registry.Methods()
	resp := methodsResponse{Methods: make([]methodInfo, 0, len(methods))}
	for _, m := range methods {
		resp.Methods = append(resp.Methods, methodInfo{Key: m.String(), Historical: m.Historical()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetPopulation(w http.ResponseWriter, r *http.Request) {
	_ = r
	dist, err := h.store.Distribution()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := populationResponse{
		Regions: dist,
		Total:   dist.Total(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleApportion(w http.ResponseWriter, r *http.Request) {
	var req apportionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	method, err := apportion.ParseMethod(req.Method)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown method", err.Error(),
			"Use one of: "+strings.Join(h.methodKeys(), ", "))
		return
	}

	seats := h.defaultSeats
	if req.Seats != nil {
		seats = *req.Seats
	}
	if seats > h.maxSeats {
		writeError(w, http.StatusBadRequest, "Limit exceeded",
			fmt.Sprintf("seats %d exceeds the limit of %d", seats, h.maxSeats))
		return
	}
	if len(req.Population) > h.maxRegions {
		writeError(w, http.StatusBadRequest, "Limit exceeded",
			fmt.Sprintf("population has %d regions, the limit is %d", len(req.Population), h.maxRegions))
		return
	}

	dist := apportion.Distribution(req.Population)
	if len(dist) == 0 {
		dist, err = h.store.Distribution()
		if err != nil {
			writeInternalError(w, err)
			return
		}
	}

	start := time.Now()
	result, calcErr := h.registry.Apportion(method, dist, seats)
	elapsed := time.Since(start)

	if calcErr != nil {
		h.recorder.ObserveApportionment(method.String(), metrics.OutcomeRejected, elapsed)
		var inputErr *apportion.InvalidInputError
		switch {
		case errors.As(calcErr, &inputErr):
			writeError(w, http.StatusBadRequest, "Invalid input", calcErr.Error())
		case errors.Is(calcErr, apportion.ErrUnknownMethod):
			writeError(w, http.StatusBadRequest, "Unknown method", calcErr.Error())
		default:
			writeInternalError(w, calcErr)
		}
		return
	}

	outcome := metrics.OutcomeOK
	if result.Inexact {
		outcome = metrics.OutcomeInexact
	}
	h.recorder.ObserveApportionment(method.String(), outcome, elapsed)

	resp := apportionResponse{
		Report:            report.Build(dist, seats, result),
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) methodKeys() []string {
	methods := h.registry.Methods()
	keys := make([]string, 0, len(methods))
	for _, m := range methods {
		keys = append(keys, m.String())
	}
	return keys
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type apportionRequest struct {
	Method     string             `json:"method"`
	Seats      *int               `json:"seats"`
	Population []apportion.Region `json:"population,omitempty"`
}

type apportionResponse struct {
	report.Report
	CalculationTimeMs int64 `json:"calculationTimeMs"`
}

type methodInfo struct {
	Key        string `json:"key"`
	Historical string `json:"historical"`
}

type methodsResponse struct {
	Methods []methodInfo `json:"methods"`
}

type populationResponse struct {
	Regions apportion.Distribution `json:"regions"`
	Total   int64                  `json:"total"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
