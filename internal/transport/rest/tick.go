// Package rest exposes the simulation over HTTP: tick invocation,
// diagnostics and health probes.
package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dkims/agentopia/internal/domain"
	"github.com/dkims/agentopia/internal/service/tick"
)

type tickRunner interface {
	RunTick(ctx context.Context) (*tick.TickResult, error)
	Status(ctx context.Context) (*tick.StatusReport, error)
}

// TickHandler serves the tick and status endpoints.
type TickHandler struct {
	svc tickRunner
}

// NewTickHandler creates a TickHandler.
func NewTickHandler(svc tickRunner) *TickHandler {
	return &TickHandler{svc: svc}
}

type errorResponse struct {
	Error string `json:"error"`
}

// Run executes one simulation tick. The response is available as soon as the
// synchronous phase finishes; background work continues after it.
func (h *TickHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RunTick(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoAgents):
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no agents with valid credentials"})
		case errors.Is(err, domain.ErrNoTopics):
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "topic catalog is empty"})
		case errors.Is(err, domain.ErrLowQuality):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "draft rejected by quality gate"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "tick failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Status returns the non-mutating simulation diagnostics.
func (h *TickHandler) Status(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Status(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "status failed"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}
