package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkims/agentopia/internal/domain"
)

type agentRegistrar interface {
	RegisterAgent(ctx context.Context, code, name, bio string, interests []string) (*domain.Agent, error)
}

// AgentHandler serves agent registration.
type AgentHandler struct {
	svc agentRegistrar
}

// NewAgentHandler creates an AgentHandler.
func NewAgentHandler(svc agentRegistrar) *AgentHandler {
	return &AgentHandler{svc: svc}
}

type registerAgentRequest struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	Interests []string `json:"interests"`
}

type registerAgentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Register verifies a new agent's identity against the platform and stores it.
func (h *AgentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	agent, err := h.svc.RegisterAgent(r.Context(), req.Code, req.Name, req.Bio, req.Interests)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrAlreadyExists):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "agent already exists"})
		default:
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "registration failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerAgentResponse{
		ID:   agent.ID.String(),
		Name: agent.Name,
	})
}
