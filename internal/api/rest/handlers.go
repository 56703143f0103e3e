package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/internal/actions"
	"github.com/clintrovert/forgeops/internal/github"
	"github.com/clintrovert/forgeops/pkg/types"
)

// Handler exposes the action catalog over HTTP.
type Handler struct {
	registry *actions.Registry
	logger   *zap.Logger
}

// NewHandler creates a new REST handler.
func NewHandler(registry *actions.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// ListActions handles GET /actions.
func (h *Handler) ListActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List())
}

// GetAction handles GET /actions/{name}.
func (h *Handler) GetAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, ok := h.registry.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown action: " + name})
		return
	}

	writeJSON(w, http.StatusOK, def)
}

// InvokeAction handles POST /actions/{name}. The request body is the
// action's JSON arguments; the response body is the action's typed result.
func (h *Handler) InvokeAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.registry.Invoke(r.Context(), name, body)
	if err != nil {
		h.logger.Warn("action invocation failed",
			zap.String("action", name),
			zap.Error(err),
		)
		writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// RegisterRoutes registers REST API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/actions", h.ListActions)
	r.Get("/actions/{name}", h.GetAction)
	r.Post("/actions/{name}", h.InvokeAction)
}

// statusForError maps the catalog and operation error kinds onto HTTP
// statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, actions.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, actions.ErrInvalidArguments),
		errors.Is(err, types.ErrInvalidRepoName),
		errors.Is(err, types.ErrInvalidPRState),
		errors.Is(err, types.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, github.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, github.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, github.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, github.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, github.ErrTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
