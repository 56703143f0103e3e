package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/internal/actions"
	"github.com/clintrovert/forgeops/internal/github"
	"github.com/clintrovert/forgeops/pkg/types"
)

func newTestRouter(t *testing.T, registry *actions.Registry) *chi.Mux {
	t.Helper()

	router := chi.NewRouter()
	NewHandler(registry, zap.NewNop()).RegisterRoutes(router)
	return router
}

func registryWith(t *testing.T, defs ...actions.Definition) *actions.Registry {
	t.Helper()

	registry := actions.NewRegistry(zap.NewNop())
	for _, def := range defs {
		require.NoError(t, registry.Register(def))
	}
	return registry
}

func TestListActions(t *testing.T) {
	registry := registryWith(t,
		actions.Definition{
			Name:        "star_repository",
			SystemType:  actions.SystemVCS,
			Description: "Stars a repository.",
			Signature:   "(repo) -> status",
			Arguments:   []string{"repo"},
			Handler: func(_ context.Context, _ json.RawMessage) (any, error) {
				return nil, nil
			},
		},
	)
	router := newTestRouter(t, registry)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var defs []actions.Definition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &defs))
	require.Len(t, defs, 1)
	assert.Equal(t, "star_repository", defs[0].Name)
	assert.Equal(t, []string{"repo"}, defs[0].Arguments)
}

func TestGetAction(t *testing.T) {
	registry := registryWith(t, actions.Definition{
		Name:      "get_issue",
		Signature: "(repo, issue_number) -> issue",
		Handler: func(_ context.Context, _ json.RawMessage) (any, error) {
			return nil, nil
		},
	})
	router := newTestRouter(t, registry)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actions/get_issue", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var def actions.Definition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
	assert.Equal(t, "(repo, issue_number) -> issue", def.Signature)
}

func TestGetActionUnknown(t *testing.T) {
	router := newTestRouter(t, registryWith(t))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/actions/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvokeAction(t *testing.T) {
	registry := registryWith(t, actions.Definition{
		Name: "get_repository_info",
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var body struct {
				Repo types.RepoName `json:"repo"`
			}
			if err := json.Unmarshal(args, &body); err != nil {
				return nil, err
			}
			return &types.Repository{FullName: body.Repo, Stars: 5}, nil
		},
	})
	router := newTestRouter(t, registry)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/actions/get_repository_info",
		strings.NewReader(`{"repo": "octocat/demo"}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var repo types.Repository
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &repo))
	assert.Equal(t, types.RepoName("octocat/demo"), repo.FullName)
	assert.Equal(t, 5, repo.Stars)
}

func TestInvokeActionUnknown(t *testing.T) {
	router := newTestRouter(t, registryWith(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/actions/nope", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "nope")
}

func TestInvokeActionErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid arguments", actions.ErrInvalidArguments, http.StatusBadRequest},
		{"invalid repo name", types.ErrInvalidRepoName, http.StatusBadRequest},
		{"not found", github.ErrNotFound, http.StatusNotFound},
		{"conflict", github.ErrConflict, http.StatusConflict},
		{"validation", github.ErrValidation, http.StatusUnprocessableEntity},
		{"unauthorized", github.ErrUnauthorized, http.StatusForbidden},
		{"transport", github.ErrTransport, http.StatusBadGateway},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := registryWith(t, actions.Definition{
				Name: "failing_action",
				Handler: func(_ context.Context, _ json.RawMessage) (any, error) {
					return nil, fmt.Errorf("handler: %w", tt.err)
				},
			})
			router := newTestRouter(t, registry)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/actions/failing_action", strings.NewReader(`{}`))
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
