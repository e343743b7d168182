package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaelis/notemark/internal/model"
	"github.com/kaelis/notemark/internal/pkg/response"
)

type envelope struct {
	Success bool               `json:"success"`
	Data    json.RawMessage    `json:"data"`
	Error   *response.APIError `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return resp, env
}

func TestDocumentEndpointsRequireAuth(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/documents", "", map[string]string{"title": "t"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.NotNil(t, env.Error)
	require.Equal(t, "unauthorized", env.Error.Kind)

	resp, env = doRequest(t, router, http.MethodGet, "/api/v1/documents", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Equal(t, "unauthorized", env.Error.Kind)
}

func TestDocumentCreateDefaults(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := mintToken(t, newTestUser())

	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/documents", token, map[string]string{})
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)

	var doc model.Document
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	require.NotEmpty(t, doc.ID)
	require.False(t, doc.IsPinned)
	require.False(t, doc.IsArchived)
	require.Equal(t, doc.Ctime, doc.Mtime)
}

func TestDocumentUpdateValidation(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := mintToken(t, newTestUser())

	_, env := doRequest(t, router, http.MethodPost, "/api/v1/documents", token, map[string]string{"title": "t"})
	var doc model.Document
	require.NoError(t, json.Unmarshal(env.Data, &doc))

	resp, env := doRequest(t, router, http.MethodPut, "/api/v1/documents/"+doc.ID, token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "validation_error", env.Error.Kind)

	resp, env = doRequest(t, router, http.MethodPut, "/api/v1/documents/"+doc.ID, token, map[string]interface{}{"is_pinned": true})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	require.True(t, doc.IsPinned)
}

func TestDocumentListFiltersHTTP(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := mintToken(t, newTestUser())

	for _, body := range []map[string]interface{}{
		{"title": "plain"},
		{"title": "archived", "is_archived": true},
		{"title": "pinned", "is_pinned": true},
	} {
		resp, _ := doRequest(t, router, http.MethodPost, "/api/v1/documents", token, body)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	var listing struct {
		Documents []model.Document `json:"documents"`
		Total     int              `json:"total"`
	}

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/documents", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Equal(t, 2, listing.Total)

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/documents?include_archived=true", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Equal(t, 3, listing.Total)

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/documents?pinned_only=true", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Equal(t, 1, listing.Total)
	require.True(t, listing.Documents[0].IsPinned)
}

func TestDocumentCrossUserNotFound(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	ownerToken := mintToken(t, newTestUser())
	strangerToken := mintToken(t, newTestUser())

	_, env := doRequest(t, router, http.MethodPost, "/api/v1/documents", ownerToken, map[string]string{"title": "mine"})
	var doc model.Document
	require.NoError(t, json.Unmarshal(env.Data, &doc))

	resp, env := doRequest(t, router, http.MethodGet, "/api/v1/documents/"+doc.ID, strangerToken, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "not_found", env.Error.Kind)

	resp, env = doRequest(t, router, http.MethodGet, "/api/v1/documents/"+doc.ID+"/versions", strangerToken, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "not_found", env.Error.Kind)
}
