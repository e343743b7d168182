package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaelis/notemark/internal/model"
)

func createTestDocument(t *testing.T, router http.Handler, token string) model.Document {
	t.Helper()
	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/documents", token, map[string]string{"title": "doc"})
	require.Equal(t, http.StatusOK, resp.Code)
	var doc model.Document
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	return doc
}

func TestVersionCreateRequiresContent(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := mintToken(t, newTestUser())
	doc := createTestDocument(t, router, token)

	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/versions", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "validation_error", env.Error.Kind)
}

func TestVersionCurrentFlipHTTP(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := mintToken(t, newTestUser())
	doc := createTestDocument(t, router, token)

	resp, env := doRequest(t, router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/versions", token,
		map[string]interface{}{"content": "a", "is_current": true})
	require.Equal(t, http.StatusOK, resp.Code)
	var v1 model.DocumentVersion
	require.NoError(t, json.Unmarshal(env.Data, &v1))
	require.True(t, v1.IsCurrent)

	resp, env = doRequest(t, router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/versions", token,
		map[string]interface{}{"content": "b", "is_current": true})
	require.Equal(t, http.StatusOK, resp.Code)
	var v2 model.DocumentVersion
	require.NoError(t, json.Unmarshal(env.Data, &v2))

	var listing struct {
		Versions []model.DocumentVersion `json:"versions"`
		Total    int                     `json:"total"`
	}
	_, env = doRequest(t, router, http.MethodGet, "/api/v1/documents/"+doc.ID+"/versions", token, nil)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Equal(t, 2, listing.Total)
	for _, v := range listing.Versions {
		if v.ID == v1.ID {
			require.False(t, v.IsCurrent)
		}
		if v.ID == v2.ID {
			require.True(t, v.IsCurrent)
		}
	}
}

func TestVersionUpdateHTTP(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()
	token := mintToken(t, newTestUser())
	doc := createTestDocument(t, router, token)

	_, env := doRequest(t, router, http.MethodPost, "/api/v1/documents/"+doc.ID+"/versions", token,
		map[string]interface{}{"content": "a"})
	var v1 model.DocumentVersion
	require.NoError(t, json.Unmarshal(env.Data, &v1))

	resp, env := doRequest(t, router, http.MethodPut, "/api/v1/documents/"+doc.ID+"/versions/"+v1.ID, token,
		map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "validation_error", env.Error.Kind)

	resp, env = doRequest(t, router, http.MethodPut, "/api/v1/documents/"+doc.ID+"/versions/"+v1.ID, token,
		map[string]interface{}{"version_label": "draft", "is_current": true})
	require.Equal(t, http.StatusOK, resp.Code)
	var updated model.DocumentVersion
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.Equal(t, "draft", updated.VersionLabel)
	require.True(t, updated.IsCurrent)

	// version ids are only reachable through their own document
	other := createTestDocument(t, router, token)
	resp, env = doRequest(t, router, http.MethodPut, "/api/v1/documents/"+other.ID+"/versions/"+v1.ID, token,
		map[string]interface{}{"version_label": "x"})
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "not_found", env.Error.Kind)
}
