package handler_test

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/kaelis/notemark/internal/handler"
	"github.com/kaelis/notemark/internal/middleware"
	"github.com/kaelis/notemark/internal/pkg/jwt"
	"github.com/kaelis/notemark/internal/repo"
	"github.com/kaelis/notemark/internal/service"
	"github.com/kaelis/notemark/test/testutil"
)

var testSecret = []byte("test-secret")

func newTestUser() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)
	return "user-" + hex.EncodeToString(bytes)
}

// mintToken stands in for the identity provider.
func mintToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID, "", testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	docRepo := repo.NewDocumentRepo(db)
	versionRepo := repo.NewVersionRepo(db)
	documentService := service.NewDocumentService(docRepo, versionRepo)

	deps := handler.RouterDeps{
		Documents: handler.NewDocumentHandler(documentService),
		Versions:  handler.NewVersionHandler(documentService),
		JWTSecret: testSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, cleanup
}
