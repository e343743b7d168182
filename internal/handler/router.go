package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kaelis/notemark/internal/middleware"
)

type RouterDeps struct {
	Documents *DocumentHandler
	Versions  *VersionHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.POST("/documents", deps.Documents.Create)
	authGroup.GET("/documents", deps.Documents.List)
	authGroup.GET("/documents/:id", deps.Documents.Get)
	authGroup.PUT("/documents/:id", deps.Documents.Update)

	authGroup.POST("/documents/:id/versions", deps.Versions.Create)
	authGroup.GET("/documents/:id/versions", deps.Versions.List)
	authGroup.GET("/documents/:id/versions/:version_id", deps.Versions.Get)
	authGroup.PUT("/documents/:id/versions/:version_id", deps.Versions.Update)
}
