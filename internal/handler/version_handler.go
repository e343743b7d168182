package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kaelis/notemark/internal/pkg/response"
	"github.com/kaelis/notemark/internal/service"
)

type VersionHandler struct {
	documents *service.DocumentService
}

func NewVersionHandler(documents *service.DocumentService) *VersionHandler {
	return &VersionHandler{documents: documents}
}

type createVersionRequest struct {
	VersionLabel string `json:"version_label"`
	Content      string `json:"content"`
	IsAutosave   bool   `json:"is_autosave"`
	IsCurrent    bool   `json:"is_current"`
}

func (r createVersionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}

type updateVersionRequest struct {
	VersionLabel *string `json:"version_label"`
	Content      *string `json:"content"`
	IsAutosave   *bool   `json:"is_autosave"`
	IsCurrent    *bool   `json:"is_current"`
}

func (h *VersionHandler) Create(c *gin.Context) {
	var req createVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	version, err := h.documents.CreateVersion(c.Request.Context(), getUserID(c), c.Param("id"), service.VersionCreateInput{
		VersionLabel: req.VersionLabel,
		Content:      req.Content,
		IsAutosave:   req.IsAutosave,
		IsCurrent:    req.IsCurrent,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, version)
}

func (h *VersionHandler) Update(c *gin.Context) {
	var req updateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	version, err := h.documents.UpdateVersion(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("version_id"), service.VersionUpdateInput{
		VersionLabel: req.VersionLabel,
		Content:      req.Content,
		IsAutosave:   req.IsAutosave,
		IsCurrent:    req.IsCurrent,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, version)
}

func (h *VersionHandler) Get(c *gin.Context) {
	version, err := h.documents.GetVersion(c.Request.Context(), getUserID(c), c.Param("id"), c.Param("version_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, version)
}

func (h *VersionHandler) List(c *gin.Context) {
	versions, err := h.documents.ListVersions(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"versions": versions, "total": len(versions)})
}
