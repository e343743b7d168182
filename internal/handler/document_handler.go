package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaelis/notemark/internal/pkg/response"
	"github.com/kaelis/notemark/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type createDocumentRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Folder      string `json:"folder"`
	Tags        string `json:"tags"`
	IsPinned    bool   `json:"is_pinned"`
	IsArchived  bool   `json:"is_archived"`
}

type updateDocumentRequest struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Folder      *string `json:"folder"`
	Tags        *string `json:"tags"`
	IsPinned    *bool   `json:"is_pinned"`
	IsArchived  *bool   `json:"is_archived"`
}

func (h *DocumentHandler) Create(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	doc, err := h.documents.Create(c.Request.Context(), getUserID(c), service.DocumentCreateInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Folder:      req.Folder,
		Tags:        req.Tags,
		IsPinned:    req.IsPinned,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	doc, err := h.documents.Update(c.Request.Context(), getUserID(c), c.Param("id"), service.DocumentUpdateInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Folder:      req.Folder,
		Tags:        req.Tags,
		IsPinned:    req.IsPinned,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"
	pinnedOnly := c.Query("pinned_only") == "true"
	docs, err := h.documents.List(c.Request.Context(), getUserID(c), includeArchived, pinnedOnly)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"documents": docs, "total": len(docs)})
}
