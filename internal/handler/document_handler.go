package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/service"
)

// DocumentHandler serves the controlled-document routes.
type DocumentHandler struct {
	svc *service.DocumentService
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Upload receives a new document or revision as a multipart form.
func (h *DocumentHandler) Upload(c *gin.Context) {
	req := service.UploadDocumentRequest{
		DocumentID:       c.PostForm("document_id"),
		Code:             c.PostForm("code"),
		Name:             c.PostForm("name"),
		Version:          c.PostForm("version"),
		Comments:         c.PostForm("comments"),
		SubcategoryID:    c.PostForm("subcategory_id"),
		SendApproval:     c.PostForm("send_approval") == "true",
		ApprovalReason:   c.PostForm("approval_reason"),
		ApproverUsername: c.PostForm("approver_username"),
	}
	if req.Code == "" || req.Name == "" || req.Version == "" || req.SubcategoryID == "" {
		BadRequest(c, "code, name, version and subcategory_id are required")
		return
	}
	if exp := c.PostForm("expiration_date"); exp != "" {
		t, err := time.Parse("2006-01-02", exp)
		if err != nil {
			BadRequest(c, "Invalid expiration_date, expected YYYY-MM-DD")
			return
		}
		req.ExpirationDate = &t
	}

	fh, err := c.FormFile("file")
	if err != nil && req.DocumentID == "" {
		// New documents must carry content; revisions may keep the
		// stored file and change metadata only.
		BadRequest(c, "File is required")
		return
	}

	userID := GetUserID(c)
	if fh != nil {
		f, err := fh.Open()
		if err != nil {
			InternalError(c, "Cannot read upload: "+err.Error())
			return
		}
		defer f.Close()

		doc, err := h.svc.Upload(c.Request.Context(), userID, &req, f, fh.Filename, fh.Size, fh.Header.Get("Content-Type"))
		if err != nil {
			ServiceError(c, err)
			return
		}
		Created(c, doc)
		return
	}

	doc, err := h.svc.Upload(c.Request.Context(), userID, &req, nil, "", 0, "")
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, doc)
}

// Get returns one document.
func (h *DocumentHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	doc, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, doc)
}

// List returns one page of documents; non-editors only see approved ones.
func (h *DocumentHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	subcategoryID := c.Query("subcategory_id")

	editor := false
	if categoryID := c.Query("category_id"); categoryID != "" {
		var err error
		editor, err = h.svc.IsEditor(c.Request.Context(), GetUserID(c), categoryID)
		if err != nil {
			ServiceError(c, err)
			return
		}
	}
	if c.GetBool("is_admin") {
		editor = true
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, subcategoryID, editor)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, result)
}

// ChangeStatus moves a document through its lifecycle.
func (h *DocumentHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	var req struct {
		Status *int16 `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := GetUserID(c)
	doc, err := h.svc.ChangeStatus(c.Request.Context(), id, entity.DocumentStatus(*req.Status), userID, req.Reason)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, doc)
}

// History returns the document's audit trail.
func (h *DocumentHandler) History(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	activities, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, activities)
}

// Reasons returns the accumulated revision comments as display text.
func (h *DocumentHandler) Reasons(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	text, err := h.svc.AccumulatedReasons(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{"reasons": text})
}

// Download streams the stored document file.
func (h *DocumentHandler) Download(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Document ID is required")
		return
	}

	rc, doc, err := h.svc.Download(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.DataFromReader(http.StatusOK, doc.FileSize, "application/octet-stream", rc, nil)
}

// ListCategories returns the navigation category tree.
func (h *DocumentHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, categories)
}
