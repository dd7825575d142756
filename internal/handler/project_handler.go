package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/service"
)

// ProjectHandler serves the engineering-project routes.
type ProjectHandler struct {
	svc *service.ProjectService
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create opens a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := GetUserID(c)
	project, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, project)
}

// Get returns one project.
func (h *ProjectHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	project, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, project)
}

// List returns one page of projects.
func (h *ProjectHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{}
	if s := c.Query("status"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			BadRequest(c, "Invalid status filter")
			return
		}
		filters["status"] = entity.ProjectStatus(v)
	}
	if identifier := c.Query("identifier"); identifier != "" {
		filters["identifier"] = identifier
	}
	if responsible := c.Query("responsible_id"); responsible != "" {
		filters["responsible_id"] = responsible
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, result)
}

// ListOpen returns the open projects shown on the home page.
func (h *ProjectHandler) ListOpen(c *gin.Context) {
	limit := 20
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	projects, err := h.svc.ListOpen(c.Request.Context(), limit)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, projects)
}

// ChangeStatus moves a project through its lifecycle.
func (h *ProjectHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
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
	project, err := h.svc.ChangeStatus(c.Request.Context(), id, entity.ProjectStatus(*req.Status), userID, req.Reason)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, project)
}

// History returns the project's audit trail.
func (h *ProjectHandler) History(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	activities, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, activities)
}

// CreateFolder allocates an extra department folder in the project tree.
func (h *ProjectHandler) CreateFolder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	var req struct {
		Folder string `json:"folder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Folder name is required")
		return
	}

	if err := h.svc.CreateFolder(c.Request.Context(), id, req.Folder); err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, nil)
}

// ListTemplates returns the active folder templates for the create form.
func (h *ProjectHandler) ListTemplates(c *gin.Context) {
	templates, err := h.svc.ListTemplates(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, templates)
}
