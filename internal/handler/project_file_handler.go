package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/service"
)

// ProjectFileHandler serves the drawing routes.
type ProjectFileHandler struct {
	svc *service.ProjectFileService
}

// NewProjectFileHandler creates a project file handler.
func NewProjectFileHandler(svc *service.ProjectFileService) *ProjectFileHandler {
	return &ProjectFileHandler{svc: svc}
}

// Upload receives a multipart drawing upload.
func (h *ProjectFileHandler) Upload(c *gin.Context) {
	req := service.UploadFileRequest{
		ProjectID:  c.PostForm("project_id"),
		Name:       c.PostForm("name"),
		Draw:       c.PostForm("draw"),
		Version:    c.PostForm("version"),
		Comments:   c.PostForm("comments"),
		Production: c.PostForm("production") == "true",
	}
	if groups := c.PostForm("group_ids"); groups != "" {
		req.GroupIDs = strings.Split(groups, ",")
	}
	if req.ProjectID == "" || req.Name == "" || req.Draw == "" || req.Version == "" {
		BadRequest(c, "project_id, name, draw and version are required")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "File is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		InternalError(c, "Cannot read upload: "+err.Error())
		return
	}
	defer f.Close()

	userID := GetUserID(c)
	file, err := h.svc.Upload(c.Request.Context(), userID, &req, f, fh.Filename, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, file)
}

// ChangeStatus toggles a drawing between production and in-progress, or
// obsoletes it.
func (h *ProjectFileHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "File ID is required")
		return
	}

	var req struct {
		Status *int16 `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := GetUserID(c)
	file, err := h.svc.ChangeStatus(c.Request.Context(), id, entity.FileStatus(*req.Status), userID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, file)
}

// ListByProject returns the drawings the caller may see in a project.
func (h *ProjectFileHandler) ListByProject(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	userID := GetUserID(c)
	files, err := h.svc.ListForUser(c.Request.Context(), projectID, userID,
		c.GetBool("is_admin"), c.GetBool("is_reviewer"))
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, files)
}

// History returns every revision of the file's drawing number.
func (h *ProjectFileHandler) History(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "File ID is required")
		return
	}

	files, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, files)
}

// ProductionPhotos returns image paths of the project's production set.
func (h *ProjectFileHandler) ProductionPhotos(c *gin.Context) {
	projectID := c.Param("id")
	if projectID == "" {
		BadRequest(c, "Project ID is required")
		return
	}

	photos, err := h.svc.ProductionPhotos(c.Request.Context(), projectID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, photos)
}

// Download streams the stored file.
func (h *ProjectFileHandler) Download(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "File ID is required")
		return
	}

	rc, file, err := h.svc.Open(c.Request.Context(), id)
	if err != nil {
		ServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.DataFromReader(http.StatusOK, file.FileSize, "application/octet-stream", rc, nil)
}

// Zip bundles the requested files into one archive.
func (h *ProjectFileHandler) Zip(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "File IDs are required")
		return
	}

	data, err := h.svc.Zip(c.Request.Context(), req.IDs)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="arquivos.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// CheckVersion reports whether an upload repeats the current version.
func (h *ProjectFileHandler) CheckVersion(c *gin.Context) {
	id := c.Param("id")
	version := c.Query("version")
	if id == "" || version == "" {
		BadRequest(c, "File ID and version are required")
		return
	}
	if v, err := strconv.Atoi(version); err == nil {
		version = fmt.Sprintf("%02d", v)
	}

	same, err := h.svc.SameVersion(c.Request.Context(), id, version)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{"same": same})
}

// CheckName reports whether an upload repeats the current name.
func (h *ProjectFileHandler) CheckName(c *gin.Context) {
	id := c.Param("id")
	name := c.Query("name")
	if id == "" || name == "" {
		BadRequest(c, "File ID and name are required")
		return
	}

	same, err := h.svc.SameName(c.Request.Context(), id, name)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{"same": same})
}
