package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matos-01/gestaoDocumentos/internal/service"
)

// NewsHandler serves the home-page announcement routes.
type NewsHandler struct {
	svc *service.NewsService
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(svc *service.NewsService) *NewsHandler {
	return &NewsHandler{svc: svc}
}

// Create publishes an announcement.
func (h *NewsHandler) Create(c *gin.Context) {
	var req service.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID := GetUserID(c)
	news, err := h.svc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Created(c, news)
}

// ListCurrent returns announcements inside their display window.
func (h *NewsHandler) ListCurrent(c *gin.Context) {
	news, err := h.svc.ListCurrent(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, news)
}

// List returns all active announcements for the management screen.
func (h *NewsHandler) List(c *gin.Context) {
	news, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, news)
}

// ReportHandler serves the activity-report export route.
type ReportHandler struct {
	svc *service.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ExportActivities returns the period's audit trail as an XLSX download.
func (h *ReportHandler) ExportActivities(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	req := &service.ActivityReportRequest{
		From:      from,
		To:        to.AddDate(0, 0, 1),
		ProjectID: c.Query("project_id"),
	}

	data, err := h.svc.ExportActivities(c.Request.Context(), req)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="atividades.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
