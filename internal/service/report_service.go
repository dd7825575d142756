package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
)

// ReportService exports the audit trail as a spreadsheet.
type ReportService struct {
	activityRepo *repository.ActivityRepository
}

// NewReportService creates a report service.
func NewReportService(activityRepo *repository.ActivityRepository) *ReportService {
	return &ReportService{activityRepo: activityRepo}
}

// ActivityReportRequest selects the period and, optionally, one project.
type ActivityReportRequest struct {
	From      time.Time `json:"from" binding:"required"`
	To        time.Time `json:"to" binding:"required"`
	ProjectID string    `json:"project_id"`
}

var reportHeaders = []string{"Data", "Evento", "Usuário", "Projeto", "Documento", "Arquivo", "Motivo"}

// ExportActivities renders the activities of a period into an XLSX file
// and returns its bytes.
func (s *ReportService) ExportActivities(ctx context.Context, req *ActivityReportRequest) ([]byte, error) {
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("invalid period: end before start")
	}

	activities, err := s.activityRepo.ListForReport(ctx, req.From, req.To, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Atividades"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, a := range activities {
		values := []interface{}{
			a.Date.Format("02/01/2006 15:04:05"),
			a.Event.String(),
			reportUser(&a),
			reportProject(&a),
			reportDocument(&a),
			reportFile(&a),
			a.Reason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func reportUser(a *entity.Activity) string {
	if a.User != nil {
		return a.User.Username
	}
	return a.UserID
}

func reportProject(a *entity.Activity) string {
	if a.Project != nil {
		return fmt.Sprintf("%s - %s", a.Project.Identifier, a.Project.Name)
	}
	return ""
}

func reportDocument(a *entity.Activity) string {
	if a.Document != nil {
		return fmt.Sprintf("%s - %s", a.Document.Code, a.Document.Name)
	}
	return ""
}

func reportFile(a *entity.Activity) string {
	if a.ProjectFile != nil {
		return a.ProjectFile.Draw
	}
	return ""
}
