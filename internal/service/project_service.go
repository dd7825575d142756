package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/storage"
)

// ProjectService drives the project lifecycle: creation with folder
// allocation, status transitions and the audit trail.
type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	templateRepo *repository.TemplateRepository
	activityRepo *repository.ActivityRepository
	backend      storage.Backend
	logger       *zap.Logger
}

// NewProjectService creates a project service.
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	templateRepo *repository.TemplateRepository,
	activityRepo *repository.ActivityRepository,
	backend storage.Backend,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		templateRepo: templateRepo,
		activityRepo: activityRepo,
		backend:      backend,
		logger:       logger,
	}
}

// CreateProjectRequest carries a new project.
type CreateProjectRequest struct {
	Identifier  string     `json:"identifier" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	OriginalPN  string     `json:"original_pn"`
	TemplateID  string     `json:"template_id" binding:"required"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	MediaPath   string     `json:"media_path"`
}

// ProjectListResult is one page of projects.
type ProjectListResult struct {
	Items      []entity.Project `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// Create inserts a project with a CREATE activity and allocates its
// department folders from the template. Folder allocation is best-effort:
// the shared tree may be temporarily unreachable and can be re-created.
func (s *ProjectService) Create(ctx context.Context, userID string, req *CreateProjectRequest) (*entity.Project, error) {
	num, err := strconv.Atoi(req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("identifier must be numeric: %w", err)
	}
	identifier := fmt.Sprintf("%06d", num)

	tmpl, err := s.templateRepo.FindByID(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}

	project := &entity.Project{
		ID:            newID(),
		Identifier:    identifier,
		Name:          strings.ToUpper(req.Name),
		Description:   strings.ToUpper(req.Description),
		Status:        entity.ProjectStatusNew,
		OriginalPN:    strings.ToUpper(req.OriginalPN),
		InternalPN:    identifier,
		MediaPath:     req.MediaPath,
		ResponsibleID: userID,
		TemplateID:    &tmpl.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}

	activity := repository.NewActivity(entity.EventCreate, userID, "")
	if err := s.projectRepo.CreateWithActivity(ctx, project, activity); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	var folders []string
	for _, f := range tmpl.Folders {
		if f.Active {
			folders = append(folders, f.Name)
		}
	}
	for _, dir := range storage.ProjectFolderPaths(project.Identifier, project.Name, folders) {
		if err := s.backend.EnsureDir(ctx, dir); err != nil {
			s.logger.Warn("project folder allocation failed",
				zap.String("project", project.Identifier),
				zap.String("dir", dir),
				zap.Error(err))
		}
	}

	return project, nil
}

// ChangeStatus validates the transition, mutates the project and appends
// exactly one activity, atomically.
func (s *ProjectService) ChangeStatus(ctx context.Context, id string, status entity.ProjectStatus, userID, reason string) (*entity.Project, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if !project.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	event := status.Event()
	reason = strings.ToUpper(strings.TrimSpace(reason))
	if event.ReasonRequired() && reason == "" {
		return nil, ErrReasonRequired
	}

	project.Status = status
	activity := repository.NewActivity(event, userID, reason)
	if err := s.projectRepo.UpdateStatus(ctx, project, activity); err != nil {
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return project, nil
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

// List returns one page of projects.
func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ProjectListResult, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ProjectListResult{
		Items:      projects,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListOpen returns the newest open projects for the home page.
func (s *ProjectService) ListOpen(ctx context.Context, limit int) ([]entity.Project, error) {
	return s.projectRepo.ListOpen(ctx, limit)
}

// History returns a project's audit trail, newest first.
func (s *ProjectService) History(ctx context.Context, id string) ([]entity.Activity, error) {
	return s.activityRepo.ListByProject(ctx, id)
}

// CreateFolder adds an extra directory inside an existing project tree.
func (s *ProjectService) CreateFolder(ctx context.Context, projectID, folderName string) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("find project: %w", err)
	}
	dir := storage.ProjectExtraFolderPath(project.Identifier, project.Name, folderName)
	if err := s.backend.EnsureDir(ctx, dir); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// ListTemplates returns the active project templates.
func (s *ProjectService) ListTemplates(ctx context.Context) ([]entity.ProjectTemplate, error) {
	return s.templateRepo.ListActive(ctx)
}
