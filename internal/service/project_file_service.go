package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/storage"
)

// Fixed audit reasons for manual production toggles.
const (
	reasonToProduction   = "Arquivo Disponibilizado P/ Produção"
	reasonFromProduction = "Arquivo Removido da Produção"
)

// ProjectFileService manages drawing revisions: uploads, the production
// uniqueness invariant and visibility.
type ProjectFileService struct {
	fileRepo    *repository.ProjectFileRepository
	projectRepo *repository.ProjectRepository
	userRepo    *repository.UserRepository
	backend     storage.Backend
	logger      *zap.Logger
}

// NewProjectFileService creates a project file service.
func NewProjectFileService(
	fileRepo *repository.ProjectFileRepository,
	projectRepo *repository.ProjectRepository,
	userRepo *repository.UserRepository,
	backend storage.Backend,
	logger *zap.Logger,
) *ProjectFileService {
	return &ProjectFileService{
		fileRepo:    fileRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		backend:     backend,
		logger:      logger,
	}
}

// UploadFileRequest carries a new drawing revision.
type UploadFileRequest struct {
	ProjectID  string   `json:"project_id" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Draw       string   `json:"draw" binding:"required"`
	Version    string   `json:"version" binding:"required"`
	Comments   string   `json:"comments"`
	Production bool     `json:"production"`
	GroupIDs   []string `json:"group_ids"`
}

// Upload stores the file under the project layout and records it. A
// production upload demotes every prior production revision of the same
// drawing inside the same transaction.
func (s *ProjectFileService) Upload(ctx context.Context, userID string, req *UploadFileRequest, r io.Reader, filename string, size int64, contentType string) (*entity.ProjectFile, error) {
	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}

	department, err := s.userRepo.DepartmentName(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, storage.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}

	version, err := strconv.Atoi(req.Version)
	if err != nil {
		return nil, fmt.Errorf("version must be numeric: %w", err)
	}
	draw := strings.ToUpper(req.Draw)

	filePath := storage.ProjectFilePath(project.Identifier, project.Name, department, draw, filename)
	if err := s.backend.Save(ctx, filePath, r, size, contentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	status := entity.FileStatusInProgress
	if req.Production {
		status = entity.FileStatusProduction
	}

	file := &entity.ProjectFile{
		ID:           newID(),
		Name:         strings.ToUpper(req.Name),
		Draw:         draw,
		Version:      fmt.Sprintf("%02d", version),
		Comments:     strings.ToUpper(req.Comments),
		Status:       status,
		FilePath:     filePath,
		FileName:     filename,
		FileSize:     size,
		ProjectID:    project.ID,
		UploadedByID: userID,
	}

	groups, err := s.userRepo.GroupsByIDs(ctx, req.GroupIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve groups: %w", err)
	}

	activity := repository.NewActivity(entity.EventUpload, userID, "")
	if err := s.fileRepo.CreateWithActivity(ctx, file, activity, groups); err != nil {
		return nil, fmt.Errorf("create project file: %w", err)
	}
	return file, nil
}

// ChangeStatus toggles a file in or out of production. The audit record
// carries a fixed reason so the history reads uniformly.
func (s *ProjectFileService) ChangeStatus(ctx context.Context, id string, status entity.FileStatus, userID string) (*entity.ProjectFile, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}

	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project file: %w", err)
	}
	if !file.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	reason := reasonFromProduction
	if status == entity.FileStatusProduction {
		reason = reasonToProduction
	}

	file.Status = status
	activity := repository.NewActivity(entity.EventUpdate, userID, reason)
	if err := s.fileRepo.UpdateStatus(ctx, file, activity); err != nil {
		return nil, fmt.Errorf("update file status: %w", err)
	}
	return file, nil
}

// ListForUser returns the files of a project the caller may see: all of
// them for admins, group-restricted otherwise, production-only for users
// without the review permission.
func (s *ProjectFileService) ListForUser(ctx context.Context, projectID, userID string, admin, reviewer bool) ([]entity.ProjectFile, error) {
	if admin {
		return s.fileRepo.ListByProject(ctx, projectID)
	}
	groupIDs, err := s.userRepo.GroupIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user groups: %w", err)
	}
	return s.fileRepo.ListVisible(ctx, projectID, groupIDs, !reviewer)
}

// History returns all revisions of a drawing, newest first.
func (s *ProjectFileService) History(ctx context.Context, fileID string) ([]entity.ProjectFile, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("find project file: %w", err)
	}
	return s.fileRepo.HistoryByDraw(ctx, file.ProjectID, file.Draw)
}

// ProductionPhotos returns the stored paths of production image files,
// for the project gallery.
func (s *ProjectFileService) ProductionPhotos(ctx context.Context, projectID string) ([]string, error) {
	files, err := s.fileRepo.ListProduction(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var photos []string
	for _, f := range files {
		if storage.IsImage(f.FileName) {
			photos = append(photos, f.FilePath)
		}
	}
	return photos, nil
}

// Open returns the stored file content.
func (s *ProjectFileService) Open(ctx context.Context, id string) (io.ReadCloser, *entity.ProjectFile, error) {
	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find project file: %w", err)
	}
	rc, err := s.backend.Open(ctx, file.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return rc, file, nil
}

// Zip bundles the given files into an in-memory zip archive.
func (s *ProjectFileService) Zip(ctx context.Context, ids []string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, id := range ids {
		file, err := s.fileRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find project file: %w", err)
		}
		rc, err := s.backend.Open(ctx, file.FilePath)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		w, err := zw.Create(path.Base(file.FilePath))
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("add zip entry: %w", err)
		}
		if _, err := io.Copy(w, rc); err != nil {
			rc.Close()
			return nil, fmt.Errorf("write zip entry: %w", err)
		}
		rc.Close()
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// SameVersion reports whether the stored revision has the given version.
func (s *ProjectFileService) SameVersion(ctx context.Context, id, version string) (bool, error) {
	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("find project file: %w", err)
	}
	return file.Version == version, nil
}

// SameName reports whether the stored revision has the given name,
// case-insensitively.
func (s *ProjectFileService) SameName(ctx context.Context, id, name string) (bool, error) {
	file, err := s.fileRepo.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("find project file: %w", err)
	}
	return strings.EqualFold(file.Name, name), nil
}
