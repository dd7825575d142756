package repository

import (
	"context"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"gorm.io/gorm"
)

// ProjectFileRepository persists project file revisions.
type ProjectFileRepository struct {
	db *gorm.DB
}

// NewProjectFileRepository creates a project file repository.
func NewProjectFileRepository(db *gorm.DB) *ProjectFileRepository {
	return &ProjectFileRepository{db: db}
}

// FindByID finds a file by ID.
func (r *ProjectFileRepository) FindByID(ctx context.Context, id string) (*entity.ProjectFile, error) {
	var file entity.ProjectFile
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("UploadedBy").
		Preload("Groups").
		Where("id = ?", id).
		First(&file).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}

// CreateWithActivity inserts the file, its UPLOAD activity and its
// visibility groups in one transaction. When the new file enters
// production, every other production file of the same (project, draw) is
// demoted to obsolete inside the same transaction; the demoted rows get no
// activity records of their own.
func (r *ProjectFileRepository) CreateWithActivity(ctx context.Context, file *entity.ProjectFile, activity *entity.Activity, groups []entity.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if file.Status == entity.FileStatusProduction {
			if err := demoteProduction(tx, file.ProjectID, file.Draw); err != nil {
				return err
			}
		}
		if err := tx.Create(file).Error; err != nil {
			return err
		}
		if len(groups) > 0 {
			if err := tx.Model(file).Association("Groups").Append(groups); err != nil {
				return err
			}
		}
		activity.ProjectID = &file.ProjectID
		activity.ProjectFileID = &file.ID
		return tx.Create(activity).Error
	})
}

// UpdateStatus saves the mutated file and appends the activity atomically,
// demoting competing production files first when needed.
func (r *ProjectFileRepository) UpdateStatus(ctx context.Context, file *entity.ProjectFile, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if file.Status == entity.FileStatusProduction {
			if err := demoteProduction(tx, file.ProjectID, file.Draw, file.ID); err != nil {
				return err
			}
		}
		if err := tx.Save(file).Error; err != nil {
			return err
		}
		activity.ProjectID = &file.ProjectID
		activity.ProjectFileID = &file.ID
		return tx.Create(activity).Error
	})
}

func demoteProduction(tx *gorm.DB, projectID, draw string, exclude ...string) error {
	query := tx.Model(&entity.ProjectFile{}).
		Where("project_id = ? AND draw = ? AND status = ?", projectID, draw, entity.FileStatusProduction)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}
	return query.Update("status", entity.FileStatusObsolete).Error
}

// ListByProject returns all file revisions of a project.
func (r *ProjectFileRepository) ListByProject(ctx context.Context, projectID string) ([]entity.ProjectFile, error) {
	var files []entity.ProjectFile
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Preload("Groups").
		Where("project_id = ?", projectID).
		Order("draw ASC, upload_date DESC").
		Find(&files).Error
	return files, err
}

// ListVisible returns a project's files restricted to the caller's groups,
// optionally to production files only.
func (r *ProjectFileRepository) ListVisible(ctx context.Context, projectID string, groupIDs []string, productionOnly bool) ([]entity.ProjectFile, error) {
	var files []entity.ProjectFile
	query := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Joins("JOIN project_file_groups pfg ON pfg.project_file_id = project_files.id").
		Where("project_files.project_id = ? AND pfg.group_id IN ?", projectID, groupIDs)
	if productionOnly {
		query = query.Where("project_files.status = ?", entity.FileStatusProduction)
	}
	err := query.
		Distinct().
		Order("draw ASC, upload_date DESC").
		Find(&files).Error
	return files, err
}

// HistoryByDraw returns all revisions of one drawing, newest first.
func (r *ProjectFileRepository) HistoryByDraw(ctx context.Context, projectID, draw string) ([]entity.ProjectFile, error) {
	var files []entity.ProjectFile
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("project_id = ? AND draw = ?", projectID, draw).
		Order("upload_date DESC").
		Find(&files).Error
	return files, err
}

// ListProduction returns the production files of a project.
func (r *ProjectFileRepository) ListProduction(ctx context.Context, projectID string) ([]entity.ProjectFile, error) {
	var files []entity.ProjectFile
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, entity.FileStatusProduction).
		Find(&files).Error
	return files, err
}

// CountProduction counts production files of one drawing.
func (r *ProjectFileRepository) CountProduction(ctx context.Context, projectID, draw string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectFile{}).
		Where("project_id = ? AND draw = ? AND status = ?", projectID, draw, entity.FileStatusProduction).
		Count(&count).Error
	return count, err
}
