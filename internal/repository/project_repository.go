package repository

import (
	"context"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"gorm.io/gorm"
)

// ProjectRepository persists projects and their status history.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID finds a project by ID.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("Responsible").
		Preload("Template.Folders").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// FindByIdentifier finds a project by its 6-digit code.
func (r *ProjectRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Where("identifier = ?", identifier).
		First(&project).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

// CreateWithActivity inserts the project and its CREATE activity in one
// transaction.
func (r *ProjectRepository) CreateWithActivity(ctx context.Context, project *entity.Project, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		activity.ProjectID = &project.ID
		return tx.Create(activity).Error
	})
}

// UpdateStatus saves the mutated project and appends the transition
// activity atomically.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, project *entity.Project, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}
		activity.ProjectID = &project.ID
		return tx.Create(activity).Error
	})
}

// List returns projects filtered by status and/or identifier substring.
func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Project, int64, error) {
	var projects []entity.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Project{})

	if status, ok := filters["status"].(entity.ProjectStatus); ok {
		query = query.Where("status = ?", status)
	}
	if search, ok := filters["identifier"].(string); ok && search != "" {
		query = query.Where("identifier LIKE ?", "%"+search+"%")
	}
	if responsibleID, ok := filters["responsible_id"].(string); ok && responsibleID != "" {
		query = query.Where("responsible_id = ?", responsibleID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Responsible").
		Order("creation_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListOpen returns the most recent projects still in an open status, for
// the home listing.
func (r *ProjectRepository) ListOpen(ctx context.Context, limit int) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("status IN ?", []entity.ProjectStatus{entity.ProjectStatusNew, entity.ProjectStatusExecution}).
		Order("creation_date DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
