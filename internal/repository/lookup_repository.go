package repository

import (
	"context"
	"time"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"gorm.io/gorm"
)

// CategoryRepository reads the document category tree.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListActive returns active categories with their subcategories, for the
// navigation menu.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]entity.DocumentCategory, error) {
	var categories []entity.DocumentCategory
	err := r.db.WithContext(ctx).
		Preload("Subcategories", "active = ?", true).
		Where("active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// FindSubcategoryByID finds a subcategory with its parent category.
func (r *CategoryRepository) FindSubcategoryByID(ctx context.Context, id string) (*entity.DocumentSubcategory, error) {
	var sub entity.DocumentSubcategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}

// IsEditor reports whether the user may upload into the category.
func (r *CategoryRepository) IsEditor(ctx context.Context, userID, categoryID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.UserCategory{}).
		Where("user_id = ? AND category_id = ? AND editor = ?", userID, categoryID, true).
		Count(&count).Error
	return count > 0, err
}

// TemplateRepository reads project folder templates.
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a template repository.
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// FindByID finds a template with its folders.
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.ProjectTemplate, error) {
	var tmpl entity.ProjectTemplate
	err := r.db.WithContext(ctx).
		Preload("Folders").
		Where("id = ?", id).
		First(&tmpl).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &tmpl, nil
}

// ListActive returns all active templates.
func (r *TemplateRepository) ListActive(ctx context.Context) ([]entity.ProjectTemplate, error) {
	var templates []entity.ProjectTemplate
	err := r.db.WithContext(ctx).
		Preload("Folders").
		Where("active = ?", true).
		Order("name ASC").
		Find(&templates).Error
	return templates, err
}

// NewsRepository persists home-page announcements.
type NewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a news repository.
func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// Create inserts an announcement.
func (r *NewsRepository) Create(ctx context.Context, news *entity.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// ListCurrent returns active announcements whose display window has not
// closed yet.
func (r *NewsRepository) ListCurrent(ctx context.Context, now time.Time) ([]entity.News, error) {
	var news []entity.News
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("active = ? AND end_date >= ?", true, now).
		Order("creation_date DESC").
		Find(&news).Error
	return news, err
}

// ListActive returns all active announcements, newest first.
func (r *NewsRepository) ListActive(ctx context.Context) ([]entity.News, error) {
	var news []entity.News
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("active = ?", true).
		Order("creation_date DESC").
		Find(&news).Error
	return news, err
}
