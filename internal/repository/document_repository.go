package repository

import (
	"context"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"gorm.io/gorm"
)

// DocumentRepository persists controlled documents.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// FindByID finds a document by ID.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Preload("Subcategory.Category").
		Preload("UploadedBy").
		Preload("Approver").
		Preload("LastActivity").
		Where("id = ?", id).
		First(&doc).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

// SaveWithActivity saves the document, appends the activity and repoints
// last_activity to it, all in one transaction. Every document mutation
// goes through here so no status change lands without its audit record.
func (r *DocumentRepository) SaveWithActivity(ctx context.Context, doc *entity.Document, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doc).Error; err != nil {
			return err
		}
		activity.DocumentID = &doc.ID
		if err := tx.Create(activity).Error; err != nil {
			return err
		}
		doc.LastActivityID = &activity.ID
		return tx.Model(doc).Update("last_activity_id", activity.ID).Error
	})
}

// List returns documents, optionally restricted to one subcategory and to
// approved documents only (non-editor view).
func (r *DocumentRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Document, int64, error) {
	var docs []entity.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Document{})

	if subcategoryID, ok := filters["subcategory_id"].(string); ok && subcategoryID != "" {
		query = query.Where("subcategory_id = ?", subcategoryID)
	}
	if status, ok := filters["status"].(entity.DocumentStatus); ok {
		query = query.Where("status = ?", status)
	}
	if uploadedBy, ok := filters["uploaded_by_id"].(string); ok && uploadedBy != "" {
		query = query.Where("uploaded_by_id = ?", uploadedBy)
	}
	if code, ok := filters["code"].(string); ok && code != "" {
		query = query.Where("code LIKE ?", "%"+code+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Subcategory").
		Preload("UploadedBy").
		Order("upload_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

// ListWithExpiration returns all documents carrying an expiration date,
// for the expiration sweep.
func (r *DocumentRepository) ListWithExpiration(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("expiration_date IS NOT NULL").
		Find(&docs).Error
	return docs, err
}

// ListVerified returns all documents waiting for approval, with their
// last activity, for the approval-waiting sweep.
func (r *DocumentRepository) ListVerified(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).
		Preload("UploadedBy").
		Preload("LastActivity").
		Where("status = ?", entity.DocumentStatusVerified).
		Find(&docs).Error
	return docs, err
}

// MarkExpired sets an overdue document to expired without touching
// last_activity. The sweep records the transition in the audit trail.
func (r *DocumentRepository) MarkExpired(ctx context.Context, doc *entity.Document, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(doc).
			Update("status", entity.DocumentStatusExpired).Error; err != nil {
			return err
		}
		doc.Status = entity.DocumentStatusExpired
		activity.DocumentID = &doc.ID
		return tx.Create(activity).Error
	})
}
