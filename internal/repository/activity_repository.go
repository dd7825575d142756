package repository

import (
	"context"
	"time"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository reads the append-only audit trail. Writes happen
// inside the owning entity's transaction; there is no update or delete.
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// NewActivity builds an unsaved activity record.
func NewActivity(event entity.Event, userID, reason string) *entity.Activity {
	return &entity.Activity{
		ID:     uuid.New().String()[:32],
		Event:  event,
		UserID: userID,
		Reason: reason,
	}
}

// ListByDocument returns a document's history, newest first.
func (r *ActivityRepository) ListByDocument(ctx context.Context, documentID string) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("document_id = ?", documentID).
		Order("date DESC").
		Find(&activities).Error
	return activities, err
}

// ListByProject returns a project's history, newest first.
func (r *ActivityRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ProjectFile").
		Where("project_id = ?", projectID).
		Order("date DESC").
		Find(&activities).Error
	return activities, err
}

// ListDocumentReasons returns the document's activities that carry a
// reason, oldest first, for the accumulated revision-comment view.
func (r *ActivityRepository) ListDocumentReasons(ctx context.Context, documentID string) ([]entity.Activity, error) {
	var activities []entity.Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User").
		Where("document_id = ? AND reason <> ''", documentID).
		Order("date ASC").
		Find(&activities).Error
	return activities, err
}

// ListForReport returns activities in a period, optionally for one
// project, for the report export.
func (r *ActivityRepository) ListForReport(ctx context.Context, from, to time.Time, projectID string) ([]entity.Activity, error) {
	var activities []entity.Activity
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Project").
		Preload("Document").
		Preload("ProjectFile").
		Where("date >= ? AND date < ?", from, to)
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	err := query.Order("date ASC").Find(&activities).Error
	return activities, err
}
