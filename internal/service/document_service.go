package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matos-01/gestaoDocumentos/internal/mailer"
	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/storage"
)

const (
	categoryCacheKey = "gestaodocumentos:categories"
	categoryCacheTTL = 5 * time.Minute
)

// DocumentService drives the controlled-document lifecycle: uploads,
// approval flow, the audit trail and its notifications. Notifications are
// best-effort and never undo a committed transition.
type DocumentService struct {
	docRepo      *repository.DocumentRepository
	activityRepo *repository.ActivityRepository
	catRepo      *repository.CategoryRepository
	userRepo     *repository.UserRepository
	backend      storage.Backend
	sender       mailer.Sender
	rdb          *redis.Client
	baseURL      string
	logger       *zap.Logger
}

// NewDocumentService creates a document service.
func NewDocumentService(
	docRepo *repository.DocumentRepository,
	activityRepo *repository.ActivityRepository,
	catRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	backend storage.Backend,
	sender mailer.Sender,
	rdb *redis.Client,
	baseURL string,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		activityRepo: activityRepo,
		catRepo:      catRepo,
		userRepo:     userRepo,
		backend:      backend,
		sender:       sender,
		rdb:          rdb,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// UploadDocumentRequest carries a new document or a new revision of an
// existing one (DocumentID set).
type UploadDocumentRequest struct {
	DocumentID       string     `json:"document_id"`
	Code             string     `json:"code" binding:"required"`
	Name             string     `json:"name" binding:"required"`
	Version          string     `json:"version" binding:"required"`
	Comments         string     `json:"comments"`
	SubcategoryID    string     `json:"subcategory_id" binding:"required"`
	ExpirationDate   *time.Time `json:"expiration_date"`
	SendApproval     bool       `json:"send_approval"`
	ApprovalReason   string     `json:"approval_reason"`
	ApproverUsername string     `json:"approver_username"`
}

// DocumentListResult is one page of documents.
type DocumentListResult struct {
	Items      []entity.Document `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Upload creates a document or revises an existing one. With SendApproval
// the document enters VERIFIED and the approver is notified; otherwise it
// stays a DRAFT. Document row, activity and last-activity pointer are
// written in one transaction.
func (s *DocumentService) Upload(ctx context.Context, userID string, req *UploadDocumentRequest, r io.Reader, filename string, size int64, contentType string) (*entity.Document, error) {
	sub, err := s.catRepo.FindSubcategoryByID(ctx, req.SubcategoryID)
	if err != nil {
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	if sub.Category == nil {
		return nil, fmt.Errorf("subcategory %s has no category", sub.ID)
	}

	version, err := strconv.Atoi(req.Version)
	if err != nil {
		return nil, fmt.Errorf("version must be numeric: %w", err)
	}

	var approverID *string
	if req.ApproverUsername != "" {
		approver, err := s.userRepo.FindByUsername(ctx, req.ApproverUsername)
		if err == nil {
			approverID = &approver.ID
		}
	}

	status := entity.DocumentStatusDraft
	if req.SendApproval {
		status = entity.DocumentStatusVerified
	}

	code := strings.ToUpper(req.Code)
	name := strings.ToUpper(req.Name)

	var doc *entity.Document
	event := entity.EventCreate
	if req.DocumentID != "" {
		doc, err = s.docRepo.FindByID(ctx, req.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("find document: %w", err)
		}
		event = entity.EventUpdate
		doc.Code = code
		doc.Name = name
		doc.Comments = strings.ToUpper(req.Comments)
		doc.Version = fmt.Sprintf("%02d", version)
		doc.SubcategoryID = &sub.ID
		doc.ExpirationDate = req.ExpirationDate
		doc.Status = status
		if approverID != nil {
			doc.ApproverID = approverID
		}
	} else {
		doc = &entity.Document{
			ID:             newID(),
			Code:           code,
			Name:           name,
			Version:        fmt.Sprintf("%02d", version),
			Comments:       strings.ToUpper(req.Comments),
			Status:         status,
			SubcategoryID:  &sub.ID,
			UploadedByID:   userID,
			ApproverID:     approverID,
			ExpirationDate: req.ExpirationDate,
		}
	}

	if r != nil {
		department, err := s.userRepo.DepartmentName(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, storage.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("find department: %w", err)
		}
		filePath := storage.DocumentPath(sub.Category.Name, sub.Name, code, name, department, filename)
		if err := s.backend.Save(ctx, filePath, r, size, contentType); err != nil {
			return nil, fmt.Errorf("store file: %w", err)
		}
		doc.FilePath = filePath
		doc.FileName = filename
		doc.FileSize = size
	}

	activity := repository.NewActivity(event, userID, strings.ToUpper(req.ApprovalReason))
	if err := s.docRepo.SaveWithActivity(ctx, doc, activity); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if req.SendApproval {
		s.notifyApprovalPending(ctx, doc, sub)
	}
	return doc, nil
}

// ChangeStatus validates the transition, persists the mutation and its
// activity atomically, then notifies on approval and revision.
func (s *DocumentService) ChangeStatus(ctx context.Context, id string, status entity.DocumentStatus, userID, reason string) (*entity.Document, error) {
	if !status.Valid() {
		return nil, ErrInvalidTransition
	}

	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	if !doc.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	event := status.Event()
	reason = strings.ToUpper(strings.TrimSpace(reason))
	if event.ReasonRequired() && reason == "" {
		return nil, ErrReasonRequired
	}

	doc.Status = status
	activity := repository.NewActivity(event, userID, reason)
	if err := s.docRepo.SaveWithActivity(ctx, doc, activity); err != nil {
		return nil, fmt.Errorf("update document status: %w", err)
	}

	actor, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		actor = &entity.User{Username: userID}
	}
	switch status {
	case entity.DocumentStatusApproved:
		s.notifyStatusChange(doc, actor.Username, reason, mailer.SubjectApproved, mailer.RenderApproved)
	case entity.DocumentStatusRevision:
		s.notifyStatusChange(doc, actor.Username, reason, mailer.SubjectRevision, mailer.RenderRevision)
	}
	return doc, nil
}

// Get returns one document.
func (s *DocumentService) Get(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}

// List returns one page of documents. Non-editors only see approved ones.
func (s *DocumentService) List(ctx context.Context, page, pageSize int, subcategoryID string, editor bool) (*DocumentListResult, error) {
	filters := map[string]interface{}{}
	if subcategoryID != "" {
		filters["subcategory_id"] = subcategoryID
	}
	if !editor {
		filters["status"] = entity.DocumentStatusApproved
	}

	docs, total, err := s.docRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &DocumentListResult{
		Items:      docs,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// History returns the document's audit trail, newest first.
func (s *DocumentService) History(ctx context.Context, id string) ([]entity.Activity, error) {
	return s.activityRepo.ListByDocument(ctx, id)
}

// AccumulatedReasons renders the document's revision comments in upload
// form style: one "reason (user - date)" line per commented activity.
func (s *DocumentService) AccumulatedReasons(ctx context.Context, id string) (string, error) {
	activities, err := s.activityRepo.ListDocumentReasons(ctx, id)
	if err != nil {
		return "", fmt.Errorf("list reasons: %w", err)
	}
	var lines []string
	for _, a := range activities {
		username := a.UserID
		if a.User != nil {
			username = a.User.Username
		}
		date := a.Date.Format("02/01/2006 15:04:05")
		lines = append(lines, fmt.Sprintf("%s (%s - %s)", a.Reason, username, date))
	}
	return strings.Join(lines, "\n"), nil
}

// Download returns the stored file content.
func (s *DocumentService) Download(ctx context.Context, id string) (io.ReadCloser, *entity.Document, error) {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find document: %w", err)
	}
	if doc.FilePath == "" {
		return nil, doc, fmt.Errorf("document has no file")
	}
	rc, err := s.backend.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return rc, doc, nil
}

// IsEditor reports whether the user may upload into the category.
func (s *DocumentService) IsEditor(ctx context.Context, userID, categoryID string) (bool, error) {
	return s.catRepo.IsEditor(ctx, userID, categoryID)
}

// ListCategories returns the active category tree, cached in Redis for
// the navigation menu.
func (s *DocumentService) ListCategories(ctx context.Context) ([]entity.DocumentCategory, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, categoryCacheKey).Bytes(); err == nil {
			var categories []entity.DocumentCategory
			if err := json.Unmarshal(cached, &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.catRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.rdb.Set(ctx, categoryCacheKey, data, categoryCacheTTL).Err(); err != nil {
				s.logger.Warn("category cache write failed", zap.Error(err))
			}
		}
	}
	return categories, nil
}

func (s *DocumentService) detailURL(docID string) string {
	return fmt.Sprintf("%s/documento/detalhes/%s", s.baseURL, docID)
}

func (s *DocumentService) notifyApprovalPending(ctx context.Context, doc *entity.Document, sub *entity.DocumentSubcategory) {
	if doc.ApproverID == nil {
		return
	}
	approver, err := s.userRepo.FindByID(ctx, *doc.ApproverID)
	if err != nil || approver.Email == "" {
		return
	}
	uploader := doc.UploadedByID
	if u, err := s.userRepo.FindByID(ctx, doc.UploadedByID); err == nil {
		uploader = u.Username
	}

	body, err := mailer.RenderApprovalPending(mailer.ApprovalPendingData{
		Code:        doc.Code,
		Name:        doc.Name,
		Subcategory: sub.Name,
		Uploader:    uploader,
		DetailURL:   s.detailURL(doc.ID),
	})
	if err != nil {
		s.logger.Error("render approval-pending mail", zap.Error(err))
		return
	}

	subject := fmt.Sprintf(mailer.SubjectApprovalPending, doc.Code)
	if err := s.sender.SendEmail([]string{approver.Email}, subject, body); err != nil {
		s.logger.Warn("approval-pending notification failed",
			zap.String("document", doc.Code),
			zap.Error(err))
	}
}

func (s *DocumentService) notifyStatusChange(doc *entity.Document, actor, reason, subjectFmt string, render func(mailer.StatusChangeData) (string, error)) {
	recipients := s.recipients(doc)
	if len(recipients) == 0 {
		return
	}

	body, err := render(mailer.StatusChangeData{
		Code:      doc.Code,
		Name:      doc.Name,
		Actor:     actor,
		Reason:    reason,
		DetailURL: s.detailURL(doc.ID),
	})
	if err != nil {
		s.logger.Error("render status-change mail", zap.Error(err))
		return
	}

	subject := fmt.Sprintf(subjectFmt, doc.Name)
	if err := s.sender.SendEmail(recipients, subject, body); err != nil {
		s.logger.Warn("status-change notification failed",
			zap.String("document", doc.Code),
			zap.Error(err))
	}
}

// recipients derives the fixed notification set: uploader plus approver.
func (s *DocumentService) recipients(doc *entity.Document) []string {
	var to []string
	if doc.UploadedBy != nil && doc.UploadedBy.Email != "" {
		to = append(to, doc.UploadedBy.Email)
	}
	if doc.Approver != nil && doc.Approver.Email != "" {
		to = append(to, doc.Approver.Email)
	}
	return to
}
