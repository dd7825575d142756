package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matos-01/gestaoDocumentos/internal/config"
	"github.com/matos-01/gestaoDocumentos/internal/mailer"
	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/storage"
)

// Services bundles the application services.
type Services struct {
	Project     *ProjectService
	ProjectFile *ProjectFileService
	Document    *DocumentService
	Sweep       *SweepService
	Report      *ReportService
	News        *NewsService
}

// NewServices wires repositories, storage, mail and cache into services.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	var backend storage.Backend
	if cfg.MinIO.Endpoint != "" {
		client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO unavailable, falling back to local storage", zap.Error(err))
		} else {
			backend = storage.NewMinIO(client, cfg.MinIO.Bucket)
		}
	}
	if backend == nil {
		backend = storage.NewLocal(cfg.Storage.MediaRoot)
	}

	sender := mailer.NewService(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})

	return &Services{
		Project:     NewProjectService(repos.Project, repos.Template, repos.Activity, backend, logger),
		ProjectFile: NewProjectFileService(repos.ProjectFile, repos.Project, repos.User, backend, logger),
		Document:    NewDocumentService(repos.Document, repos.Activity, repos.Category, repos.User, backend, sender, rdb, cfg.Storage.BaseURL, logger),
		Sweep:       NewSweepService(repos.Document, repos.User, sender, rdb, cfg.Storage.BaseURL, logger),
		Report:      NewReportService(repos.Activity),
		News:        NewNewsService(repos.News),
	}
}

func newID() string {
	return uuid.New().String()[:32]
}

// NewsService manages home-page announcements.
type NewsService struct {
	repo *repository.NewsRepository
}

// NewNewsService creates a news service.
func NewNewsService(repo *repository.NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

// CreateNewsRequest carries a new announcement.
type CreateNewsRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	MediaPath   string    `json:"media_path"`
}

// Create inserts an announcement authored by userID.
func (s *NewsService) Create(ctx context.Context, userID string, req *CreateNewsRequest) (*entity.News, error) {
	news := &entity.News{
		ID:          newID(),
		Title:       req.Title,
		Description: req.Description,
		MediaPath:   req.MediaPath,
		CreatedByID: userID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Active:      true,
	}
	if err := s.repo.Create(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

// ListCurrent returns announcements still inside their display window.
func (s *NewsService) ListCurrent(ctx context.Context) ([]entity.News, error) {
	return s.repo.ListCurrent(ctx, time.Now())
}

// ListActive returns all active announcements.
func (s *NewsService) ListActive(ctx context.Context) ([]entity.News, error) {
	return s.repo.ListActive(ctx)
}
