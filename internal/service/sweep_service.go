package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matos-01/gestaoDocumentos/internal/mailer"
	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
)

const (
	// Documents expiring within this many days appear in the digest.
	expirationWindowDays = 50

	// A verified document counts as waiting once its last activity is at
	// least this old.
	approvalWaitingAfter = 24 * time.Hour

	sweepLockTTL = 10 * time.Minute

	reasonExpired = "Documento Expirado"
)

// SweepService runs the periodic expiration and approval-waiting passes.
// Each pass sends at most one digest email per user.
type SweepService struct {
	docRepo  *repository.DocumentRepository
	userRepo *repository.UserRepository
	sender   mailer.Sender
	rdb      *redis.Client
	baseURL  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewSweepService creates a sweep service.
func NewSweepService(
	docRepo *repository.DocumentRepository,
	userRepo *repository.UserRepository,
	sender mailer.Sender,
	rdb *redis.Client,
	baseURL string,
	logger *zap.Logger,
) *SweepService {
	return &SweepService{
		docRepo:  docRepo,
		userRepo: userRepo,
		sender:   sender,
		rdb:      rdb,
		baseURL:  baseURL,
		logger:   logger,
		now:      time.Now,
	}
}

// SweepResult summarizes one pass.
type SweepResult struct {
	Expired    int `json:"expired"`
	Notified   int `json:"notified"`
	EmailsSent int `json:"emails_sent"`
}

// RunExpiration marks documents past their expiration date as expired and
// sends each uploader a digest of documents expiring within the window.
// When several instances share a Redis, an advisory lock keeps the pass
// from running twice.
func (s *SweepService) RunExpiration(ctx context.Context) (*SweepResult, error) {
	release, ok, err := s.acquireLock(ctx, "gestaodocumentos:sweep:expiration")
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("expiration sweep already running elsewhere, skipping")
		return &SweepResult{}, nil
	}
	defer release()

	docs, err := s.docRepo.ListWithExpiration(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents with expiration: %w", err)
	}

	result := &SweepResult{}
	today := truncateToDay(s.now())
	batches := map[string][]mailer.BatchItem{}

	for i := range docs {
		doc := &docs[i]
		expiration := truncateToDay(*doc.ExpirationDate)
		days := int(expiration.Sub(today).Hours() / 24)

		if days < 0 {
			if doc.Status == entity.DocumentStatusExpired {
				continue
			}
			activity := repository.NewActivity(entity.EventUpdate, doc.UploadedByID, reasonExpired)
			if err := s.docRepo.MarkExpired(ctx, doc, activity); err != nil {
				s.logger.Error("mark document expired",
					zap.String("document", doc.Code),
					zap.Error(err))
				continue
			}
			result.Expired++
			continue
		}

		if days <= expirationWindowDays && doc.Status != entity.DocumentStatusExpired {
			batches[doc.UploadedByID] = append(batches[doc.UploadedByID], mailer.BatchItem{
				Code:      doc.Code,
				Name:      doc.Name,
				Days:      days,
				DetailURL: s.detailURL(doc.ID),
			})
			result.Notified++
		}
	}

	result.EmailsSent = s.sendBatches(ctx, batches, mailer.SubjectExpiring, mailer.RenderExpiringBatch)
	s.logger.Info("expiration sweep finished",
		zap.Int("expired", result.Expired),
		zap.Int("notified", result.Notified),
		zap.Int("emails", result.EmailsSent))
	return result, nil
}

// RunApprovalWaiting sends each uploader a digest of verified documents
// that have been waiting for approval for at least a day.
func (s *SweepService) RunApprovalWaiting(ctx context.Context) (*SweepResult, error) {
	release, ok, err := s.acquireLock(ctx, "gestaodocumentos:sweep:approval")
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("approval sweep already running elsewhere, skipping")
		return &SweepResult{}, nil
	}
	defer release()

	docs, err := s.docRepo.ListVerified(ctx)
	if err != nil {
		return nil, fmt.Errorf("list verified documents: %w", err)
	}

	result := &SweepResult{}
	now := s.now()
	batches := map[string][]mailer.BatchItem{}

	for i := range docs {
		doc := &docs[i]
		since := doc.UploadDate
		if doc.LastActivity != nil {
			since = doc.LastActivity.Date
		}
		waiting := now.Sub(since)
		if waiting < approvalWaitingAfter {
			continue
		}
		batches[doc.UploadedByID] = append(batches[doc.UploadedByID], mailer.BatchItem{
			Code:      doc.Code,
			Name:      doc.Name,
			Days:      int(waiting.Hours() / 24),
			DetailURL: s.detailURL(doc.ID),
		})
		result.Notified++
	}

	result.EmailsSent = s.sendBatches(ctx, batches, mailer.SubjectWaiting, mailer.RenderWaitingBatch)
	s.logger.Info("approval sweep finished",
		zap.Int("notified", result.Notified),
		zap.Int("emails", result.EmailsSent))
	return result, nil
}

// sendBatches emails one digest per user. Users are processed in a stable
// order so that reruns log the same sequence.
func (s *SweepService) sendBatches(ctx context.Context, batches map[string][]mailer.BatchItem, subject string, render func(mailer.BatchData) (string, error)) int {
	userIDs := make([]string, 0, len(batches))
	for id := range batches {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	sent := 0
	for _, userID := range userIDs {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil || user.Email == "" {
			s.logger.Warn("skipping digest, no deliverable address", zap.String("user_id", userID))
			continue
		}

		body, err := render(mailer.BatchData{
			FirstName: firstName(user),
			Items:     batches[userID],
		})
		if err != nil {
			s.logger.Error("render digest", zap.Error(err))
			continue
		}

		if err := s.sender.SendEmail([]string{user.Email}, subject, body); err != nil {
			s.logger.Warn("digest delivery failed",
				zap.String("user", user.Username),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// acquireLock takes the Redis advisory lock when Redis is configured.
// Without Redis the sweep runs unguarded.
func (s *SweepService) acquireLock(ctx context.Context, key string) (func(), bool, error) {
	if s.rdb == nil {
		return func() {}, true, nil
	}
	ok, err := s.rdb.SetNX(ctx, key, s.now().Format(time.RFC3339), sweepLockTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return func() {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			s.logger.Warn("release sweep lock", zap.Error(err))
		}
	}, true, nil
}

func (s *SweepService) detailURL(docID string) string {
	return fmt.Sprintf("%s/documento/detalhes/%s", s.baseURL, docID)
}

func firstName(u *entity.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if i := strings.IndexByte(u.Username, '.'); i > 0 {
		return strings.ToUpper(u.Username[:1]) + u.Username[1:i]
	}
	return u.Username
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
