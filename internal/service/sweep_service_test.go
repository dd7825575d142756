package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/testutil"
)

func newSweepService(t *testing.T, rdb *redis.Client, now time.Time) (*SweepService, *gorm.DB, *fakeSender) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	sender := &fakeSender{}
	svc := NewSweepService(repos.Document, repos.User, sender, rdb, "http://SERVIDOR01", zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc, db, sender
}

func daysFrom(now time.Time, days int) *time.Time {
	d := now.AddDate(0, 0, days)
	return &d
}

func TestExpirationSweepMarksOverdue(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, db, sender := newSweepService(t, nil, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")
	overdue := testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, -1))

	result, err := svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("RunExpiration() error: %v", err)
	}
	if result.Expired != 1 {
		t.Errorf("Expired = %d, want 1", result.Expired)
	}

	var stored entity.Document
	db.First(&stored, "id = ?", overdue.ID)
	if stored.Status != entity.DocumentStatusExpired {
		t.Errorf("Status = %v, want expired", stored.Status)
	}

	var activity entity.Activity
	db.Where("document_id = ?", overdue.ID).First(&activity)
	if activity.Event != entity.EventUpdate || activity.Reason != reasonExpired {
		t.Errorf("activity = %v/%q, want update with %q", activity.Event, activity.Reason, reasonExpired)
	}

	// Overdue documents are expired, not announced as expiring soon.
	if len(sender.sent()) != 0 {
		t.Errorf("mails sent = %d, want 0", len(sender.sent()))
	}
}

func TestExpirationSweepIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, db, _ := newSweepService(t, nil, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")
	doc := testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, -3))

	if _, err := svc.RunExpiration(ctx); err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	result, err := svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if result.Expired != 0 {
		t.Errorf("second sweep expired %d documents, want 0", result.Expired)
	}

	var count int64
	db.Model(&entity.Activity{}).Where("document_id = ?", doc.ID).Count(&count)
	if count != 1 {
		t.Errorf("activities = %d, want exactly one", count)
	}
}

func TestExpirationSweepDigestWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, db, sender := newSweepService(t, nil, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")

	// Inside the window: today, 10 and 50 days out. Outside: 51 days.
	testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 0))
	testutil.SeedDocument(t, db, "doc-2", "PQ-002", "B", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 10))
	testutil.SeedDocument(t, db, "doc-3", "PQ-003", "C", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 50))
	testutil.SeedDocument(t, db, "doc-4", "PQ-004", "D", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 51))

	result, err := svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("RunExpiration() error: %v", err)
	}
	if result.Notified != 3 {
		t.Errorf("Notified = %d, want 3", result.Notified)
	}

	mails := sender.sent()
	if len(mails) != 1 {
		t.Fatalf("mails sent = %d, want one digest per user", len(mails))
	}
	body := mails[0].Body
	if !strings.Contains(body, "PQ-002 | B (10 dia(s))") {
		t.Errorf("digest missing the 10-day line:\n%s", body)
	}
	if !strings.Contains(body, "PQ-001 | A (0 dia(s))") {
		t.Errorf("digest missing the same-day line:\n%s", body)
	}
	if strings.Contains(body, "PQ-004") {
		t.Errorf("digest includes a document outside the window:\n%s", body)
	}
}

func TestExpirationSweepSkipsExpiredInDigest(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, db, sender := newSweepService(t, nil, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")
	testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusExpired, daysFrom(now, 5))

	result, err := svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("RunExpiration() error: %v", err)
	}
	if result.Notified != 0 || len(sender.sent()) != 0 {
		t.Error("already-expired documents must not appear in the digest")
	}
}

func TestExpirationSweepOneMailPerUser(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, db, sender := newSweepService(t, nil, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedUser(t, db, "user-2", "joao", "Qualidade")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")
	testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 5))
	testutil.SeedDocument(t, db, "doc-2", "PQ-002", "B", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 7))
	testutil.SeedDocument(t, db, "doc-3", "PQ-003", "C", "user-2", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 9))

	result, err := svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("RunExpiration() error: %v", err)
	}

	mails := sender.sent()
	if len(mails) != 2 {
		t.Fatalf("mails sent = %d, want one per uploader", len(mails))
	}
	if result.EmailsSent != 2 {
		t.Errorf("EmailsSent = %d, want 2", result.EmailsSent)
	}
}

func TestApprovalWaitingSweep(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc, db, sender := newSweepService(t, nil, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")

	// Waiting for two days.
	stale := testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusVerified, nil)
	staleActivity := &entity.Activity{
		ID: "act-1", Event: entity.EventUpdate, DocumentID: &stale.ID,
		UserID: "user-1", Date: now.Add(-48 * time.Hour),
	}
	if err := db.Create(staleActivity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	db.Model(stale).Update("last_activity_id", staleActivity.ID)

	// Verified minutes ago: not waiting yet.
	fresh := testutil.SeedDocument(t, db, "doc-2", "PQ-002", "B", "user-1", "cat-1-sub", entity.DocumentStatusVerified, nil)
	freshActivity := &entity.Activity{
		ID: "act-2", Event: entity.EventUpdate, DocumentID: &fresh.ID,
		UserID: "user-1", Date: now.Add(-10 * time.Minute),
	}
	if err := db.Create(freshActivity).Error; err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	db.Model(fresh).Update("last_activity_id", freshActivity.ID)

	// Approved documents are not waiting.
	testutil.SeedDocument(t, db, "doc-3", "PQ-003", "C", "user-1", "cat-1-sub", entity.DocumentStatusApproved, nil)

	result, err := svc.RunApprovalWaiting(ctx)
	if err != nil {
		t.Fatalf("RunApprovalWaiting() error: %v", err)
	}
	if result.Notified != 1 {
		t.Errorf("Notified = %d, want 1", result.Notified)
	}

	mails := sender.sent()
	if len(mails) != 1 {
		t.Fatalf("mails sent = %d, want 1", len(mails))
	}
	if !strings.Contains(mails[0].Body, "PQ-001 | A (2 dia(s))") {
		t.Errorf("digest missing the waiting line:\n%s", mails[0].Body)
	}
	if strings.Contains(mails[0].Body, "PQ-002") {
		t.Errorf("digest includes a fresh document:\n%s", mails[0].Body)
	}
}

func TestSweepAdvisoryLock(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc, db, sender := newSweepService(t, rdb, now)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedCategory(t, db, "cat-1", "Qualidade", "Procedimentos")
	testutil.SeedDocument(t, db, "doc-1", "PQ-001", "A", "user-1", "cat-1-sub", entity.DocumentStatusApproved, daysFrom(now, 5))

	// Another instance holds the lock: the pass is skipped.
	mr.Set("gestaodocumentos:sweep:expiration", "held")
	result, err := svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("RunExpiration() error: %v", err)
	}
	if result.Notified != 0 || len(sender.sent()) != 0 {
		t.Error("sweep ran despite the lock being held")
	}

	// Lock released: the pass runs and releases the lock afterwards.
	mr.Del("gestaodocumentos:sweep:expiration")
	result, err = svc.RunExpiration(ctx)
	if err != nil {
		t.Fatalf("RunExpiration() error: %v", err)
	}
	if result.Notified != 1 {
		t.Errorf("Notified = %d, want 1", result.Notified)
	}
	if mr.Exists("gestaodocumentos:sweep:expiration") {
		t.Error("lock not released after the sweep")
	}
}
