package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/storage"
	"github.com/matos-01/gestaoDocumentos/internal/testutil"
)

func newProjectService(t *testing.T) (*ProjectService, *gorm.DB, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	root := t.TempDir()
	svc := NewProjectService(repos.Project, repos.Template, repos.Activity, storage.NewLocal(root), zap.NewNop())
	return svc, db, root
}

func TestProjectCreate(t *testing.T) {
	svc, db, root := newProjectService(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedTemplate(t, db, "tpl-1", "Engenharia", "Qualidade")

	project, err := svc.Create(ctx, "user-1", &CreateProjectRequest{
		Identifier: "123",
		Name:       "suporte motor",
		TemplateID: "tpl-1",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if project.Identifier != "000123" {
		t.Errorf("Identifier = %q, want zero-padded %q", project.Identifier, "000123")
	}
	if project.Name != "SUPORTE MOTOR" {
		t.Errorf("Name = %q, want uppercased", project.Name)
	}
	if project.Status != entity.ProjectStatusNew {
		t.Errorf("Status = %v, want new", project.Status)
	}

	var activities []entity.Activity
	if err := db.Where("project_id = ?", project.ID).Find(&activities).Error; err != nil {
		t.Fatalf("load activities: %v", err)
	}
	if len(activities) != 1 || activities[0].Event != entity.EventCreate {
		t.Errorf("want exactly one create activity, got %v", activities)
	}

	// The template folders get an Editáveis tree each.
	for _, dir := range []string{
		"Projetos/000123 - SUPORTE MOTOR/Engenharia/Editáveis",
		"Projetos/000123 - SUPORTE MOTOR/Qualidade/Editáveis",
	} {
		if _, err := os.Stat(filepath.Join(root, dir)); err != nil {
			t.Errorf("folder %s not allocated: %v", dir, err)
		}
	}
}

func TestProjectCreateNonNumericIdentifier(t *testing.T) {
	svc, db, _ := newProjectService(t)
	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedTemplate(t, db, "tpl-1", "Engenharia")

	_, err := svc.Create(context.Background(), "user-1", &CreateProjectRequest{
		Identifier: "ABC",
		Name:       "X",
		TemplateID: "tpl-1",
	})
	if err == nil {
		t.Error("Create() with a non-numeric identifier should fail")
	}
}

func TestProjectChangeStatus(t *testing.T) {
	svc, db, _ := newProjectService(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedProject(t, db, "proj-1", "000123", "TESTE", "user-1", "")

	project, err := svc.ChangeStatus(ctx, "proj-1", entity.ProjectStatusExecution, "user-1", "")
	if err != nil {
		t.Fatalf("ChangeStatus() error: %v", err)
	}
	if project.Status != entity.ProjectStatusExecution {
		t.Errorf("Status = %v, want execution", project.Status)
	}

	var activities []entity.Activity
	db.Where("project_id = ?", "proj-1").Find(&activities)
	if len(activities) != 1 {
		t.Fatalf("want exactly one activity per transition, got %d", len(activities))
	}
	if activities[0].Event != entity.EventStart {
		t.Errorf("Event = %v, want start", activities[0].Event)
	}
}

func TestProjectChangeStatusRejected(t *testing.T) {
	svc, db, _ := newProjectService(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedProject(t, db, "proj-1", "000123", "TESTE", "user-1", "")

	// A new project cannot be completed directly.
	_, err := svc.ChangeStatus(ctx, "proj-1", entity.ProjectStatusCompleted, "user-1", "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}

	var count int64
	db.Model(&entity.Activity{}).Where("project_id = ?", "proj-1").Count(&count)
	if count != 0 {
		t.Errorf("rejected transition must not record an activity, got %d", count)
	}

	var project entity.Project
	db.First(&project, "id = ?", "proj-1")
	if project.Status != entity.ProjectStatusNew {
		t.Errorf("rejected transition must not change status, got %v", project.Status)
	}
}

func TestProjectPauseRequiresReason(t *testing.T) {
	svc, db, _ := newProjectService(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	project := testutil.SeedProject(t, db, "proj-1", "000123", "TESTE", "user-1", "")
	db.Model(project).Update("status", entity.ProjectStatusExecution)

	_, err := svc.ChangeStatus(ctx, "proj-1", entity.ProjectStatusPaused, "user-1", "  ")
	if !errors.Is(err, ErrReasonRequired) {
		t.Errorf("err = %v, want ErrReasonRequired", err)
	}

	if _, err := svc.ChangeStatus(ctx, "proj-1", entity.ProjectStatusPaused, "user-1", "aguardando material"); err != nil {
		t.Fatalf("ChangeStatus() with reason error: %v", err)
	}

	var activity entity.Activity
	db.Where("project_id = ?", "proj-1").First(&activity)
	if activity.Reason != "AGUARDANDO MATERIAL" {
		t.Errorf("Reason = %q, want uppercased", activity.Reason)
	}
}

func TestProjectCreateFolder(t *testing.T) {
	svc, db, root := newProjectService(t)
	ctx := context.Background()

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedProject(t, db, "proj-1", "000123", "TESTE", "user-1", "")

	if err := svc.CreateFolder(ctx, "proj-1", "Compras"); err != nil {
		t.Fatalf("CreateFolder() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "Projetos/000123 - TESTE/Compras")); err != nil {
		t.Errorf("folder not created: %v", err)
	}
}
