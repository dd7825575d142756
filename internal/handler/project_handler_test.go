package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"github.com/matos-01/gestaoDocumentos/internal/repository"
	"github.com/matos-01/gestaoDocumentos/internal/service"
	"github.com/matos-01/gestaoDocumentos/internal/storage"
	"github.com/matos-01/gestaoDocumentos/internal/testutil"
)

func setupProjectRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := service.NewProjectService(repos.Project, repos.Template, repos.Activity, storage.NewLocal(t.TempDir()), zap.NewNop())
	h := NewProjectHandler(svc)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")
	api.POST("/projects", h.Create)
	api.GET("/projects/:id", h.Get)
	api.PUT("/projects/:id/status", h.ChangeStatus)
	api.GET("/projects/:id/activities", h.History)
	return r, db
}

func TestProjectRoutesRequireAuth(t *testing.T) {
	r, _ := setupProjectRouter(t)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/projects/any", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProjectCreateEndpoint(t *testing.T) {
	r, db := setupProjectRouter(t)

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedTemplate(t, db, "tpl-1", "Engenharia")
	token := testutil.GenerateTestToken("user-1", "maria", false, false)

	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/projects", map[string]interface{}{
		"identifier":  "42",
		"name":        "novo projeto",
		"template_id": "tpl-1",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 0 {
		t.Errorf("code = %v, want 0", resp["code"])
	}
	data := resp["data"].(map[string]interface{})
	if data["identifier"] != "000042" {
		t.Errorf("identifier = %v, want 000042", data["identifier"])
	}
}

func TestProjectCreateValidation(t *testing.T) {
	r, db := setupProjectRouter(t)

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	token := testutil.GenerateTestToken("user-1", "maria", false, false)

	// Missing required fields.
	w := testutil.DoRequest(r, http.MethodPost, "/api/v1/projects", map[string]interface{}{
		"identifier": "42",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestProjectChangeStatusEndpoint(t *testing.T) {
	r, db := setupProjectRouter(t)

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	testutil.SeedProject(t, db, "proj-1", "000042", "TESTE", "user-1", "")
	token := testutil.GenerateTestToken("user-1", "maria", false, false)

	w := testutil.DoRequest(r, http.MethodPut, "/api/v1/projects/proj-1/status", map[string]interface{}{
		"status": int(entity.ProjectStatusExecution),
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	// An invalid transition maps to 422.
	w = testutil.DoRequest(r, http.MethodPut, "/api/v1/projects/proj-1/status", map[string]interface{}{
		"status": int(entity.ProjectStatusNew),
	}, token)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body: %s", w.Code, w.Body.String())
	}
}

func TestProjectGetNotFound(t *testing.T) {
	r, db := setupProjectRouter(t)

	testutil.SeedUser(t, db, "user-1", "maria", "Engenharia")
	token := testutil.GenerateTestToken("user-1", "maria", false, false)

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/projects/missing", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}
