package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matos-01/gestaoDocumentos/internal/middleware"
	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
)

const JWTSecret = "gestao-documentos-test-secret"

// SetupTestDB opens an isolated in-memory database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps all pooled connections on the same
	// store while isolating tests from each other.
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Group{},
		&entity.Department{},
		&entity.UserDepartment{},
		&entity.TemplateFolder{},
		&entity.ProjectTemplate{},
		&entity.Project{},
		&entity.ProjectFile{},
		&entity.DocumentCategory{},
		&entity.DocumentSubcategory{},
		&entity.UserCategory{},
		&entity.Document{},
		&entity.Activity{},
		&entity.News{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group guarded by the JWT middleware.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a signed token for a test user.
func GenerateTestToken(userID, username string, admin, reviewer bool) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"uid":      userID,
		"username": username,
		"email":    username + "@test.com",
		"groups":   []string{},
		"admin":    admin,
		"reviewer": reviewer,
		"iss":      "gestao-documentos",
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"jti":      fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response envelope.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUser creates a user with a department mapping.
func SeedUser(t *testing.T, db *gorm.DB, id, username, department string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:        id,
		Username:  username,
		FirstName: username,
		Email:     username + "@test.com",
		Active:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	if department != "" {
		dept := &entity.Department{ID: "dept-" + id, Name: department}
		if err := db.Create(dept).Error; err != nil {
			t.Fatalf("Failed to seed department: %v", err)
		}
		ud := &entity.UserDepartment{ID: "ud-" + id, UserID: id, DepartmentID: dept.ID}
		if err := db.Create(ud).Error; err != nil {
			t.Fatalf("Failed to seed user department: %v", err)
		}
	}
	return user
}

// SeedTemplate creates a project template with the given folder names.
func SeedTemplate(t *testing.T, db *gorm.DB, id string, folders ...string) *entity.ProjectTemplate {
	t.Helper()
	tpl := &entity.ProjectTemplate{ID: id, Name: "Template " + id, Active: true}
	for i, name := range folders {
		tpl.Folders = append(tpl.Folders, entity.TemplateFolder{
			ID:     fmt.Sprintf("%s-folder-%d", id, i),
			Name:   name,
			Active: true,
		})
	}
	if err := db.Create(tpl).Error; err != nil {
		t.Fatalf("Failed to seed template: %v", err)
	}
	return tpl
}

// SeedProject creates a project owned by userID.
func SeedProject(t *testing.T, db *gorm.DB, id, identifier, name, userID, templateID string) *entity.Project {
	t.Helper()
	project := &entity.Project{
		ID:            id,
		Identifier:    identifier,
		Name:          name,
		Status:        entity.ProjectStatusNew,
		ResponsibleID: userID,
	}
	if templateID != "" {
		project.TemplateID = &templateID
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}
	return project
}

// SeedCategory creates a category with one subcategory and returns both.
func SeedCategory(t *testing.T, db *gorm.DB, id, name, subName string) (*entity.DocumentCategory, *entity.DocumentSubcategory) {
	t.Helper()
	cat := &entity.DocumentCategory{ID: id, Name: name, Active: true}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	sub := &entity.DocumentSubcategory{ID: id + "-sub", Name: subName, Active: true, CategoryID: id}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to seed subcategory: %v", err)
	}
	return cat, sub
}

// SeedDocument creates a document in the given status.
func SeedDocument(t *testing.T, db *gorm.DB, id, code, name, userID, subcategoryID string, status entity.DocumentStatus, expiration *time.Time) *entity.Document {
	t.Helper()
	doc := &entity.Document{
		ID:             id,
		Code:           code,
		Name:           name,
		Version:        "01",
		Status:         status,
		UploadedByID:   userID,
		ExpirationDate: expiration,
	}
	if subcategoryID != "" {
		doc.SubcategoryID = &subcategoryID
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("Failed to seed document: %v", err)
	}
	return doc
}
