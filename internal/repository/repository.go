package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Repositories bundles all repositories around one DB handle.
type Repositories struct {
	Project     *ProjectRepository
	ProjectFile *ProjectFileRepository
	Document    *DocumentRepository
	Activity    *ActivityRepository
	User        *UserRepository
	Category    *CategoryRepository
	Template    *TemplateRepository
	News        *NewsRepository
}

// NewRepositories creates the repository set.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:     NewProjectRepository(db),
		ProjectFile: NewProjectFileRepository(db),
		Document:    NewDocumentRepository(db),
		Activity:    NewActivityRepository(db),
		User:        NewUserRepository(db),
		Category:    NewCategoryRepository(db),
		Template:    NewTemplateRepository(db),
		News:        NewNewsRepository(db),
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
