package repository

import (
	"context"

	"github.com/matos-01/gestaoDocumentos/internal/model/entity"
	"gorm.io/gorm"
)

// UserRepository reads users, their groups and department mappings.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Preload("Groups").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByUsername finds a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// List returns all active users.
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("username ASC").
		Find(&users).Error
	return users, err
}

// DepartmentName returns the name of the user's department, or
// ErrNotFound when the user has no mapping.
func (r *UserRepository) DepartmentName(ctx context.Context, userID string) (string, error) {
	var mapping entity.UserDepartment
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("user_id = ?", userID).
		First(&mapping).Error
	if err != nil {
		return "", notFound(err)
	}
	if mapping.Department == nil {
		return "", ErrNotFound
	}
	return mapping.Department.Name, nil
}

// GroupIDs returns the IDs of the user's groups.
func (r *UserRepository) GroupIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(user.Groups))
	for _, g := range user.Groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// GroupsByIDs resolves group records from their IDs.
func (r *UserRepository) GroupsByIDs(ctx context.Context, ids []string) ([]entity.Group, error) {
	var groups []entity.Group
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&groups).Error
	return groups, err
}
