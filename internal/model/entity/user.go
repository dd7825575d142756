package entity

import "time"

// User is a login account; authentication itself lives in the middleware.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Username  string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	FirstName string    `json:"first_name" gorm:"size:64"`
	LastName  string    `json:"last_name" gorm:"size:64"`
	Email     string    `json:"email" gorm:"size:128"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Groups []Group `json:"groups,omitempty" gorm:"many2many:user_groups"`
}

func (User) TableName() string {
	return "users"
}

// Group controls visibility of project files and document categories.
type Group struct {
	ID   string `json:"id" gorm:"primaryKey;size:32"`
	Name string `json:"name" gorm:"size:64;not null;uniqueIndex"`
}

func (Group) TableName() string {
	return "groups"
}

// Department is an organizational unit; it segments the upload tree.
type Department struct {
	ID   string `json:"id" gorm:"primaryKey;size:32"`
	Name string `json:"name" gorm:"size:128;not null;uniqueIndex"`
}

func (Department) TableName() string {
	return "departments"
}

// UserDepartment maps a user to their single department.
type UserDepartment struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	UserID       string `json:"user_id" gorm:"size:32;not null;uniqueIndex"`
	DepartmentID string `json:"department_id" gorm:"size:32;not null"`

	User       *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (UserDepartment) TableName() string {
	return "user_departments"
}
