package entity

import "time"

// Document is a controlled document, independent of any project. It carries
// a pointer to its most recent activity for fast "waiting since" lookups.
type Document struct {
	ID       string         `json:"id" gorm:"primaryKey;size:32"`
	Code     string         `json:"code" gorm:"size:64;not null;index"`
	Name     string         `json:"name" gorm:"size:64;not null"`
	Version  string         `json:"version" gorm:"size:2;not null"`
	Comments string         `json:"comments" gorm:"size:256"`
	Status   DocumentStatus `json:"status" gorm:"not null"`

	FilePath string `json:"file_path" gorm:"size:768"`
	FileName string `json:"file_name" gorm:"size:256"`
	FileSize int64  `json:"file_size"`

	SubcategoryID  *string    `json:"subcategory_id" gorm:"size:32"`
	UploadedByID   string     `json:"uploaded_by_id" gorm:"size:32;not null"`
	ApproverID     *string    `json:"approver_id" gorm:"size:32"`
	LastActivityID *string    `json:"last_activity_id" gorm:"size:32"`
	UploadDate     time.Time  `json:"upload_date" gorm:"autoCreateTime"`
	ExpirationDate *time.Time `json:"expiration_date" gorm:"type:date"`

	Subcategory  *DocumentSubcategory `json:"subcategory,omitempty" gorm:"foreignKey:SubcategoryID"`
	UploadedBy   *User                `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
	Approver     *User                `json:"approver,omitempty" gorm:"foreignKey:ApproverID"`
	LastActivity *Activity            `json:"last_activity,omitempty" gorm:"foreignKey:LastActivityID"`
}

func (Document) TableName() string {
	return "documents"
}

// Perpetual reports whether the document never expires.
func (d *Document) Perpetual() bool {
	return d.ExpirationDate == nil
}

// DocumentCategory is a top-level grouping, gated by visibility groups.
type DocumentCategory struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Name   string `json:"name" gorm:"size:64;not null"`
	Active bool   `json:"active" gorm:"not null;default:true"`

	Groups        []Group               `json:"groups,omitempty" gorm:"many2many:document_category_groups"`
	Subcategories []DocumentSubcategory `json:"subcategories,omitempty" gorm:"foreignKey:CategoryID"`
}

func (DocumentCategory) TableName() string {
	return "document_categories"
}

// DocumentSubcategory is the unit documents attach to.
type DocumentSubcategory struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	Name       string `json:"name" gorm:"size:64;not null"`
	Active     bool   `json:"active" gorm:"not null;default:true"`
	CategoryID string `json:"category_id" gorm:"size:32;not null"`

	Category *DocumentCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (DocumentSubcategory) TableName() string {
	return "document_subcategories"
}

// UserCategory grants a user access to a category; editors may upload.
type UserCategory struct {
	ID         string `json:"id" gorm:"primaryKey;size:32"`
	UserID     string `json:"user_id" gorm:"size:32;not null;index"`
	CategoryID string `json:"category_id" gorm:"size:32;not null"`
	Editor     bool   `json:"editor" gorm:"not null;default:false"`

	User     *User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Category *DocumentCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (UserCategory) TableName() string {
	return "user_categories"
}
