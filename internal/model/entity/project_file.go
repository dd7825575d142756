package entity

import "time"

// ProjectFile is an uploaded revision of an engineering drawing. Files for
// the same (project, draw) supersede one another: at most one may be in
// production at any time.
type ProjectFile struct {
	ID       string     `json:"id" gorm:"primaryKey;size:32"`
	Name     string     `json:"name" gorm:"size:64;not null"`
	Draw     string     `json:"draw" gorm:"size:64;not null;index:idx_project_files_draw"`
	Version  string     `json:"version" gorm:"size:2;not null"`
	Comments string     `json:"comments" gorm:"size:256"`
	Status   FileStatus `json:"status" gorm:"not null"`

	FilePath string `json:"file_path" gorm:"size:768;not null"`
	FileName string `json:"file_name" gorm:"size:256;not null"`
	FileSize int64  `json:"file_size"`

	ProjectID    string    `json:"project_id" gorm:"size:32;not null;index:idx_project_files_draw"`
	UploadedByID string    `json:"uploaded_by_id" gorm:"size:32;not null"`
	UploadDate   time.Time `json:"upload_date" gorm:"autoCreateTime"`

	Project    *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	UploadedBy *User    `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
	Groups     []Group  `json:"groups,omitempty" gorm:"many2many:project_file_groups"`
}

func (ProjectFile) TableName() string {
	return "project_files"
}
