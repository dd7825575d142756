package entity

import "time"

// Project is an engineering project folder. Identifier is the 6-digit
// zero-padded code shown to users and used in the storage layout.
type Project struct {
	ID          string        `json:"id" gorm:"primaryKey;size:32"`
	Identifier  string        `json:"identifier" gorm:"size:6;not null;uniqueIndex"`
	Name        string        `json:"name" gorm:"size:64;not null"`
	Description string        `json:"description" gorm:"size:256"`
	Status      ProjectStatus `json:"status" gorm:"not null;default:0"`
	MediaPath   string        `json:"media_path" gorm:"size:768"`
	OriginalPN  string        `json:"original_pn" gorm:"size:64"`
	InternalPN  string        `json:"internal_pn" gorm:"size:64"`

	ResponsibleID string  `json:"responsible_id" gorm:"size:32;not null"`
	TemplateID    *string `json:"template_id" gorm:"size:32"`

	CreationDate time.Time  `json:"creation_date" gorm:"autoCreateTime"`
	StartDate    *time.Time `json:"start_date" gorm:"type:date"`
	EndDate      *time.Time `json:"end_date" gorm:"type:date"`

	Responsible *User            `json:"responsible,omitempty" gorm:"foreignKey:ResponsibleID"`
	Template    *ProjectTemplate `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	Files       []ProjectFile    `json:"files,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}

// FolderName is the project directory name under Projetos/.
func (p *Project) FolderName() string {
	return p.Identifier + " - " + p.Name
}

// ProjectTemplate defines which department folders a new project gets.
type ProjectTemplate struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Name   string `json:"name" gorm:"size:32;not null"`
	Active bool   `json:"active" gorm:"not null;default:true"`

	Folders []TemplateFolder `json:"folders,omitempty" gorm:"many2many:template_folders_map"`
}

func (ProjectTemplate) TableName() string {
	return "project_templates"
}

// TemplateFolder is one directory allocated for a new project.
type TemplateFolder struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Name   string `json:"name" gorm:"size:32;not null"`
	Public bool   `json:"public" gorm:"not null;default:false"`
	Active bool   `json:"active" gorm:"not null;default:true"`
}

func (TemplateFolder) TableName() string {
	return "template_folders"
}

// News is a home-page announcement with a display window.
type News struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Title        string    `json:"title" gorm:"size:128;not null"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	MediaPath    string    `json:"media_path" gorm:"size:768"`
	CreatedByID  string    `json:"created_by_id" gorm:"size:32;not null"`
	CreationDate time.Time `json:"creation_date" gorm:"autoCreateTime"`
	StartDate    time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate      time.Time `json:"end_date" gorm:"type:date;not null"`
	Active       bool      `json:"active" gorm:"not null;default:true"`

	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

func (News) TableName() string {
	return "news"
}
