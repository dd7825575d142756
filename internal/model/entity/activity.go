package entity

import "time"

// Activity is one append-only audit record. Exactly one of ProjectID or
// DocumentID is set; rows are never updated or deleted.
type Activity struct {
	ID     string `json:"id" gorm:"primaryKey;size:32"`
	Event  Event  `json:"event" gorm:"not null"`
	Reason string `json:"reason" gorm:"type:text"`

	ProjectID     *string `json:"project_id" gorm:"size:32;index"`
	DocumentID    *string `json:"document_id" gorm:"size:32;index"`
	ProjectFileID *string `json:"project_file_id" gorm:"size:32"`
	UserID        string  `json:"user_id" gorm:"size:32;not null"`

	Date time.Time `json:"date" gorm:"autoCreateTime"`

	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Document    *Document    `json:"document,omitempty" gorm:"foreignKey:DocumentID"`
	ProjectFile *ProjectFile `json:"project_file,omitempty" gorm:"foreignKey:ProjectFileID"`
	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Activity) TableName() string {
	return "project_activities"
}
