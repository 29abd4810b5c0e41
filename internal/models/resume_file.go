package models

import "time"

// ResumeFile is the stored metadata of an uploaded resume PDF. The bytes
// themselves live in the object store at Path.
type ResumeFile struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FormID string `gorm:"column:form_id;type:uuid;index" json:"form_id"`

	FileName string `gorm:"column:file_name;type:text" json:"file_name"`
	Path     string `gorm:"column:path;type:text" json:"path"`
	FileSize int    `gorm:"column:file_size;type:integer" json:"file_size"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`

	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamptz" json:"uploaded_at"`
}

func (ResumeFile) TableName() string { return "resume_files" }
