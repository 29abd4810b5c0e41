package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	// MaxAIQuestionsCeiling is the hard upper bound on adaptive follow-ups per response.
	MaxAIQuestionsCeiling = 20
	// DefaultMaxAIQuestions is used when a form is created without a value.
	DefaultMaxAIQuestions = 2
)

type Form struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID string `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`

	Name    string `gorm:"column:name;type:text" json:"name"`
	Summary string `gorm:"column:summary;type:text" json:"summary"`

	// Base questions are always asked first, in order, before any AI follow-up.
	BaseQuestions pq.StringArray `gorm:"column:base_questions;type:text[]" json:"baseQuestions"`

	AIEnabled      bool `gorm:"column:ai_enabled" json:"aiEnabled"`
	MaxAIQuestions int  `gorm:"column:max_ai_questions" json:"maxAiQuestions"`

	Public     bool   `gorm:"column:public" json:"public"`
	ShareToken string `gorm:"column:share_token;type:text;uniqueIndex" json:"share_token"`
	Archived   bool   `gorm:"column:archived" json:"archived"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Form) TableName() string { return "forms" }
