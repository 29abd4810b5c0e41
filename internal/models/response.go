package models

import (
	"time"

	"gorm.io/datatypes"
)

// QA is a single question/answer pair. ConversationHistory is the ordered
// slice of these: base-question answers first (in form order), then AI
// follow-up pairs in generation order. Append-only within one session.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SummaryStatus records how the persisted summary came to be, so a failed
// generation is an inspectable state rather than an implicit null.
const (
	SummaryGenerated = "generated"
	SummaryFallback  = "fallback"
	SummaryFailed    = "failed"
)

type Response struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FormID string `gorm:"column:form_id;type:uuid;index" json:"form_id"`

	Answers       datatypes.JSON `gorm:"column:answers;type:jsonb" json:"answers"`
	ResumeProfile datatypes.JSON `gorm:"column:resume_profile;type:jsonb" json:"resumeProfile"`

	Summary       datatypes.JSON `gorm:"column:summary;type:jsonb" json:"summary"`
	SummaryStatus string         `gorm:"column:summary_status;type:text" json:"summary_status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Response) TableName() string { return "responses" }
