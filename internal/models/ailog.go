package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AILog kinds, one per external generation call site.
const (
	AILogFollowup      = "followup"
	AILogSummary       = "summary"
	AILogResumeProfile = "resume_profile"
)

// AILog is an audit record of a single call to the text-generation provider.
// Stored in Mongo with a TTL index on ExpiresAt.
type AILog struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	FormID string `bson:"form_id" json:"form_id"`
	Mode   string `bson:"mode" json:"mode"` // owner|public
	Kind   string `bson:"kind" json:"kind"` // followup|summary|resume_profile

	Status      string `bson:"status" json:"status"` // ok|fallback|error
	PromptChars int    `bson:"prompt_chars" json:"prompt_chars"`
	OutputChars int    `bson:"output_chars" json:"output_chars"`
	LatencyMS   int64  `bson:"latency_ms" json:"latency_ms"`
	Error       string `bson:"error,omitempty" json:"error,omitempty"`

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // for TTL index
}
