package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// InsightType identifies the kind of generated insight.
type InsightType string

const (
	InsightSessionSummary      InsightType = "session_summary"
	InsightProvocativeQuestion InsightType = "provocative_questions"
	InsightRenewalPlan         InsightType = "renewal_plan"
	InsightObservedPain        InsightType = "observed_pain"
)

// Insight is a persisted generation result, written once per generation and
// kept for audit/history. The pipeline never reads insights back before
// generating a new one.
type Insight struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	MenteeID    uuid.UUID       `db:"mentee_id" json:"menteeId"`
	InsightType InsightType     `db:"insight_type" json:"insightType"`
	Content     json.RawMessage `db:"content" json:"content"`
	GeneratedAt time.Time       `db:"generated_at" json:"generatedAt"`
}
