package domain

import (
	"strings"
	"time"
)

// ActivityType classifies a point-affecting event.
type ActivityType string

const (
	ActivityRecycling    ActivityType = "recycling"
	ActivityRedemption   ActivityType = "redemption"
	ActivityLearning     ActivityType = "learning"
	ActivityBonus        ActivityType = "bonus"
	ActivityRegistration ActivityType = "registration"
)

// IsValid reports whether the type is one of the five defined kinds.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityRecycling, ActivityRedemption, ActivityLearning, ActivityBonus, ActivityRegistration:
		return true
	}
	return false
}

// recyclingTemplates describe the standard recycling activities per material
// kind. Drop-off points report the material; the title, description and
// category come from here.
var recyclingTemplates = map[string]ActivityDescriptor{
	"plastic": {
		Type:        ActivityRecycling,
		Title:       "Plastic bottles recycled",
		Description: "Successfully recycled plastic bottles",
		Category:    "Plastic",
	},
	"paper": {
		Type:        ActivityRecycling,
		Title:       "Paper recycled",
		Description: "Successfully recycled paper materials",
		Category:    "Paper",
	},
	"glass": {
		Type:        ActivityRecycling,
		Title:       "Glass bottles recycled",
		Description: "Successfully recycled glass containers",
		Category:    "Glass",
	},
	"metal": {
		Type:        ActivityRecycling,
		Title:       "Metal cans recycled",
		Description: "Successfully recycled metal containers",
		Category:    "Metal",
	},
}

// RecyclingTemplate returns the standard descriptor for a material kind
// (plastic, paper, glass or metal). The second return is false for an
// unknown material.
func RecyclingTemplate(material string) (ActivityDescriptor, bool) {
	d, ok := recyclingTemplates[strings.ToLower(material)]
	return d, ok
}

// ActivityRecord is one immutable entry in an account's activity log.
// PointsDelta is signed: positive for credits, negative for debits, zero for
// informational entries such as the registration welcome.
//
// OccurredAt is the caller-supplied logical timestamp and may be backdated;
// CreatedAt is observed at persistence time and is the only ordering the
// ledger uses when applying balance changes.
type ActivityRecord struct {
	ActivityID  string            `json:"activityID"` // Primary key (UUID)
	AccountID   string            `json:"accountID"`
	Type        ActivityType      `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	PointsDelta int64             `json:"pointsDelta"`
	Category    string            `json:"category,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ActivityDescriptor carries the log-entry fields a ledger operation attaches
// to the record it appends. The point delta is supplied by the ledger itself.
type ActivityDescriptor struct {
	ActivityID  string // Optional; a fresh UUID is generated when empty
	Type        ActivityType
	Title       string
	Description string
	Category    string
	Metadata    map[string]string
	OccurredAt  time.Time // Zero means "now"
}
