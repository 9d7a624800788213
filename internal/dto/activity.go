package dto

import (
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// ListActivitiesParams defines query parameters for listing activities.
type ListActivitiesParams struct {
	Limit     int     `form:"limit,default=10"`
	NextToken *string `form:"nextToken"`
}

// ActivityResponse defines the data returned for one activity record.
type ActivityResponse struct {
	ActivityID  string              `json:"activityID"`
	AccountID   string              `json:"accountID"`
	Type        domain.ActivityType `json:"type"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	PointsDelta int64               `json:"pointsDelta"`
	Category    string              `json:"category,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty"`
	OccurredAt  time.Time           `json:"occurredAt"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ListActivitiesResponse wraps a page of activity records.
type ListActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
	NextToken  *string            `json:"nextToken,omitempty"`
}

// ToActivityResponse converts a domain.ActivityRecord to its response DTO
func ToActivityResponse(rec *domain.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		ActivityID:  rec.ActivityID,
		AccountID:   rec.AccountID,
		Type:        rec.Type,
		Title:       rec.Title,
		Description: rec.Description,
		PointsDelta: rec.PointsDelta,
		Category:    rec.Category,
		Metadata:    rec.Metadata,
		OccurredAt:  rec.OccurredAt,
		CreatedAt:   rec.CreatedAt,
	}
}

// ToActivityResponses converts a slice of domain records to response DTOs
func ToActivityResponses(records []domain.ActivityRecord) []ActivityResponse {
	res := make([]ActivityResponse, len(records))
	for i := range records {
		res[i] = ToActivityResponse(&records[i])
	}
	return res
}
