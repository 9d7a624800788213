package mapping

import (
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/models"
)

// ToModelActivity converts a domain ActivityRecord to a model ActivityRecord
func ToModelActivity(d domain.ActivityRecord) models.ActivityRecord {
	return models.ActivityRecord{
		ActivityID:  d.ActivityID,
		AccountID:   d.AccountID,
		Type:        string(d.Type),
		Title:       d.Title,
		Description: d.Description,
		PointsDelta: d.PointsDelta,
		Category:    d.Category,
		Metadata:    d.Metadata,
		OccurredAt:  d.OccurredAt,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainActivity converts a model ActivityRecord to a domain ActivityRecord
func ToDomainActivity(m models.ActivityRecord) domain.ActivityRecord {
	return domain.ActivityRecord{
		ActivityID:  m.ActivityID,
		AccountID:   m.AccountID,
		Type:        domain.ActivityType(m.Type),
		Title:       m.Title,
		Description: m.Description,
		PointsDelta: m.PointsDelta,
		Category:    m.Category,
		Metadata:    m.Metadata,
		OccurredAt:  m.OccurredAt,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainActivities converts a slice of model records to domain records.
func ToDomainActivities(ms []models.ActivityRecord) []domain.ActivityRecord {
	out := make([]domain.ActivityRecord, len(ms))
	for i, m := range ms {
		out[i] = ToDomainActivity(m)
	}
	return out
}
