package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saricycle/saricycle_backend/internal/apperrors"
	"github.com/saricycle/saricycle_backend/internal/core/domain"
	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// ActivityService exposes the append-only activity log.
type ActivityService struct {
	activityRepo portsrepo.ActivityRepositoryFacade
}

func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

var _ portssvc.ActivitySvcFacade = (*ActivityService)(nil)

// AppendInformational appends a zero-delta record. Anything that moves points
// must go through the ledger instead, so a non-zero delta never enters here.
func (s *ActivityService) AppendInformational(ctx context.Context, accountID string, descriptor domain.ActivityDescriptor) (*domain.ActivityRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !descriptor.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown activity type %q", apperrors.ErrValidation, descriptor.Type)
	}

	now := time.Now()
	occurredAt := descriptor.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	record := domain.ActivityRecord{
		ActivityID:  uuid.NewString(),
		AccountID:   accountID,
		Type:        descriptor.Type,
		Title:       descriptor.Title,
		Description: descriptor.Description,
		PointsDelta: 0,
		Category:    descriptor.Category,
		Metadata:    descriptor.Metadata,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}

	if err := s.activityRepo.AppendActivity(ctx, record); err != nil {
		logger.Error("failed to append activity", "accountID", accountID, "type", descriptor.Type, "error", err)
		return nil, err
	}
	return &record, nil
}

// ListActivities returns one page of the account's log, newest first.
func (s *ActivityService) ListActivities(ctx context.Context, accountID string, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error) {
	records, nextToken, err := s.activityRepo.ListActivitiesByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListActivitiesResponse{
		Activities: dto.ToActivityResponses(records),
		NextToken:  nextToken,
	}, nil
}
