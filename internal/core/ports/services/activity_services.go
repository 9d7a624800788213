package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
	"github.com/saricycle/saricycle_backend/internal/dto"
)

// ActivitySvcFacade exposes the append-only activity log.
type ActivitySvcFacade interface {
	// AppendInformational appends a zero-delta record (e.g. the registration
	// welcome entry). Point-affecting records are appended by the ledger as
	// part of credit/debit and never through this method.
	AppendInformational(ctx context.Context, accountID string, descriptor domain.ActivityDescriptor) (*domain.ActivityRecord, error)

	// ListActivities returns the account's records newest first, with
	// token-based pagination.
	ListActivities(ctx context.Context, accountID string, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error)
}
