package services

import (
	"context"

	"github.com/saricycle/saricycle_backend/internal/dto"
)

// AuthSvcFacade issues access tokens for authenticated accounts.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
