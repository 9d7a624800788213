package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	portssvc "github.com/saricycle/saricycle_backend/internal/core/ports/services"
	"github.com/saricycle/saricycle_backend/internal/dto"
	"github.com/saricycle/saricycle_backend/internal/middleware"
)

// AuthService issues signed JWTs for authenticated accounts.
type AuthService struct {
	accountSvc portssvc.AccountSvcFacade
	secret     string
	expiry     time.Duration
	issuer     string
}

func NewAuthService(accountSvc portssvc.AccountSvcFacade, secret string, expiry time.Duration, issuer string) *AuthService {
	return &AuthService{
		accountSvc: accountSvc,
		secret:     secret,
		expiry:     expiry,
		issuer:     issuer,
	}
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// Login verifies credentials and returns a bearer token plus the account.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountSvc.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", "email", req.Email)
		return nil, err
	}

	now := time.Now()
	claims := middleware.Claims{
		Role: string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.AccountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("login succeeded", "accountID", account.AccountID)
	return &dto.LoginResponse{
		Token:   signed,
		Account: dto.ToAccountResponse(account),
	}, nil
}
