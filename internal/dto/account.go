package dto

import (
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// RegisterRequest defines the data needed to register a new account.
type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Username string      `json:"username" binding:"required,min=2,max=64"`
	Password string      `json:"password" binding:"required,min=8"`
	Address  string      `json:"address"`
	Role     domain.Role `json:"role" binding:"omitempty,accountrole"` // Only "user" is accepted on the public path
}

// UpdateAccountRequest carries the profile fields an admin may change. Nil
// fields are left untouched. Balance is absent on purpose; only ledger
// operations move it.
type UpdateAccountRequest struct {
	Username *string      `json:"username" binding:"omitempty,min=2,max=64"`
	Address  *string      `json:"address"`
	Role     *domain.Role `json:"role" binding:"omitempty,accountrole"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account minus credentials.
type AccountResponse struct {
	AccountID string      `json:"accountID"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	Address   string      `json:"address"`
	Balance   int64       `json:"balance"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Email:     acc.Email,
		Username:  acc.Username,
		Role:      acc.Role,
		Address:   acc.Address,
		Balance:   acc.Balance,
		CreatedAt: acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
