package dto

import (
	"time"

	"github.com/saricycle/saricycle_backend/internal/core/domain"
)

// CreditRequest defines the data for crediting points to an account. When
// Material names a recycling material, the standard template supplies type,
// title, description and category; otherwise those are caller-provided.
type CreditRequest struct {
	AccountID   string              `json:"accountID" binding:"required"`
	Amount      int64               `json:"amount" binding:"required,gt=0"`
	Material    string              `json:"material" binding:"omitempty,oneof=plastic paper glass metal"`
	Type        domain.ActivityType `json:"type" binding:"required_without=Material,omitempty,earnabletype"`
	Title       string              `json:"title" binding:"required_without=Material"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Metadata    map[string]string   `json:"metadata"`
}

// DebitRequest defines the data for debiting points from an account.
type DebitRequest struct {
	AccountID   string            `json:"accountID" binding:"required"`
	Amount      int64             `json:"amount" binding:"required,gt=0"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Metadata    map[string]string `json:"metadata"`
}

// BalanceResponse reports an account's current balance.
type BalanceResponse struct {
	AccountID string `json:"accountID"`
	Balance   int64  `json:"balance"`
}

// ReconciliationReport is the result of auditing an account's balance
// against its activity-log sum.
type ReconciliationReport struct {
	AccountID     string    `json:"accountID"`
	StoredBalance int64     `json:"storedBalance"`
	LedgerSum     int64     `json:"ledgerSum"`
	Consistent    bool      `json:"consistent"`
	CheckedAt     time.Time `json:"checkedAt"`
}
