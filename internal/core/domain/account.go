package domain

// Role defines the access level of an account.
type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleBarangay Role = "barangay"
)

// IsValid reports whether the role is one of the defined values.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleBarangay:
		return true
	}
	return false
}

// Account represents a participant in the rewards program.
// Balance is maintained exclusively by the points ledger: it is always the
// sum of all activity-record point deltas for the account since creation and
// is never written directly by anything else.
type Account struct {
	AccountID    string `json:"accountID"` // Primary key (UUID)
	Email        string `json:"email"`     // Unique across all roles
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	Address      string `json:"address"`
	Balance      int64  `json:"balance"` // Points, always >= 0
	PasswordHash string `json:"-"`
	AuditFields
}
