package models

// Account represents an account row as persisted.
type Account struct {
	AccountID    string `db:"account_id"`
	Email        string `db:"email"`
	Username     string `db:"username"`
	Role         string `db:"role"`
	Address      string `db:"address"`
	Balance      int64  `db:"balance"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}
