package middleware

import "context"

// accountIDKey is the key used to store the authenticated account's ID in the
// request context.
const accountIDKey = contextKey("accountID")

// roleKey is the key used to store the authenticated account's role.
const roleKey = contextKey("role")

// GetAccountIDFromCtx retrieves the authenticated account ID from the context.
// It returns the ID and a boolean indicating if it was found.
func GetAccountIDFromCtx(ctx context.Context) (string, bool) {
	v := ctx.Value(accountIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// GetRoleFromCtx retrieves the authenticated account's role from the context.
func GetRoleFromCtx(ctx context.Context) (string, bool) {
	v := ctx.Value(roleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
