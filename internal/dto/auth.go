package dto

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}
