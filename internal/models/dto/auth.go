package dto

// RegisterRequest is the payload for POST /users/register. IsAdmin is not
// accepted here; new accounts are always regular users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	Disabled bool   `json:"disabled"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the successful login body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
