package dto

// SignupRequest: payload for the first phase of credential issuance.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150"`
}

// SignupResponse echoes the accepted pair; the code itself only travels by
// email.
type SignupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for exchanging a confirmation code for a bearer token.
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
