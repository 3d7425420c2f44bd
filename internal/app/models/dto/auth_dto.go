package dto

// LoginRequest is the payload for authenticating a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"maria@edutech.cl"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	TokenType   string        `json:"tokenType" example:"Bearer"`
	ExpiresIn   int           `json:"expiresIn" example:"3600"`
	User        *UserResponse `json:"user,omitempty"`
}
