package dto

// SignUpRequest describes the payload for registering a new account.
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required,min=2"`
	Department  string `json:"department" validate:"omitempty,max=128"`
	Language    string `json:"language" validate:"omitempty,oneof=en ar"`
}

// SignInRequest describes the payload for password sign-in.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and the authenticated profile.
type AuthResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}
