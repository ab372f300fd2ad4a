package api

import "time"

// Request DTOs. The `validate` tags cover only the structural (shape) layer;
// field formats and cross-field rules are checked by the accounts service.

type RegisterRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required"`
	ConfirmEmail    string `json:"confirm_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"` // login or email
	Password string `json:"password" validate:"required"`
}

type DeleteAccountRequest struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	IsConfirmed bool   `json:"is_confirmed"`
}

type ResetPasswordRequest struct {
	Username           string `json:"username" validate:"required"`
	Password           string `json:"password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}

type UpdateAccountRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	NewUsername     string `json:"new_username,omitempty"`
	NewEmail        string `json:"new_email,omitempty"`
	ConfirmNewEmail string `json:"confirm_new_email,omitempty"`
}

type AdminResetPasswordRequest struct {
	Username           string `json:"username" validate:"required"` // acting admin
	Password           string `json:"password" validate:"required"`
	Target             string `json:"target" validate:"required"` // target login or email
	NewPassword        string `json:"new_password" validate:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}

type AdminUpdateAccountRequest struct {
	Username        string `json:"username" validate:"required"` // acting admin
	Password        string `json:"password" validate:"required"`
	Target          string `json:"target" validate:"required"`
	NewUsername     string `json:"new_username,omitempty"`
	NewEmail        string `json:"new_email,omitempty"`
	ConfirmNewEmail string `json:"confirm_new_email,omitempty"`
}

type ResendConfirmationRequest struct {
	Email string `json:"email" validate:"required"`
}

// Response DTOs

// MessageResponse is the terminal payload of every non-login operation.
// ConfirmationLink is populated only for the seeded default accounts, which
// are exempt from real mail delivery and receive the link in-band instead.
type MessageResponse struct {
	Message          string `json:"message"`
	ConfirmationLink string `json:"confirmation_link,omitempty"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
}
