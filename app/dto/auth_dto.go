// Package dto contains Data Transfer Objects for API request and response structures
package dto

// SignupRequest represents the request payload for email/password registration
type SignupRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=1,max=100" example:"John"`
	LastName        string `json:"last_name" validate:"required,min=1,max=100" example:"Doe"`
	Email           string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password        string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password" example:"SecurePass123!"`
}

// LoginRequest represents the request payload for email/password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// GoogleLoginRequest carries the authorization code from the OAuth redirect
type GoogleLoginRequest struct {
	Code string `json:"code" validate:"required" example:"4/0AX4XfWh..."`
}

// RefreshTokenRequest represents the request payload for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// AdminLoginRequest requires a solved rotate captcha on top of credentials
type AdminLoginRequest struct {
	Email        string  `json:"email" validate:"required,email,max=255" example:"admin@example.com"`
	Password     string  `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
	ChallengeID  string  `json:"challenge_id" validate:"required,uuid4" example:"550e8400-e29b-41d4-a716-446655440000"`
	CaptchaAngle float64 `json:"captcha_angle" validate:"required" example:"143"`
}

// CaptchaChallengeResponse returns a generated rotate captcha challenge
type CaptchaChallengeResponse struct {
	ChallengeID string `json:"challenge_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	MasterImage string `json:"master_image"`
	ThumbImage  string `json:"thumb_image"`
}

// AuthUserDTO represents user information returned in auth responses
type AuthUserDTO struct {
	ID           uint   `json:"id" example:"123"`
	UUID         string `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Email        string `json:"email" example:"user@example.com"`
	FirstName    string `json:"first_name" example:"John"`
	LastName     string `json:"last_name" example:"Doe"`
	Role         string `json:"role" example:"user"`
	AuthProvider string `json:"auth_provider" example:"email"`
	IsActive     *bool  `json:"is_active" example:"true"`
	CreatedAt    string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// SessionDTO represents issued tokens in auth responses
type SessionDTO struct {
	AccessToken  string  `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken *string `json:"refresh_token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string  `json:"token_type" example:"Bearer"`
	ExpiresIn    int     `json:"expires_in" example:"86400"`
	CreatedAt    string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// AuthResultDTO bundles the user and session returned by auth operations
type AuthResultDTO struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// Common error codes for auth operations
const (
	ErrorUserNotFound       = "USER_NOT_FOUND"
	ErrorIncorrectPassword  = "INCORRECT_PASSWORD"
	ErrorAccountInactive    = "ACCOUNT_INACTIVE"
	ErrorEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	ErrorCaptchaFailed      = "CAPTCHA_FAILED"
	ErrorGoogleCodeInvalid  = "GOOGLE_CODE_INVALID"
	ErrorInvalidToken       = "INVALID_TOKEN"
	ErrorAdminRequired      = "ADMIN_REQUIRED"
	ErrorInternalServer     = "INTERNAL_SERVER_ERROR"
	ErrorValidationFailed   = "VALIDATION_FAILED"
)
