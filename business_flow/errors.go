// Package businessflow contains the business logic for the platform.
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPasswordLoginOnly  = errors.New("account has no password; use google login")
	ErrNotAdmin           = errors.New("admin role required")

	// Captcha / OAuth errors
	ErrCaptchaFailed      = errors.New("captcha verification failed")
	ErrGoogleCodeInvalid  = errors.New("google authorization code rejected")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrRefreshTokenNeeded = errors.New("refresh token is required")

	// Offer-related errors
	ErrOfferNotFound       = errors.New("offer not found")
	ErrInvalidOfferStatus  = errors.New("invalid offer status")
	ErrOfferUpdateRequired = errors.New("at least one field must be provided for update")

	// Interaction-related errors
	ErrInvalidInteractionKind = errors.New("invalid interaction kind")

	// Image-related errors
	ErrImageNotFound    = errors.New("image not found")
	ErrImageTooLarge    = errors.New("image exceeds the maximum allowed size")
	ErrUnsupportedImage = errors.New("unsupported image type")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsPasswordLoginOnly(err error) bool {
	return errors.Is(err, ErrPasswordLoginOnly)
}

func IsNotAdmin(err error) bool {
	return errors.Is(err, ErrNotAdmin)
}

func IsCaptchaFailed(err error) bool {
	return errors.Is(err, ErrCaptchaFailed)
}

func IsGoogleCodeInvalid(err error) bool {
	return errors.Is(err, ErrGoogleCodeInvalid)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsOfferNotFound(err error) bool {
	return errors.Is(err, ErrOfferNotFound)
}

func IsInvalidOfferStatus(err error) bool {
	return errors.Is(err, ErrInvalidOfferStatus)
}

func IsOfferUpdateRequired(err error) bool {
	return errors.Is(err, ErrOfferUpdateRequired)
}

func IsInvalidInteractionKind(err error) bool {
	return errors.Is(err, ErrInvalidInteractionKind)
}

func IsImageNotFound(err error) bool {
	return errors.Is(err, ErrImageNotFound)
}

func IsImageTooLarge(err error) bool {
	return errors.Is(err, ErrImageTooLarge)
}

func IsUnsupportedImage(err error) bool {
	return errors.Is(err, ErrUnsupportedImage)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
