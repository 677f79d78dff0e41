// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/app/services"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles registration, login, Google OAuth, and token refresh
type AuthFlow interface {
	Signup(ctx context.Context, request *dto.SignupRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error)
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error)
	GoogleLogin(ctx context.Context, request *dto.GoogleLoginRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error)
	RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error)
	Logout(ctx context.Context, userID uint) error
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.UserSessionRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	googleSvc    services.GoogleOAuthService
	db           *gorm.DB
}

// NewAuthFlow creates a new authentication flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.UserSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	googleSvc services.GoogleOAuthService,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		googleSvc:    googleSvc,
		db:           db,
	}
}

// Signup registers a new email/password user and opens a session
func (af *AuthFlowImpl) Signup(ctx context.Context, request *dto.SignupRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error) {
	var user *models.User

	resp, err := af.withAuthTransaction(ctx, func(ctx context.Context) (*dto.AuthResultDTO, error) {
		existing, err := af.userRepo.ByEmail(ctx, request.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		user = &models.User{
			UUID:         uuid.New(),
			FirstName:    request.FirstName,
			LastName:     request.LastName,
			Email:        request.Email,
			PasswordHash: utils.ToPtr(string(hash)),
			Role:         models.UserRoleUser,
			AuthProvider: models.AuthProviderEmail,
			IsActive:     utils.ToPtr(true),
			CreatedAt:    utils.UTCNow(),
			UpdatedAt:    utils.UTCNow(),
		}
		if err := af.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}

		session, err := af.createSession(ctx, user, metadata)
		if err != nil {
			return nil, err
		}

		return &dto.AuthResultDTO{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Signup failed: %s", err.Error())
		_ = af.logAuthAttempt(ctx, user, models.AuditActionSignupFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("SIGNUP_FAILED", "Signup failed", err)
	}

	msg := fmt.Sprintf("User registered successfully: %d", resp.User.ID)
	_ = af.logAuthAttempt(ctx, user, models.AuditActionSignupCompleted, msg, true, nil, metadata)

	return resp, nil
}

// Login authenticates a user with email and password
func (af *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error) {
	var user *models.User

	resp, err := af.withAuthTransaction(ctx, func(ctx context.Context) (*dto.AuthResultDTO, error) {
		var err error
		user, err = af.userRepo.ByEmail(ctx, request.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		if !utils.IsTrue(user.IsActive) {
			return nil, ErrAccountInactive
		}

		// Google-provisioned accounts carry no password hash
		if user.PasswordHash == nil {
			return nil, ErrPasswordLoginOnly
		}

		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(request.Password)); err != nil {
			return nil, ErrIncorrectPassword
		}

		if err := af.userRepo.UpdateLastLogin(ctx, user.ID, utils.UTCNow()); err != nil {
			return nil, err
		}

		session, err := af.createSession(ctx, user, metadata)
		if err != nil {
			return nil, err
		}

		return &dto.AuthResultDTO{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Login failed: %s", err.Error())
		_ = af.logAuthAttempt(ctx, user, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	msg := fmt.Sprintf("User logged in successfully: %d", resp.User.ID)
	_ = af.logAuthAttempt(ctx, user, models.AuditActionLoginSuccess, msg, true, nil, metadata)

	return resp, nil
}

// GoogleLogin exchanges the OAuth code and signs the user in, provisioning an
// account on first login. An existing email/password account with the same
// address is linked to the Google ID rather than duplicated.
func (af *AuthFlowImpl) GoogleLogin(ctx context.Context, request *dto.GoogleLoginRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error) {
	profile, err := af.googleSvc.ExchangeCode(ctx, request.Code)
	if err != nil {
		errMsg := fmt.Sprintf("Google login failed: %s", err.Error())
		_ = af.logAuthAttempt(ctx, nil, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		if errors.Is(err, services.ErrGoogleCodeInvalid) {
			err = ErrGoogleCodeInvalid
		}
		return nil, NewBusinessError("GOOGLE_LOGIN_FAILED", "Google login failed", err)
	}

	var user *models.User

	resp, err := af.withAuthTransaction(ctx, func(ctx context.Context) (*dto.AuthResultDTO, error) {
		var err error
		user, err = af.userRepo.ByGoogleID(ctx, profile.ID)
		if err != nil {
			return nil, err
		}

		if user == nil {
			// fall back to email match for account linking
			user, err = af.userRepo.ByEmail(ctx, profile.Email)
			if err != nil {
				return nil, err
			}

			if user != nil {
				if err := af.userRepo.UpdateGoogleLink(ctx, user.ID, profile.ID); err != nil {
					return nil, err
				}
				googleID := profile.ID
				user.GoogleID = &googleID
			} else {
				user = &models.User{
					UUID:         uuid.New(),
					FirstName:    profile.GivenName,
					LastName:     profile.FamilyName,
					Email:        profile.Email,
					Role:         models.UserRoleUser,
					AuthProvider: models.AuthProviderGoogle,
					GoogleID:     utils.ToPtr(profile.ID),
					IsActive:     utils.ToPtr(true),
					CreatedAt:    utils.UTCNow(),
					UpdatedAt:    utils.UTCNow(),
				}
				if err := af.userRepo.Save(ctx, user); err != nil {
					return nil, err
				}
			}
		}

		if !utils.IsTrue(user.IsActive) {
			return nil, ErrAccountInactive
		}

		if err := af.userRepo.UpdateLastLogin(ctx, user.ID, utils.UTCNow()); err != nil {
			return nil, err
		}

		session, err := af.createSession(ctx, user, metadata)
		if err != nil {
			return nil, err
		}

		return &dto.AuthResultDTO{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*session),
		}, nil
	})

	if err != nil {
		errMsg := fmt.Sprintf("Google login failed: %s", err.Error())
		_ = af.logAuthAttempt(ctx, user, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("GOOGLE_LOGIN_FAILED", "Google login failed", err)
	}

	msg := fmt.Sprintf("User logged in via Google: %d", resp.User.ID)
	_ = af.logAuthAttempt(ctx, user, models.AuditActionGoogleLogin, msg, true, nil, metadata)

	return resp, nil
}

// RefreshToken rotates a session: the presented refresh token is exchanged
// for a fresh token pair and the old session is expired.
func (af *AuthFlowImpl) RefreshToken(ctx context.Context, request *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error) {
	if request.RefreshToken == "" {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", ErrRefreshTokenNeeded)
	}

	resp, err := af.withAuthTransaction(ctx, func(ctx context.Context) (*dto.AuthResultDTO, error) {
		session, err := af.sessionRepo.ByRefreshToken(ctx, request.RefreshToken)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}

		user, err := af.userRepo.ByID(ctx, session.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		if !utils.IsTrue(user.IsActive) {
			return nil, ErrAccountInactive
		}

		if err := af.sessionRepo.ExpireSession(ctx, session.ID); err != nil {
			return nil, err
		}

		newSession, err := af.createSession(ctx, user, metadata)
		if err != nil {
			return nil, err
		}
		newSession.CorrelationID = session.CorrelationID

		return &dto.AuthResultDTO{
			User:    ToAuthUserDTO(*user),
			Session: ToSessionDTO(*newSession),
		}, nil
	})

	if err != nil {
		return nil, NewBusinessError("REFRESH_FAILED", "Token refresh failed", err)
	}

	return resp, nil
}

// Logout expires every active session of the user
func (af *AuthFlowImpl) Logout(ctx context.Context, userID uint) error {
	if err := af.sessionRepo.ExpireAllUserSessions(ctx, userID); err != nil {
		return NewBusinessError("LOGOUT_FAILED", "Logout failed", err)
	}
	return nil
}

// createSession issues a token pair and persists the session row
func (af *AuthFlowImpl) createSession(ctx context.Context, user *models.User, metadata *ClientMetadata) (*models.UserSession, error) {
	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	session := &models.UserSession{
		CorrelationID:  uuid.New(),
		UserID:         user.ID,
		AccessToken:    accessToken,
		RefreshToken:   &refreshToken,
		IPAddress:      &ipAddress,
		UserAgent:      &userAgent,
		IsActive:       utils.ToPtr(true),
		CreatedAt:      utils.UTCNow(),
		LastAccessedAt: utils.UTCNow(),
		ExpiresAt:      utils.UTCNowAdd(utils.SessionTimeout),
	}

	if err := af.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (af *AuthFlowImpl) logAuthAttempt(ctx context.Context, user *models.User, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	var userID *uint
	if user != nil && user.ID != 0 {
		userID = &user.ID
	}

	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
		CreatedAt:    utils.UTCNow(),
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		if requestIDStr, ok := requestID.(string); ok {
			audit.RequestID = &requestIDStr
		}
	}

	return af.auditRepo.Save(ctx, audit)
}

func (af *AuthFlowImpl) withAuthTransaction(ctx context.Context, fn func(context.Context) (*dto.AuthResultDTO, error)) (*dto.AuthResultDTO, error) {
	var result *dto.AuthResultDTO
	var fnErr error

	err := repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}
