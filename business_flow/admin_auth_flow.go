package businessflow

import (
	"context"
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

// AdminAuthFlow handles captcha-gated admin authentication
type AdminAuthFlow interface {
	GetCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error)
	AdminLogin(ctx context.Context, request *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error)
}

// AdminAuthFlowImpl implements the admin authentication flow
type AdminAuthFlowImpl struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.UserSessionRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	captchaSvc   services.CaptchaService
	db           *gorm.DB
}

// NewAdminAuthFlow creates a new admin authentication flow instance
func NewAdminAuthFlow(
	userRepo repository.UserRepository,
	sessionRepo repository.UserSessionRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	captchaSvc services.CaptchaService,
	db *gorm.DB,
) AdminAuthFlow {
	return &AdminAuthFlowImpl{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		captchaSvc:   captchaSvc,
		db:           db,
	}
}

// GetCaptcha generates a rotate captcha challenge for the admin login form
func (af *AdminAuthFlowImpl) GetCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error) {
	challenge, err := af.captchaSvc.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_GENERATION_FAILED", "Captcha generation failed", err)
	}

	return &dto.CaptchaChallengeResponse{
		ChallengeID: challenge.ID,
		MasterImage: challenge.MasterImageBase64,
		ThumbImage:  challenge.ThumbImageBase64,
	}, nil
}

// AdminLogin authenticates an admin. The captcha is verified before any
// credential check so failed solves never leak whether the email exists.
func (af *AdminAuthFlowImpl) AdminLogin(ctx context.Context, request *dto.AdminLoginRequest, metadata *ClientMetadata) (*dto.AuthResultDTO, error) {
	if !af.captchaSvc.VerifyRotate(ctx, request.ChallengeID, request.CaptchaAngle) {
		errMsg := "Admin login failed: captcha verification failed"
		_ = af.logAdminAttempt(ctx, nil, models.AuditActionAdminLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Admin login failed", ErrCaptchaFailed)
	}

	var user *models.User

	resp, err := af.withAdminLoginTransaction(ctx, func(ctx context.Context) (*dto.AuthResultDTO, error) {
		var err error
		user, err = af.userRepo.ByEmail(ctx, request.Email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		if !user.IsAdmin() {
			return nil, ErrNotAdmin
		}
		if !utils.IsTrue(user.IsActive) {
			return nil, ErrAccountInactive
		}
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
		errMsg := fmt.Sprintf("Admin login failed: %s", err.Error())
		_ = af.logAdminAttempt(ctx, user, models.AuditActionAdminLoginFailed, errMsg, false, &errMsg, metadata)
		return nil, NewBusinessError("ADMIN_LOGIN_FAILED", "Admin login failed", err)
	}

	msg := fmt.Sprintf("Admin logged in successfully: %d", resp.User.ID)
	_ = af.logAdminAttempt(ctx, user, models.AuditActionAdminLogin, msg, true, nil, metadata)

	return resp, nil
}

func (af *AdminAuthFlowImpl) createSession(ctx context.Context, user *models.User, metadata *ClientMetadata) (*models.UserSession, error) {
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

func (af *AdminAuthFlowImpl) logAdminAttempt(ctx context.Context, user *models.User, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
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

func (af *AdminAuthFlowImpl) withAdminLoginTransaction(ctx context.Context, fn func(context.Context) (*dto.AuthResultDTO, error)) (*dto.AuthResultDTO, error) {
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
