package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/app/services"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/churnbase/churnbase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthFlow(t *testing.T, testDB *testingutil.TestDB) (businessflow.AuthFlow, repository.UserRepository, repository.UserSessionRepository, repository.AuditLogRepository) {
	t.Helper()

	userRepo := repository.NewUserRepository(testDB.DB)
	sessionRepo := repository.NewUserSessionRepository(testDB.DB)
	auditRepo := repository.NewAuditLogRepository(testDB.DB)

	tokenService, err := services.NewTokenService(
		15*time.Minute,
		7*24*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"test-secret-key-for-jwt-signing-32-chars",
	)
	require.NoError(t, err)

	// GoogleLogin is not exercised here; the client is never called
	googleSvc := services.NewGoogleOAuthService("", "", "", 5*time.Second)

	authFlow := businessflow.NewAuthFlow(userRepo, sessionRepo, auditRepo, tokenService, googleSvc, testDB.DB)
	return authFlow, userRepo, sessionRepo, auditRepo
}

func TestSignup(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		authFlow, userRepo, _, auditRepo := newTestAuthFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("SuccessfulSignup", func(t *testing.T) {
			req := &dto.SignupRequest{
				FirstName:       "John",
				LastName:        "Doe",
				Email:           "john.doe@example.com",
				Password:        "SecurePass123!",
				ConfirmPassword: "SecurePass123!",
			}

			result, err := authFlow.Signup(context.Background(), req, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "john.doe@example.com", result.User.Email)
			assert.Equal(t, models.UserRoleUser, result.User.Role)
			assert.NotEmpty(t, result.Session.AccessToken)
			assert.NotNil(t, result.Session.RefreshToken)

			// User row persisted with a hashed password
			user, err := userRepo.ByEmail(context.Background(), "john.doe@example.com")
			require.NoError(t, err)
			require.NotNil(t, user)
			require.NotNil(t, user.PasswordHash)
			assert.NotEqual(t, "SecurePass123!", *user.PasswordHash)
			assert.Equal(t, models.AuthProviderEmail, user.AuthProvider)
			assert.True(t, utils.IsTrue(user.IsActive))

			// Audit trail
			logs, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				UserID: &user.ID,
				Action: utils.ToPtr(models.AuditActionSignupCompleted),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, logs, 1)
			assert.True(t, utils.IsTrue(logs[0].Success))
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			req := &dto.SignupRequest{
				FirstName:       "John",
				LastName:        "Doe",
				Email:           "john.doe@example.com",
				Password:        "SecurePass123!",
				ConfirmPassword: "SecurePass123!",
			}

			_, err := authFlow.Signup(context.Background(), req, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		authFlow, userRepo, _, _ := newTestAuthFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("SuccessfulLogin", func(t *testing.T) {
			result, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    user.Email,
				Password: "TestPass123!",
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, user.Email, result.User.Email)
			assert.NotEmpty(t, result.Session.AccessToken)

			stored, err := userRepo.ByEmail(context.Background(), user.Email)
			require.NoError(t, err)
			assert.NotNil(t, stored.LastLoginAt)
		})

		t.Run("IncorrectPassword", func(t *testing.T) {
			_, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    user.Email,
				Password: "WrongPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("UnknownEmail", func(t *testing.T) {
			_, err := authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("GoogleOnlyAccount", func(t *testing.T) {
			googleUser, err := fixtures.CreateTestGoogleUser()
			require.NoError(t, err)

			_, err = authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    googleUser.Email,
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsPasswordLoginOnly(err))
		})

		t.Run("InactiveAccount", func(t *testing.T) {
			inactive, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			err = testDB.DB.Model(&models.User{}).
				Where("id = ?", inactive.ID).
				Update("is_active", false).Error
			require.NoError(t, err)

			_, err = authFlow.Login(context.Background(), &dto.LoginRequest{
				Email:    inactive.Email,
				Password: "TestPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountInactive(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRefreshAndLogout(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		authFlow, _, sessionRepo, _ := newTestAuthFlow(t, testDB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		login, err := authFlow.Login(context.Background(), &dto.LoginRequest{
			Email:    user.Email,
			Password: "TestPass123!",
		}, metadata)
		require.NoError(t, err)
		require.NotNil(t, login.Session.RefreshToken)

		t.Run("RefreshIssuesNewSession", func(t *testing.T) {
			result, err := authFlow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
				RefreshToken: *login.Session.RefreshToken,
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotEmpty(t, result.Session.AccessToken)
			assert.NotEqual(t, login.Session.AccessToken, result.Session.AccessToken)
		})

		t.Run("RefreshWithUnknownToken", func(t *testing.T) {
			_, err := authFlow.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
				RefreshToken: "not-a-real-refresh-token",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsSessionNotFound(err))
		})

		t.Run("LogoutExpiresAllSessions", func(t *testing.T) {
			require.NoError(t, authFlow.Logout(context.Background(), user.ID))

			sessions, err := sessionRepo.ByFilter(context.Background(), models.UserSessionFilter{
				UserID:   &user.ID,
				IsActive: utils.ToPtr(true),
			}, "", 0, 0)
			require.NoError(t, err)
			assert.Empty(t, sessions)
		})

		return nil
	})
	require.NoError(t, err)
}
