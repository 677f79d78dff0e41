// Package testing provides test utilities and database setup for testing the offer platform
package testing

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"time"

	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a regular user with a bcrypt password
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hashedPassword)

	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)

	user := &models.User{
		UUID:         uuid.New(),
		FirstName:    "John",
		LastName:     "Doe",
		Email:        fmt.Sprintf("john.doe.%s@example.com", randomDigits),
		PasswordHash: &passwordHash,
		Role:         models.UserRoleUser,
		AuthProvider: models.AuthProviderEmail,
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestAdmin creates a user carrying the admin role
func (tf *TestFixtures) CreateTestAdmin() (*models.User, error) {
	user, err := tf.CreateTestUser()
	if err != nil {
		return nil, err
	}

	user.Role = models.UserRoleAdmin
	if err := tf.DB.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to promote test admin: %w", err)
	}

	return user, nil
}

// CreateTestGoogleUser creates a user provisioned through Google sign-in (no password)
func (tf *TestFixtures) CreateTestGoogleUser() (*models.User, error) {
	randomDigits := fmt.Sprintf("%09d", rand.Intn(900000000)+100000000)
	googleID := fmt.Sprintf("google-sub-%s", randomDigits)

	user := &models.User{
		UUID:         uuid.New(),
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        fmt.Sprintf("jane.doe.%s@example.com", randomDigits),
		Role:         models.UserRoleUser,
		AuthProvider: models.AuthProviderGoogle,
		GoogleID:     &googleID,
		IsActive:     utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test google user: %w", err)
	}

	return user, nil
}

// CreateTestOffer creates an active offer with the given bonus amount
func (tf *TestFixtures) CreateTestOffer(bonusAmount float64) (*models.Offer, error) {
	randomDigits := rand.Intn(10000000)

	offer := &models.Offer{
		UUID:           uuid.New(),
		Title:          fmt.Sprintf("Test Checking Bonus %d", randomDigits),
		Description:    "Open a checking account and receive a signup bonus",
		BankName:       "Test Bank",
		BonusAmount:    bonusAmount,
		Requirements:   "Direct deposit of $500 within 90 days",
		ApplicationURL: "https://bank.example.com/apply",
		Status:         models.OfferStatusActive,
	}

	if err := tf.DB.DB.Create(offer).Error; err != nil {
		return nil, fmt.Errorf("failed to create test offer: %w", err)
	}

	return offer, nil
}

// CreateTestInteraction appends an interaction row directly, bypassing the flow
func (tf *TestFixtures) CreateTestInteraction(offerID, userID uint, kind string) (*models.OfferInteraction, error) {
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	interaction := &models.OfferInteraction{
		UUID:      uuid.New(),
		OfferID:   offerID,
		UserID:    userID,
		Kind:      kind,
		IPAddress: &ipAddress,
		UserAgent: &userAgent,
	}

	if err := tf.DB.DB.Create(interaction).Error; err != nil {
		return nil, fmt.Errorf("failed to create test interaction: %w", err)
	}

	return interaction, nil
}

func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// CreateTestSession creates a test user session
func (tf *TestFixtures) CreateTestSession(userID uint) (*models.UserSession, error) {
	accessToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure access token: %w", err)
	}

	refreshToken, err := GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate secure refresh token: %w", err)
	}

	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	session := &models.UserSession{
		CorrelationID: uuid.New(),
		UserID:        userID,
		AccessToken:   accessToken,
		RefreshToken:  &refreshToken,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      utils.ToPtr(true),
		IPAddress:     &ipAddress,
		UserAgent:     &userAgent,
	}

	if err := tf.DB.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}

	return session, nil
}

// CreateTestAuditLog creates a test audit log entry
func (tf *TestFixtures) CreateTestAuditLog(userID *uint, action string, success bool) (*models.AuditLog, error) {
	description := fmt.Sprintf("Test %s action", action)
	ipAddress := "127.0.0.1"
	userAgent := "Test User Agent"

	audit := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		Description: &description,
		Success:     &success,
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	if !success {
		errorMessage := "Test failed action"
		audit.ErrorMessage = &errorMessage
	}

	if err := tf.DB.DB.Create(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create test audit log: %w", err)
	}

	return audit, nil
}
