package models_test

import (
	"testing"
	"time"

	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/utils"
	"github.com/stretchr/testify/assert"
)

func TestUserRole(t *testing.T) {
	admin := &models.User{Role: models.UserRoleAdmin}
	assert.True(t, admin.IsAdmin())

	user := &models.User{Role: models.UserRoleUser}
	assert.False(t, user.IsAdmin())
}

func TestUserFullName(t *testing.T) {
	user := &models.User{FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "John Doe", user.FullName())
}

func TestIsValidOfferStatus(t *testing.T) {
	assert.True(t, models.IsValidOfferStatus(models.OfferStatusActive))
	assert.True(t, models.IsValidOfferStatus(models.OfferStatusInactive))
	assert.True(t, models.IsValidOfferStatus(models.OfferStatusExpired))
	assert.False(t, models.IsValidOfferStatus("archived"))
	assert.False(t, models.IsValidOfferStatus(""))
}

func TestIsValidInteractionKind(t *testing.T) {
	assert.True(t, models.IsValidInteractionKind(models.InteractionKindView))
	assert.True(t, models.IsValidInteractionKind(models.InteractionKindApply))
	assert.False(t, models.IsValidInteractionKind("bookmark"))
	assert.False(t, models.IsValidInteractionKind(""))
}

func TestSessionValidity(t *testing.T) {
	active := &models.UserSession{
		IsActive:  utils.ToPtr(true),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.True(t, active.IsValid())
	assert.False(t, active.IsExpired())

	expired := &models.UserSession{
		IsActive:  utils.ToPtr(true),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsValid())

	deactivated := &models.UserSession{
		IsActive:  utils.ToPtr(false),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.False(t, deactivated.IsValid())
}
