package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptchaServiceRotate(t *testing.T) {
	svc, err := NewCaptchaServiceRotate(time.Minute, 15, 220)
	require.NoError(t, err)

	t.Run("GenerateYieldsCompleteChallenge", func(t *testing.T) {
		challenge, err := svc.GenerateRotate(context.Background())
		require.NoError(t, err)
		require.NotNil(t, challenge)
		assert.NotEmpty(t, challenge.ID)
		assert.NotEmpty(t, challenge.MasterImageBase64)
		assert.NotEmpty(t, challenge.ThumbImageBase64)
	})

	t.Run("VerifyUnknownChallenge", func(t *testing.T) {
		assert.False(t, svc.VerifyRotate(context.Background(), "missing", 90))
	})

	t.Run("ChallengeIsSingleUse", func(t *testing.T) {
		challenge, err := svc.GenerateRotate(context.Background())
		require.NoError(t, err)

		// Consumed on first verification whether or not it matched
		_ = svc.VerifyRotate(context.Background(), challenge.ID, -1)
		assert.False(t, svc.VerifyRotate(context.Background(), challenge.ID, -1))
	})
}
