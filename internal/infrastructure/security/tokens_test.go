package security_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/internal/infrastructure/security"
)

func testConfig(secret string, expiration time.Duration) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     secret,
			JWTExpiration: expiration,
			Issuer:        "pantrywise-test",
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := security.NewTokenService(testConfig("test-secret", time.Hour))
	userID := uuid.New()

	token, expiresAt, err := svc.Issue(userID, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := security.NewTokenService(testConfig("secret-a", time.Hour))
	verifier := security.NewTokenService(testConfig("secret-b", time.Hour))

	token, _, err := issuer.Issue(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := security.NewTokenService(testConfig("test-secret", -time.Minute))

	token, _, err := svc.Issue(uuid.New(), "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := security.NewTokenService(testConfig("test-secret", time.Hour))

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
