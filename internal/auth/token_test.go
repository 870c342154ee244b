package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/auth"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/config"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
)

var jwtCfg = config.JWTConfig{Secret: "test-secret", Issuer: "navodita"}

func TestVerify_ValidToken(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()
	token, err := auth.Sign(jwtCfg, tenantID, userID, domain.RoleAdmin, time.Minute)
	require.NoError(t, err)

	claims, err := auth.NewVerifier(jwtCfg).Verify(token)

	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	token, err := auth.Sign(jwtCfg, uuid.New(), uuid.New(), domain.RoleMember, -time.Minute)
	require.NoError(t, err)

	_, err = auth.NewVerifier(jwtCfg).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := auth.Sign(config.JWTConfig{Secret: "other", Issuer: "navodita"}, uuid.New(), uuid.New(), domain.RoleMember, time.Minute)
	require.NoError(t, err)

	_, err = auth.NewVerifier(jwtCfg).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_WrongIssuer(t *testing.T) {
	token, err := auth.Sign(config.JWTConfig{Secret: jwtCfg.Secret, Issuer: "someone-else"}, uuid.New(), uuid.New(), domain.RoleMember, time.Minute)
	require.NoError(t, err)

	_, err = auth.NewVerifier(jwtCfg).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_RejectsOtherAudience(t *testing.T) {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtCfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
		TenantID: uuid.New(),
		UserID:   uuid.New(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtCfg.Secret))
	require.NoError(t, err)

	_, err = auth.NewVerifier(jwtCfg).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_RejectsMissingTenant(t *testing.T) {
	token, err := auth.Sign(jwtCfg, uuid.Nil, uuid.New(), domain.RoleMember, time.Minute)
	require.NoError(t, err)

	_, err = auth.NewVerifier(jwtCfg).Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := auth.NewVerifier(jwtCfg).Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
