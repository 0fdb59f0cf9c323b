package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"petmate/internal/apperr"
	"petmate/internal/backend"
	"petmate/internal/config"
	"petmate/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func resolveWith(t *testing.T, r *Resolver, header string) (Identity, error) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return r.Resolve(context.Background(), req)
}

func TestResolveWithoutToken(t *testing.T) {
	r := NewResolver(config.GatewayAuthConfig{}, nil, nil)

	id, err := resolveWith(t, r, "")
	require.NoError(t, err)
	assert.Empty(t, id.Token)
	assert.Nil(t, id.Company)

	id, err = resolveWith(t, r, "Basic dXNlcjpwYXNz")
	require.NoError(t, err)
	assert.Empty(t, id.Token)
}

func TestResolveCustomClaims(t *testing.T) {
	r := NewResolver(config.GatewayAuthConfig{CompanyClaim: "cid", RoleClaim: "auth"}, nil, nil)
	token := signToken(t, "k", jwt.MapClaims{"userId": 42, "cid": 5, "auth": "OWNER"})

	id, err := resolveWith(t, r, "bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, token, id.Token)
	assert.Equal(t, "42", id.UserID)
	assert.Equal(t, &models.CompanyContext{UserID: "42", CompanyID: 5, Role: "OWNER"}, id.Company)
}

func TestResolveVerifiesWithSecret(t *testing.T) {
	r := NewResolver(config.GatewayAuthConfig{JWTSecret: " s3cret "}, nil, nil)

	good := signToken(t, "s3cret", jwt.MapClaims{"sub": "u1", "companyId": 3})
	id, err := resolveWith(t, r, "Bearer "+good)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.Company.CompanyID)

	_, err = resolveWith(t, r, "Bearer "+signToken(t, "wrong", jwt.MapClaims{"sub": "u1"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = resolveWith(t, r, "Bearer not-a-jwt")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = resolveWith(t, r, "Bearer "+none)
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestResolveSessionFallback(t *testing.T) {
	sessions := new(mockSessions)
	sessions.On("Get", mock.Anything, "u1").Return(&models.Session{UserID: "u1", CompanyID: 11, Role: "MANAGER"}, nil).Once()
	sessions.On("Get", mock.Anything, "u2").Return(nil, errors.New("redis down")).Once()
	r := NewResolver(config.GatewayAuthConfig{}, sessions, nil)

	id, err := resolveWith(t, r, "Bearer "+signToken(t, "k", jwt.MapClaims{"sub": "u1"}))
	require.NoError(t, err)
	assert.Equal(t, int64(11), id.Company.CompanyID)
	assert.Equal(t, "MANAGER", id.Company.Role)

	id, err = resolveWith(t, r, "Bearer "+signToken(t, "k", jwt.MapClaims{"sub": "u2"}))
	require.NoError(t, err, "session failures do not reject the request")
	assert.False(t, id.Company.HasCompany())

	sessions.AssertExpectations(t)
}

func TestIdentityContext(t *testing.T) {
	assert.Equal(t, Identity{}, IdentityFrom(context.Background()))

	id := Identity{Token: "tok", UserID: "u1"}
	ctx := withIdentity(context.Background(), id)
	assert.Equal(t, id, IdentityFrom(ctx))
	assert.Equal(t, "tok", backend.AccessToken(ctx))

	anon := withIdentity(context.Background(), Identity{})
	assert.Empty(t, backend.AccessToken(anon))
}

func TestClaimHelpers(t *testing.T) {
	claims := jwt.MapClaims{"s": " x ", "n": float64(7), "ns": "12", "bad": "abc", "b": true}

	assert.Equal(t, "x", claimString(claims, "s"))
	assert.Equal(t, "7", claimString(claims, "n"))
	assert.Equal(t, "", claimString(claims, "b"))
	assert.Equal(t, "", claimString(claims, "missing"))

	assert.Equal(t, int64(7), claimInt(claims, "n"))
	assert.Equal(t, int64(12), claimInt(claims, "ns"))
	assert.Equal(t, int64(0), claimInt(claims, "bad"))
	assert.Equal(t, int64(0), claimInt(claims, "b"))
}
