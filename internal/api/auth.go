package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petmate/internal/apperr"
	"petmate/internal/backend"
	"petmate/internal/config"
	"petmate/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	msgInvalidToken = "인증이 만료되었습니다. 다시 로그인해주세요."
)

// Identity is who is calling and for which company.
type Identity struct {
	Token   string
	UserID  string
	Company *models.CompanyContext
}

type sessionLookup interface {
	Get(ctx context.Context, userID string) (*models.Session, error)
}

// Resolver reads the caller's identity from the bearer token. The company
// id comes from the token claim, falling back to the session store.
type Resolver struct {
	secret       []byte
	companyClaim string
	roleClaim    string
	sessions     sessionLookup
	logger       *zerolog.Logger
}

func NewResolver(cfg config.GatewayAuthConfig, sessions sessionLookup, logger *zerolog.Logger) *Resolver {
	companyClaim := cfg.CompanyClaim
	if companyClaim == "" {
		companyClaim = "companyId"
	}
	roleClaim := cfg.RoleClaim
	if roleClaim == "" {
		roleClaim = "role"
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Resolver{
		secret:       []byte(strings.TrimSpace(cfg.JWTSecret)),
		companyClaim: companyClaim,
		roleClaim:    roleClaim,
		sessions:     sessions,
		logger:       logger,
	}
}

// Resolve never fails for a missing token; the backend decides what an
// anonymous caller may see. A token that fails verification is rejected.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (Identity, error) {
	token := bearerToken(req)
	if token == "" {
		return Identity{}, nil
	}

	id := Identity{Token: token, Company: &models.CompanyContext{}}
	claims, err := r.parse(token)
	if err != nil {
		if len(r.secret) > 0 {
			return Identity{}, apperr.Wrap(apperr.KindUnauthorized, msgInvalidToken, err)
		}
		// Opaque tokens are forwarded as is.
		r.logger.Debug().Err(err).Msg("bearer token is not a readable jwt")
		return id, nil
	}

	id.UserID = claimString(claims, "sub")
	if id.UserID == "" {
		id.UserID = claimString(claims, "userId")
	}
	id.Company.UserID = id.UserID
	id.Company.CompanyID = claimInt(claims, r.companyClaim)
	id.Company.Role = claimString(claims, r.roleClaim)

	if id.Company.CompanyID == 0 && id.UserID != "" && r.sessions != nil {
		session, err := r.sessions.Get(ctx, id.UserID)
		if err != nil {
			r.logger.Warn().Err(err).Str("user_id", id.UserID).Msg("session lookup failed")
		} else if session != nil {
			id.Company.CompanyID = session.CompanyID
			if id.Company.Role == "" {
				id.Company.Role = session.Role
			}
		}
	}
	return id, nil
}

// parse verifies HS256 tokens when a secret is configured. Without a secret
// the claims are only read; the backend remains the verifier.
func (r *Resolver) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if len(r.secret) == 0 {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return claims, nil
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithLeeway(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return ""
}

func claimInt(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	}
	return 0
}

type identityKey struct{}

func withIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, id)
	if id.Token != "" {
		ctx = backend.WithAccessToken(ctx, id.Token)
	}
	return ctx
}

// IdentityFrom returns the identity attached by the auth middleware.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}
