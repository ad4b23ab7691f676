package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	domainagg "github.com/campuscms/backend/internal/domain/aggregates"
	"github.com/campuscms/backend/internal/data/repos"
	"github.com/campuscms/backend/internal/platform/dbctx"
	"github.com/campuscms/backend/internal/platform/logger"
	"github.com/campuscms/backend/internal/tenant"
)

// AuthService verifies credentials and turns bearer tokens into tenant
// contexts. The content core itself never inspects tokens; it trusts the
// context this service attaches.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Refresh(ctx context.Context, tokenString string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authClaims struct {
	UserID        string `json:"userId"`
	InstitutionID string `json:"institutionId"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	users     repos.UserRepo
	secretKey []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, users repos.UserRepo, secretKey string, tokenTTL time.Duration) AuthService {
	return &authService{
		db:        db,
		log:       baseLog.With("service", "AuthService"),
		users:     users,
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "Auth.Login"
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "missing email or password", nil)
	}

	user, err := s.users.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	if user == nil || !user.Active {
		return "", domainagg.NewError(domainagg.CodeUnauthenticated, op, "invalid credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domainagg.NewError(domainagg.CodeUnauthenticated, op, "invalid credentials", nil)
	}

	return s.issueToken(user.ID, user.InstitutionID, user.Role)
}

func (s *authService) Refresh(ctx context.Context, tokenString string) (string, error) {
	const op = "Auth.Refresh"
	tc, err := s.verify(tokenString)
	if err != nil {
		return "", domainagg.NewError(domainagg.CodeUnauthenticated, op, "invalid token", err)
	}
	return s.issueToken(tc.UserID, tc.InstitutionID, string(tc.Role))
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "Auth.SetContextFromToken"
	tc, err := s.verify(tokenString)
	if err != nil {
		return ctx, domainagg.NewError(domainagg.CodeUnauthenticated, op, "invalid token", err)
	}
	return tenant.WithContext(ctx, tc), nil
}

func (s *authService) issueToken(userID, institutionID uuid.UUID, role string) (string, error) {
	const op = "Auth.issueToken"
	now := time.Now().UTC()
	claims := authClaims{
		UserID:        userID.String(),
		InstitutionID: institutionID.String(),
		Role:          role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return signed, nil
}

func (s *authService) verify(tokenString string) (tenant.Context, error) {
	var claims authClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secretKey, nil
	})
	if err != nil {
		return tenant.Context{}, err
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return tenant.Context{}, err
	}
	institutionID, err := uuid.Parse(claims.InstitutionID)
	if err != nil {
		return tenant.Context{}, err
	}
	role, ok := tenant.ParseRole(claims.Role)
	if !ok {
		return tenant.Context{}, jwt.ErrTokenInvalidClaims
	}
	return tenant.Context{
		InstitutionID: institutionID,
		UserID:        userID,
		Role:          role,
	}, nil
}
