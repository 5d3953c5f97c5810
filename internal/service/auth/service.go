package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mymbrcm/hr-portal-go/internal/domain/auth"
	"github.com/mymbrcm/hr-portal-go/internal/domain/user"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/jwt"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/oauth"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/validator"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

// Service handles registration, credential and Google sign-in, and token
// lifecycle. Registration is restricted to the company email domain; new
// accounts start at the Employee level.
type Service struct {
	logger      *slog.Logger
	users       user.Repository
	policies    *policy.Store
	tokens      jwt.Service
	google      oauth.GoogleService
	emailDomain string

	now func() time.Time
}

func NewService(
	logger *slog.Logger,
	users user.Repository,
	policies *policy.Store,
	tokens jwt.Service,
	google oauth.GoogleService,
	emailDomain string,
) *Service {
	return &Service{
		logger:      logger,
		users:       users,
		policies:    policies,
		tokens:      tokens,
		google:      google,
		emailDomain: emailDomain,
		now:         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, dto user.RegisterRequest) (user.Profile, error) {
	if err := dto.Validate(); err != nil {
		return user.Profile{}, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if !validator.HasEmailDomain(email, s.emailDomain) {
		return user.Profile{}, user.ErrEmailNotAllowed
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return user.Profile{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.Profile{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.Profile{}, fmt.Errorf("hashing password: %w", err)
	}

	p := s.policies.Snapshot()
	now := s.now()
	u := user.User{
		ID:           uuid.New().String(),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        email,
		Gender:       user.Gender(dto.Gender),
		Role:         "Employee",
		Shift:        p.DefaultShift,
		JoiningDate:  now,
		Status:       user.StatusActive,
		PFStatus:     user.PFInactive,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return user.Profile{}, err
	}

	s.logger.Info("user registered", slog.String("user_id", created.ID))
	return user.ToProfile(created), nil
}

func (s *Service) Login(ctx context.Context, dto user.LoginRequest) (auth.TokenResponse, string, int64, error) {
	if err := dto.Validate(); err != nil {
		return auth.TokenResponse{}, "", 0, err
	}

	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(dto.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, "", 0, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)) != nil {
		return auth.TokenResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// GoogleRedirectURL begins the OAuth2 flow.
func (s *Service) GoogleRedirectURL(userAgent string) (string, string) {
	state := s.google.GenerateState(userAgent)
	return s.google.RedirectURL(state), state
}

// GoogleLogin completes the OAuth2 flow. Sign-in only matches an existing
// directory account on the company domain.
func (s *Service) GoogleLogin(ctx context.Context, code string) (auth.TokenResponse, string, int64, error) {
	token, err := s.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	info, err := s.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, "", 0, auth.ErrInvalidCredentials
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, "", 0, auth.ErrEmailNotVerified
	}

	email := strings.ToLower(info.Email)
	if !validator.HasEmailDomain(email, s.emailDomain) {
		return auth.TokenResponse{}, "", 0, user.ErrEmailNotAllowed
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return auth.TokenResponse{}, "", 0, err
	}

	return s.issueTokens(u)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.tokens.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrTokenRevoked
	}

	decoded, err := s.tokens.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if typ, ok := decoded.Get("type"); !ok || typ != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := decoded.Get("user_id")
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !u.IsActive() {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	access, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Role, u.Department)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("generating access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user.ToProfile(u),
	}, nil
}

// Logout revokes the refresh token.
func (s *Service) Logout(refreshToken string) {
	if refreshToken != "" {
		s.tokens.RevokeToken(refreshToken)
	}
}

// SSEToken issues a short-lived token for the notification stream.
func (s *Service) SSEToken(userID string) (auth.SSETokenResponse, error) {
	token, expiresIn, err := s.tokens.GenerateSSEToken(userID)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("generating sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *Service) issueTokens(u user.User) (auth.TokenResponse, string, int64, error) {
	if !u.IsActive() {
		return auth.TokenResponse{}, "", 0, user.ErrUserInactive
	}

	access, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Role, u.Department)
	if err != nil {
		return auth.TokenResponse{}, "", 0, fmt.Errorf("generating access token: %w", err)
	}
	refresh, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, "", 0, fmt.Errorf("generating refresh token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("user_id", u.ID))
	return auth.TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user.ToProfile(u),
	}, refresh, refreshExpiresAt, nil
}
