package service

import (
	"context"
	"strings"
	"time"

	"homewire_backend/internal/auth/password"
	"homewire_backend/internal/auth/repository"
	"homewire_backend/internal/auth/token"
	"homewire_backend/platform/apperr"
	"homewire_backend/platform/config"
	"homewire_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTokenType   = "access"
	refreshTokenBytes = 48
	invalidCredsMsg   = "invalid credentials"
)

// Service provides admin authentication: login, refresh, logout, and the
// first-boot admin seed.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service.
func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Login verifies credentials and issues a token pair. Unknown email and bad
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", "", apperr.Unauthorized(invalidCredsMsg)
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "bad password")
		return "", "", apperr.Unauthorized(invalidCredsMsg)
	}

	s.log.AuthEvent("login", email, true, "")
	return s.issueTokens(ctx, user.ID, user.Role)
}

// Refresh rotates a refresh session and issues a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)

	userID, expiresAt, err := s.repo.GetSession(ctx, hash)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid refresh token")
	}
	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeSession(ctx, hash)
		return "", "", apperr.Unauthorized("refresh token expired")
	}

	// Rotation: the presented token is single use.
	_ = s.repo.RevokeSession(ctx, hash)

	role, err := s.repo.GetUserRole(ctx, userID)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid refresh token")
	}
	return s.issueTokens(ctx, userID, role)
}

// Logout revokes the presented refresh session. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeSession(ctx, token.HashSHA256(refreshToken))
}

// EnsureAdmin seeds the configured admin account when no users exist yet.
// Called once at startup; a missing seed config on an empty database is an
// operator error worth failing loudly on.
func (s *Service) EnsureAdmin(ctx context.Context) error {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(s.cfg.GetSeedAdminEmail()))
	plain := s.cfg.GetSeedAdminPassword()
	if email == "" || plain == "" {
		return apperr.Internal("no admin users exist and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &repository.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return err
	}

	s.log.AuthEvent("seed", email, true, "initial admin created")
	return nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID, role string) (string, string, error) {
	accessToken, err := s.signJWT(userID, role)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(refreshTokenBytes)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateSession(ctx, userID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(userID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"roles": []string{role},
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
