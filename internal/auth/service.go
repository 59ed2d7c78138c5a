// Copyright (c) 2026 ScholarHub. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/scholarhub/api/internal/platform/apperr"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/users"
	"github.com/scholarhub/api/pkg/uuidv7"
)

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - role: The role of the account.
	//   - college: The account's college, carried so campus-admin requests
	//     can be scoped without a database lookup.
	//   - timeToLive: The duration before the token expires.
	GenerateAccessToken(userID, email, role, college string, timeToLive time.Duration) (string, error)
}

// AccountSource supplies the accounts being authenticated. Satisfied by the
// users repository.
type AccountSource interface {
	// FindByEmail returns the account registered under the email.
	FindByEmail(ctx context.Context, email string) (*users.User, error)

	// FindByID returns the account with the given ID.
	FindByID(ctx context.Context, id string) (*users.User, error)
}

// Service implements authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential checks
// or session logic must be reviewed by the security team.
type Service struct {
	accounts       AccountSource
	sessions       SessionRepository
	tokenProvider  TokenProvider
	accessTokenTTL time.Duration
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(accounts AccountSource, sessions SessionRepository, tokenProvider TokenProvider, accessTokenTTL time.Duration) *Service {
	return &Service{
		accounts:       accounts,
		sessions:       sessions,
		tokenProvider:  tokenProvider,
		accessTokenTTL: accessTokenTTL,
	}
}

// refreshTokenTTL bounds how long a device stays signed in without use.
const refreshTokenTTL = 30 * 24 * time.Hour

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *users.User
}

// Login validates credentials and issues an access token plus a refresh
// session.
//
// # Returns
//   - A pointer to [LoginSession] containing the tokens.
//   - Returns [apperr.Unauthorized] if credentials do not match or the
//     account is deactivated.
//
// # Flow
//  1. Lookup the account by email.
//  2. Reject deactivated accounts.
//  3. Verify the password hash using bcrypt.
//  4. Issue a short-lived JWT and a tracked refresh session.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Fetch Account ──────────────────────────────────────────────────

	// Return generic unauthorized errors to prevent email enumeration.
	account, err := service.accounts.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Account Status ─────────────────────────────────────────────────

	if !account.IsActive {
		return nil, apperr.Unauthorized("This account has been deactivated")
	}

	// ── 3. Security Verification ──────────────────────────────────────────

	// bcrypt comparison is constant-time, mitigating timing attacks.
	if !sec.CheckPasswordHash(input.Password, account.Password) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	return service.issueSession(context, account, input.UserAgent, input.IPAddress)
}

// Logout permanently revokes the session behind the refresh token. Logout
// of an unknown or already-revoked token succeeds silently (idempotent).
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessions.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// RefreshSession implements refresh token rotation: the presented token's
// session is revoked before a fresh token pair is issued, so a replayed
// token is dead on arrival.
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	// ── 1. Find Existing Session ──────────────────────────────────────────

	session, err := service.sessions.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// ── 2. Rotation (Revoke Old Session) ──────────────────────────────────

	if err := service.sessions.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// ── 3. Find Account ───────────────────────────────────────────────────

	account, err := service.accounts.FindByID(context, session.UserID)
	if err != nil || !account.IsActive {
		return nil, apperr.Unauthorized("Account not found or deactivated")
	}

	// ── 4. Issue New Tokens ───────────────────────────────────────────────

	return service.issueSession(context, account, userAgent, ipAddress)
}

// Me returns the account profile behind an authenticated request.
func (service *Service) Me(context context.Context, claims *sec.AuthClaims) (*users.User, error) {
	account, err := service.accounts.FindByID(context, claims.UserID)
	if err != nil {
		return nil, err
	}

	account.Password = ""
	return account, nil
}

// issueSession generates the JWT + refresh session pair for an account.
func (service *Service) issueSession(context context.Context, account *users.User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		account.ID, account.Email, string(account.Role), account.College, service.accessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(refreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		UserID:    account.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	account.Password = ""
	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  account,
	}, nil
}
