// Copyright (c) 2026 ScholarHub. All rights reserved.

/*
Package auth implements credential verification and session issuance.

# Security Concept

Access tokens (JWT) are stateless and cannot be revoked before expiry. To
mitigate this, short-lived JWTs are paired with long-lived refresh sessions
stored in the database. When the JWT expires, the client uses the refresh
token to issue a new one; revoking a session logs the device out for good.
*/
package auth

import (
	"context"
	"time"
)

// Session represents an active refresh-token session for one device.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // SHA-256 digest of the refresh token.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRepository defines the data access contract for refresh sessions.
type SessionRepository interface {
	// Create persists a new tracking session for an authenticated login.
	Create(ctx context.Context, session *Session) error

	// FindByTokenHash returns the active session matching the token hash.
	//
	// Returns [apperr.NotFound] if the session is invalid, expired, or revoked.
	FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(ctx context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to the userID.
	// Used when an account is deactivated or its password changes.
	RevokeAll(ctx context.Context, userID string) error

	// DeleteExpired physically removes sessions past their expiry.
	// Intended for a periodic background cleanup worker.
	DeleteExpired(ctx context.Context) error
}
