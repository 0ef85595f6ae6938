package ports

import "context"

// SessionStore tracks which token signatures belong to a live session and
// which have been revoked. Records expire on their own.
type SessionStore interface {
	// Register marks signature as an active session of userID and clears any
	// earlier revocation of the same signature.
	Register(ctx context.Context, signature string, userID int64) error
	// Revoke records signature as revoked. Revoking twice is not an error.
	Revoke(ctx context.Context, signature string) error
	// IsRevoked reports true when signature is revoked or has no active session.
	IsRevoked(ctx context.Context, signature string) (bool, error)
	// RevokeUser revokes every active session registered for userID.
	RevokeUser(ctx context.Context, userID int64) error
}
