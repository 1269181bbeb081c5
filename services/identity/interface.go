package identity

import (
	"context"

	"lingkod/models"
)

// Resolver looks up the display identity written onto slot records.
// Lookups are best-effort: a missing or unreachable account yields an empty
// Identity, never an error. Denormalized fields are captured once at write
// time and never re-synced.
type Resolver interface {
	Resolve(ctx context.Context, userID string) models.Identity
}
