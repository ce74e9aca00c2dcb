// Package authz holds the ownership rule applied before any mutation of
// an authored resource. There is exactly one implementation; the service
// layer enforces it and the client facade consults it for UI affordance.
package authz

import (
	"github.com/google/uuid"

	"blogspace/internal/model"
)

// CanMutate reports whether the acting user may update or delete a
// resource owned by ownerID: permitted iff the actor is the owner or an
// admin. Reads are never gated by this rule, and neither is the
// like-toggle, which mutates only the actor's own membership in the
// like set.
func CanMutate(actorID uuid.UUID, actorRole string, ownerID uuid.UUID) bool {
	return actorID == ownerID || actorRole == model.RoleAdmin
}
