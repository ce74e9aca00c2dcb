package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"blogspace/internal/model"
)

func TestCanMutate(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name      string
		actorID   uuid.UUID
		actorRole string
		expected  bool
	}{
		{
			name:      "owner may mutate",
			actorID:   owner,
			actorRole: model.RoleMember,
			expected:  true,
		},
		{
			name:      "admin may mutate another user's resource",
			actorID:   stranger,
			actorRole: model.RoleAdmin,
			expected:  true,
		},
		{
			name:      "non-owner member may not mutate",
			actorID:   stranger,
			actorRole: model.RoleMember,
			expected:  false,
		},
		{
			name:      "owner who is also admin may mutate",
			actorID:   owner,
			actorRole: model.RoleAdmin,
			expected:  true,
		},
		{
			name:      "unknown role falls back to ownership",
			actorID:   stranger,
			actorRole: "moderator",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanMutate(tt.actorID, tt.actorRole, owner))
		})
	}
}
