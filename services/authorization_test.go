package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
)

func TestScopeFor(t *testing.T) {
	adminID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()

	adminScope := ScopeFor(models.Principal{ID: adminID, Role: models.RoleAdmin})
	require.True(t, adminScope.AssignedTo.IsZero(), "admin scope must be unrestricted")

	memberScope := ScopeFor(models.Principal{ID: memberID, Role: models.RoleMember})
	require.Equal(t, memberID, memberScope.AssignedTo)
}

func TestCanMutateChecklist(t *testing.T) {
	assigned := primitive.NewObjectID()
	other := primitive.NewObjectID()
	task := &models.Task{AssignedTo: []primitive.ObjectID{assigned, primitive.NewObjectID()}}

	require.True(t, CanMutateChecklist(models.Principal{ID: other, Role: models.RoleAdmin}, task))
	require.True(t, CanMutateChecklist(models.Principal{ID: assigned, Role: models.RoleMember}, task))
	require.False(t, CanMutateChecklist(models.Principal{ID: other, Role: models.RoleMember}, task))
}

func TestCanMutateStatus_UsesSetMembership(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	task := &models.Task{AssignedTo: []primitive.ObjectID{first, second}}

	// Every assignee may set the status, not just the first one.
	require.True(t, CanMutateStatus(models.Principal{ID: first, Role: models.RoleMember}, task))
	require.True(t, CanMutateStatus(models.Principal{ID: second, Role: models.RoleMember}, task))
	require.False(t, CanMutateStatus(models.Principal{ID: primitive.NewObjectID(), Role: models.RoleMember}, task))
}
