package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/krushnapatil2025/Task-Manager/models"
)

func TestGetMembers_AnnotatesTaskCounts(t *testing.T) {
	member := newTestUser(models.RoleMember)
	admin := newTestUser(models.RoleAdmin)
	users := &fakeUserStore{users: []*models.User{member, admin}}

	tasks := &fakeTaskStore{}
	seedTask(tasks, []primitive.ObjectID{member.ID}, models.StatusPending, nil)
	seedTask(tasks, []primitive.ObjectID{member.ID}, models.StatusInProgress, nil)
	seedTask(tasks, []primitive.ObjectID{member.ID}, models.StatusCompleted, nil)
	seedTask(tasks, []primitive.ObjectID{member.ID}, models.StatusCompleted, nil)

	svc := NewUserService(users, tasks)
	members, err := svc.GetMembers(context.Background())
	require.NoError(t, err)

	require.Len(t, members, 1, "admins are not listed")
	require.Equal(t, member.ID, members[0].ID)
	require.Equal(t, int64(1), members[0].PendingTasks)
	require.Equal(t, int64(1), members[0].InProgressTasks)
	require.Equal(t, int64(2), members[0].CompletedTasks)
}

func TestDeleteUser_CascadesToSoleAssignedTasks(t *testing.T) {
	member := newTestUser(models.RoleMember)
	colleague := newTestUser(models.RoleMember)
	users := &fakeUserStore{users: []*models.User{member, colleague}}

	tasks := &fakeTaskStore{}
	sole := seedTask(tasks, []primitive.ObjectID{member.ID}, models.StatusPending, nil)
	shared := seedTask(tasks, []primitive.ObjectID{member.ID, colleague.ID}, models.StatusPending, nil)

	svc := NewUserService(users, tasks)
	require.NoError(t, svc.DeleteUser(context.Background(), member.ID))

	_, err := tasks.FindByID(context.Background(), sole.ID)
	require.ErrorIs(t, err, ErrTaskNotFound, "a solely assigned task is deleted with its user")

	kept, err := tasks.FindByID(context.Background(), shared.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{colleague.ID}, kept.AssignedTo)

	_, err = users.FindByID(context.Background(), member.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserStore{}, &fakeTaskStore{})
	err := svc.DeleteUser(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrUserNotFound)
}
