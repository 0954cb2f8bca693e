package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
)

func TestNotificationCreate(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil)

	n, err := svc.Create(context.Background(), "u-1", " New review ", "Ada rated it 5/5.", strPtr("p-1"))

	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "New review", n.Title)
	assert.False(t, n.IsRead)
	require.NotNil(t, n.ProductID)
	assert.Equal(t, "p-1", *n.ProductID)
}

func TestNotificationCreate_Validation(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())

	_, err := svc.Create(context.Background(), "", "t", "m", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "u-1", "  ", "m", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotificationList(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())

	repo.On("ListByUser", mock.Anything, "u-1").Return([]domain.Notification{{ID: "n-2"}, {ID: "n-1"}}, nil)
	repo.On("ListByUser", mock.Anything, "u-2").Return(nil, nil)

	got, err := svc.List(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(context.Background(), "u-2")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestNotificationCounts(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("CountUnread", mock.Anything, "u-1").Return(int64(3), nil)
	repo.On("MarkAllRead", mock.Anything, "u-1").Return(int64(3), nil)
	repo.On("DeleteAllByUser", mock.Anything, "u-1").Return(int64(5), nil)

	n, err := svc.UnreadCount(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = svc.MarkAllAsRead(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = svc.DeleteAll(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestNotificationMarkAsRead(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())

	repo.On("MarkRead", mock.Anything, "n-1").Return(nil)
	repo.On("MarkRead", mock.Anything, "n-x").Return(apperrors.NotFound("notification", "n-x"))

	assert.NoError(t, svc.MarkAsRead(context.Background(), "n-1"))
	assert.ErrorIs(t, svc.MarkAsRead(context.Background(), "n-x"), apperrors.ErrNotFound)
}

func TestNotificationDelete(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())

	repo.On("Delete", mock.Anything, "n-1").Return(nil)
	repo.On("Delete", mock.Anything, "n-x").Return(apperrors.NotFound("notification", "n-x"))

	assert.NoError(t, svc.Delete(context.Background(), "n-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "n-x"), apperrors.ErrNotFound)
}

func TestNotificationUserScopedOpsRequireUser(t *testing.T) {
	repo := new(mockNotificationRepository)
	svc := NewNotificationService(repo, newTestLogger())
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = svc.UnreadCount(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = svc.MarkAllAsRead(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = svc.DeleteAll(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
