package postgres

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
)

func TestNotificationRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	pid := "p-1"
	n := &domain.Notification{ID: "n-1", UserID: "user-1", Title: "New review", Message: "Kettle got 5 stars", ProductID: &pid, CreatedAt: now}
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("n-1", "user-1", "New review", "Kettle got 5 stars", &pid, false, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), n))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	pid := "p-1"
	mock.ExpectQuery(`FROM notifications WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "title", "message", "product_id", "is_read", "created_at"}).
			AddRow("n-2", "user-1", "B", "b", &pid, false, now).
			AddRow("n-1", "user-1", "A", "a", (*string)(nil), true, now.Add(-1)))

	list, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-1", *list[0].ProductID)
	assert.Nil(t, list[1].ProductID)
	assert.True(t, list[1].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notifications WHERE user_id = \$1 AND NOT is_read`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := repo.CountUnread(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1`).
		WithArgs("n-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkRead(context.Background(), "n-1"))
	assert.ErrorIs(t, repo.MarkRead(context.Background(), "missing"), apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE user_id = \$1 AND NOT is_read`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.MarkAllRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestNotificationRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectExec(`DELETE FROM notifications WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM notifications WHERE id = \$1`).
		WithArgs("n-1").
		WillReturnError(errors.New("broken pipe"))

	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "n-1"), apperrors.ErrServiceUnavail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_DeleteAllByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)

	mock.ExpectExec(`DELETE FROM notifications WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 5))

	n, err := repo.DeleteAllByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
