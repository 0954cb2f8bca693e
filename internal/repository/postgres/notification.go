package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/domain"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
)

// NotificationRepository implements repository.NotificationRepository using PostgreSQL.
type NotificationRepository struct {
	base
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool database.DBTX, opts ...Option) *NotificationRepository {
	return &NotificationRepository{base: newBase(pool, opts)}
}

// Create inserts a new notification into the database.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (err error) {
	query := `
		INSERT INTO notifications (id, user_id, title, message, product_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, end := r.begin(ctx, "CreateNotification", query)
	defer func() { end(err) }()

	_, err = r.pool.Exec(ctx, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Message,
		n.ProductID,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return storageError("insert notification", err)
	}
	return nil
}

// ListByUser returns notifications for a user, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) (list []domain.Notification, err error) {
	query := `
		SELECT id, user_id, title, message, product_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC`

	ctx, end := r.begin(ctx, "ListNotifications", query)
	defer func() { end(err) }()

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storageError("list notifications", err)
	}
	list, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var n domain.Notification
		err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.ProductID, &n.IsRead, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		return nil, storageError("scan notification rows", err)
	}
	if list == nil {
		list = []domain.Notification{}
	}
	return list, nil
}

// CountUnread counts the user's unread notifications.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (n int64, err error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`

	ctx, end := r.begin(ctx, "CountUnread", query)
	defer func() { end(err) }()

	if err = r.pool.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, storageError("count unread", err)
	}
	return n, nil
}

// MarkRead flags one notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (err error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1`

	ctx, end := r.begin(ctx, "MarkRead", query)
	defer func() { end(err) }()

	return r.execOne(ctx, "mark notification read", query, id)
}

// MarkAllRead flags every unread notification of the user.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (n int64, err error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`

	ctx, end := r.begin(ctx, "MarkAllRead", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, storageError("mark all read", err)
	}
	return ct.RowsAffected(), nil
}

// Delete removes one notification.
func (r *NotificationRepository) Delete(ctx context.Context, id string) (err error) {
	query := `DELETE FROM notifications WHERE id = $1`

	ctx, end := r.begin(ctx, "DeleteNotification", query)
	defer func() { end(err) }()

	return r.execOne(ctx, "delete notification", query, id)
}

// DeleteAllByUser removes every notification of the user.
func (r *NotificationRepository) DeleteAllByUser(ctx context.Context, userID string) (n int64, err error) {
	query := `DELETE FROM notifications WHERE user_id = $1`

	ctx, end := r.begin(ctx, "DeleteAllNotifications", query)
	defer func() { end(err) }()

	ct, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, storageError("delete notifications", err)
	}
	return ct.RowsAffected(), nil
}

// execOne runs a statement keyed by notification id and maps zero
// affected rows to NotFound.
func (r *NotificationRepository) execOne(ctx context.Context, op, query, id string) error {
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if isInvalidText(err) {
			return apperrors.NotFound("notification", id)
		}
		return storageError(op, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("notification", id)
	}
	return nil
}
