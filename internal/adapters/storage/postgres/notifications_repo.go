package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-management/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id,
			kind, title, body,
			read, created_at, read_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		n.ID,
		n.UserID,
		string(n.Kind),
		n.Title,
		n.Body,
		n.Read,
		n.CreatedAt,
		toNullTime(n.ReadAt),
	)
	return err
}

func (r *NotificationsRepo) Update(ctx context.Context, n notifications.Notification) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET
			read = $2,
			read_at = $3
		WHERE id = $1
	`,
		n.ID,
		n.Read,
		toNullTime(n.ReadAt),
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notifications.Notification{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			kind, title, body,
			read, created_at, read_at
		FROM notifications
		WHERE id = $1
	`, id)

	n, err := scanNotification(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return notifications.Notification{}, ErrNotFound
		}
		return notifications.Notification{}, err
	}
	return n, nil
}

func (r *NotificationsRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notifications.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	query := `
		SELECT
			id, user_id,
			kind, title, body,
			read, created_at, read_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += " AND read = FALSE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	return out, rows.Err()
}

func scanNotification(s rowScanner) (notifications.Notification, error) {
	var (
		n      notifications.Notification
		kind   string
		readAt sql.NullTime
	)
	if err := s.Scan(
		&n.ID,
		&n.UserID,
		&kind,
		&n.Title,
		&n.Body,
		&n.Read,
		&n.CreatedAt,
		&readAt,
	); err != nil {
		return notifications.Notification{}, err
	}
	n.Kind = notifications.Kind(kind)
	if readAt.Valid {
		t := readAt.Time.UTC()
		n.ReadAt = &t
	}
	return n, nil
}
