package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type ChannelRepo struct{ DB *sql.DB }

func NewChannelRepo(db *sql.DB) *ChannelRepo { return &ChannelRepo{DB: db} }

// ChannelDetail is the display form of a channel, joined with the owner's
// username.
type ChannelDetail struct {
	ID           uint64    `json:"channel_id"`
	UserID       uint64    `json:"user_id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreationDate time.Time `json:"creation_date"`
}

// Create inserts a channel owned by userID and returns its id.
func (r *ChannelRepo) Create(ctx context.Context, userID uint64, name, description string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO channels (user_id, name, description, creation_date) VALUES (?,?,?,NOW())",
		userID, name, description)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteOwned deletes a channel only when userID owns it and reports
// whether a row was removed.
func (r *ChannelRepo) DeleteOwned(ctx context.Context, userID, channelID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM channels WHERE user_id=? AND channel_id=?", userID, channelID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// Exists reports whether a channel row exists.
func (r *ChannelRepo) Exists(ctx context.Context, channelID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM channels WHERE channel_id=?", channelID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get fetches a channel with its owner's username.
func (r *ChannelRepo) Get(ctx context.Context, channelID uint64) (ChannelDetail, error) {
	var ch ChannelDetail
	err := r.DB.QueryRowContext(ctx,
		`SELECT c.channel_id, c.user_id, u.username, c.name, c.description, c.creation_date
		 FROM channels c JOIN users u ON u.user_id = c.user_id
		 WHERE c.channel_id=? LIMIT 1`, channelID).
		Scan(&ch.ID, &ch.UserID, &ch.Username, &ch.Name, &ch.Description, &ch.CreationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return ch, ErrNotFound
	}
	return ch, err
}

// SubscriberCount returns the number of subscriptions to a channel.
func (r *ChannelRepo) SubscriberCount(ctx context.Context, channelID uint64) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM subscriptions WHERE channel_id=?", channelID).Scan(&n)
	return n, err
}

// ListByOwner returns the channels created by a user, oldest first.
func (r *ChannelRepo) ListByOwner(ctx context.Context, userID uint64) ([]ChannelDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.channel_id, c.user_id, u.username, c.name, c.description, c.creation_date
		 FROM channels c JOIN users u ON u.user_id = c.user_id
		 WHERE c.user_id=? ORDER BY c.creation_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ChannelDetail{}
	for rows.Next() {
		var ch ChannelDetail
		if err := rows.Scan(&ch.ID, &ch.UserID, &ch.Username, &ch.Name, &ch.Description, &ch.CreationDate); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}
