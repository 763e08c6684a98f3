package repository

import (
	"context"
	"database/sql"
)

// SubscriptionRepo manages the (user, channel) membership set. Both
// mutations run through the shared toggle routine: subscribing twice and
// unsubscribing from nothing are reported as ErrDuplicate and ErrNotFound
// respectively, never silently absorbed.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

var subscriptionToggle = toggleSpec{
	existsQuery: "SELECT COUNT(*) FROM subscriptions WHERE user_id=? AND channel_id=?",
	insertStmt:  "INSERT INTO subscriptions (user_id, channel_id, created_at) VALUES (?,?,NOW())",
	deleteStmt:  "DELETE FROM subscriptions WHERE user_id=? AND channel_id=?",
}

func (r *SubscriptionRepo) Subscribe(ctx context.Context, userID, channelID uint64) error {
	return subscriptionToggle.add(ctx, r.DB, userID, channelID)
}

func (r *SubscriptionRepo) Unsubscribe(ctx context.Context, userID, channelID uint64) error {
	return subscriptionToggle.remove(ctx, r.DB, userID, channelID)
}
