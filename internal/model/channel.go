package model

import "time"

// Channel mirrors the `channels` table.  A channel belongs to one user;
// other users follow it through rows in `subscriptions`.
type Channel struct {
	ID           uint64    // channels.channel_id
	UserID       uint64    // channels.user_id
	Name         string    // channels.name
	Description  string    // channels.description
	CreationDate time.Time // channels.creation_date
}

// Subscription mirrors the `subscriptions` table, a set membership keyed
// by (user_id, channel_id).  The composite primary key enforces the
// at-most-one invariant at the store level.
type Subscription struct {
	UserID    uint64    // subscriptions.user_id
	ChannelID uint64    // subscriptions.channel_id
	CreatedAt time.Time // subscriptions.created_at
}
