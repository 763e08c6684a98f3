package model

import "time"

// WatchLaterName is the reserved system playlist created for every user at
// registration.  It can never be deleted or renamed.
const WatchLaterName = "watch_later"

// Playlist mirrors the `playlists` table.  Visibility is a simple flag:
// private playlists are only shown to their owner.
type Playlist struct {
	ID        uint64    // playlists.playlist_id
	UserID    uint64    // playlists.user_id
	Name      string    // playlists.name
	IsPublic  bool      // playlists.is_public
	CreatedAt time.Time // playlists.created_at
}

// PlaylistVideo mirrors the `playlist_videos` membership table, keyed by
// (playlist_id, video_id).
type PlaylistVideo struct {
	PlaylistID uint64    // playlist_videos.playlist_id
	VideoID    uint64    // playlist_videos.video_id
	AddedAt    time.Time // playlist_videos.added_at
}
