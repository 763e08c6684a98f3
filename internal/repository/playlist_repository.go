package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nbolat/vidshare/internal/model"
)

type PlaylistRepo struct{ DB *sql.DB }

func NewPlaylistRepo(db *sql.DB) *PlaylistRepo { return &PlaylistRepo{DB: db} }

// ErrPlaylistExists is returned when a user already has a playlist with
// the requested name.
var ErrPlaylistExists = errors.New("playlist already exists")

var playlistToggle = toggleSpec{
	existsQuery: "SELECT COUNT(*) FROM playlist_videos WHERE playlist_id=? AND video_id=?",
	insertStmt:  "INSERT INTO playlist_videos (playlist_id, video_id, added_at) VALUES (?,?,NOW())",
	deleteStmt:  "DELETE FROM playlist_videos WHERE playlist_id=? AND video_id=?",
}

// Create inserts a playlist and returns its id. The (user_id, name)
// unique key maps raced duplicates to ErrPlaylistExists.
func (r *PlaylistRepo) Create(ctx context.Context, userID uint64, name string, public bool) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO playlists (user_id, name, is_public, created_at) VALUES (?,?,?,NOW())",
		userID, name, public)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrPlaylistExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Get fetches a playlist by id.
func (r *PlaylistRepo) Get(ctx context.Context, playlistID uint64) (model.Playlist, error) {
	var p model.Playlist
	err := r.DB.QueryRowContext(ctx,
		"SELECT playlist_id, user_id, name, is_public, created_at FROM playlists WHERE playlist_id=? LIMIT 1",
		playlistID).Scan(&p.ID, &p.UserID, &p.Name, &p.IsPublic, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// GetOwned fetches a playlist only when userID owns it. A playlist owned
// by someone else is indistinguishable from a missing one.
func (r *PlaylistRepo) GetOwned(ctx context.Context, userID, playlistID uint64) (model.Playlist, error) {
	var p model.Playlist
	err := r.DB.QueryRowContext(ctx,
		"SELECT playlist_id, user_id, name, is_public, created_at FROM playlists WHERE playlist_id=? AND user_id=? LIMIT 1",
		playlistID, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.IsPublic, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// Delete removes a playlist row. Membership rows cascade. The handler is
// responsible for refusing the watch_later list before calling this.
func (r *PlaylistRepo) Delete(ctx context.Context, playlistID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM playlists WHERE playlist_id=?", playlistID)
	return err
}

// Rename changes a playlist's name.
func (r *PlaylistRepo) Rename(ctx context.Context, playlistID uint64, name string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE playlists SET name=? WHERE playlist_id=?", name, playlistID)
	if isDuplicateKey(err) {
		return ErrPlaylistExists
	}
	return err
}

// SetVisibility flips the public flag.
func (r *PlaylistRepo) SetVisibility(ctx context.Context, playlistID uint64, public bool) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE playlists SET is_public=? WHERE playlist_id=?", public, playlistID)
	return err
}

// AddVideo and RemoveVideo toggle playlist membership through the shared
// existence-check routine.
func (r *PlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uint64) error {
	return playlistToggle.add(ctx, r.DB, playlistID, videoID)
}

func (r *PlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uint64) error {
	return playlistToggle.remove(ctx, r.DB, playlistID, videoID)
}

// ListVideos returns a playlist's member videos in the order they were
// added.
func (r *PlaylistRepo) ListVideos(ctx context.Context, playlistID uint64) ([]VideoSummary, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT v.video_id, u.username, v.title, v.description, v.upload_date
		 FROM playlist_videos pv
		 JOIN videos v ON v.video_id = pv.video_id
		 JOIN users u ON u.user_id = v.user_id
		 WHERE pv.playlist_id=? ORDER BY pv.added_at`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVideoSummaries(rows)
}

// ListPublicByOwner returns a user's public playlists, oldest first.
func (r *PlaylistRepo) ListPublicByOwner(ctx context.Context, userID uint64) ([]model.Playlist, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT playlist_id, user_id, name, is_public, created_at FROM playlists WHERE user_id=? AND is_public=1 ORDER BY created_at",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Playlist{}
	for rows.Next() {
		var p model.Playlist
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.IsPublic, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
