package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type VideoRepo struct{ DB *sql.DB }

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{DB: db} }

// defaultDuration stands in until media processing reports the real
// length of an upload.
const defaultDuration = 60

// VideoDetail is the full display form of a video, joined with its
// uploader's username.
type VideoDetail struct {
	ID          uint64    `json:"video_id"`
	UserID      uint64    `json:"user_id"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	Description string    `json:"description"`
	Duration    uint32    `json:"duration"`
	UploadDate  time.Time `json:"upload_date"`
}

// VideoSummary is the listing form used by search, channel display and
// playlist display.
type VideoSummary struct {
	ID          uint64    `json:"video_id"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UploadDate  time.Time `json:"upload_date"`
}

// Create inserts a video owned by userID and returns its id.
func (r *VideoRepo) Create(ctx context.Context, userID uint64, title, filename, description string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO videos (user_id, title, filename, description, duration, upload_date) VALUES (?,?,?,?,?,NOW())",
		userID, title, filename, description, defaultDuration)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteOwned deletes a video only when userID owns it and reports whether
// a row was removed. Comments, scores and playlist memberships go with it
// via foreign key cascade.
func (r *VideoRepo) DeleteOwned(ctx context.Context, userID, videoID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM videos WHERE user_id=? AND video_id=?", userID, videoID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// Exists reports whether a video row exists.
func (r *VideoRepo) Exists(ctx context.Context, videoID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM videos WHERE video_id=?", videoID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get fetches a video with its uploader's username.
func (r *VideoRepo) Get(ctx context.Context, videoID uint64) (VideoDetail, error) {
	var v VideoDetail
	err := r.DB.QueryRowContext(ctx,
		`SELECT v.video_id, v.user_id, u.username, v.title, v.filename, v.description, v.duration, v.upload_date
		 FROM videos v JOIN users u ON u.user_id = v.user_id
		 WHERE v.video_id=? LIMIT 1`, videoID).
		Scan(&v.ID, &v.UserID, &v.Username, &v.Title, &v.Filename, &v.Description, &v.Duration, &v.UploadDate)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	return v, err
}

// ListByOwner returns the newest-first videos uploaded by a user.
func (r *VideoRepo) ListByOwner(ctx context.Context, userID uint64) ([]VideoSummary, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT v.video_id, u.username, v.title, v.description, v.upload_date
		 FROM videos v JOIN users u ON u.user_id = v.user_id
		 WHERE v.user_id=? ORDER BY v.upload_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVideoSummaries(rows)
}

// Search returns up to limit videos whose title or description matches the
// query, newest first.
func (r *VideoRepo) Search(ctx context.Context, query string, limit int) ([]VideoSummary, error) {
	pattern := "%" + query + "%"
	rows, err := r.DB.QueryContext(ctx,
		`SELECT v.video_id, u.username, v.title, v.description, v.upload_date
		 FROM videos v JOIN users u ON u.user_id = v.user_id
		 WHERE v.title LIKE ? OR v.description LIKE ?
		 ORDER BY v.upload_date DESC LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVideoSummaries(rows)
}

func scanVideoSummaries(rows *sql.Rows) ([]VideoSummary, error) {
	out := []VideoSummary{}
	for rows.Next() {
		var v VideoSummary
		if err := rows.Scan(&v.ID, &v.Username, &v.Title, &v.Description, &v.UploadDate); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
