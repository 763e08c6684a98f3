package repository

import (
	"context"
	"database/sql"
	"time"
)

type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// CommentDetail is the display form of a comment, joined with the author's
// username. ParentID is nil for top-level comments.
type CommentDetail struct {
	ID         uint64    `json:"comment_id"`
	UserID     uint64    `json:"user_id"`
	Username   string    `json:"username"`
	ParentID   *uint64   `json:"parent_id,omitempty"`
	Comment    string    `json:"comment"`
	SubmitDate time.Time `json:"submit_date"`
}

// Exists reports whether a comment row exists.
func (r *CommentRepo) Exists(ctx context.Context, commentID uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comments WHERE comment_id=?", commentID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a comment and returns its id. parentID zero means a
// top-level comment; the caller must have verified a non-zero parent
// exists, keeping the tree insert-only and acyclic.
func (r *CommentRepo) Create(ctx context.Context, userID, videoID, parentID uint64, body string) (uint64, error) {
	parent := sql.NullInt64{}
	if parentID > 0 {
		parent = sql.NullInt64{Int64: int64(parentID), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (user_id, video_id, parent_id, comment, submit_date) VALUES (?,?,?,?,NOW())",
		userID, videoID, parent, body)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// DeleteOwned deletes a comment only when userID authored it and reports
// whether a row was removed.
func (r *CommentRepo) DeleteOwned(ctx context.Context, userID, commentID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM comments WHERE user_id=? AND comment_id=?", userID, commentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// ListByVideo returns a video's comments in submission order.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID uint64) ([]CommentDetail, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.comment_id, c.user_id, u.username, c.parent_id, c.comment, c.submit_date
		 FROM comments c JOIN users u ON u.user_id = c.user_id
		 WHERE c.video_id=? ORDER BY c.submit_date`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CommentDetail{}
	for rows.Next() {
		var cm CommentDetail
		var parent sql.NullInt64
		if err := rows.Scan(&cm.ID, &cm.UserID, &cm.Username, &parent, &cm.Comment, &cm.SubmitDate); err != nil {
			return nil, err
		}
		if parent.Valid {
			p := uint64(parent.Int64)
			cm.ParentID = &p
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}
