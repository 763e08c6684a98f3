package model

import "time"

// Comment mirrors the `comments` table.  Comments form a tree per video:
// ParentID is nil for a top-level comment and otherwise references an
// existing comment.  Insertion validates the parent, so the tree can
// never contain a cycle.
type Comment struct {
	ID         uint64    // comments.comment_id
	UserID     uint64    // comments.user_id
	VideoID    uint64    // comments.video_id
	ParentID   *uint64   // comments.parent_id (nullable)
	Comment    string    // comments.comment
	SubmitDate time.Time // comments.submit_date
}
