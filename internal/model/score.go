package model

// Score values accepted by the score actions.  The database column is an
// enum with the same two members.
const (
	ScoreLike    = "like"
	ScoreDislike = "dislike"
)

// VideoScore mirrors the `video_scores` table.  The composite primary key
// (video_id, user_id) guarantees at most one vote per user and video.
type VideoScore struct {
	VideoID uint64 // video_scores.video_id
	UserID  uint64 // video_scores.user_id
	Score   string // video_scores.score ('like' | 'dislike')
}

// CommentScore mirrors the `comment_scores` table, keyed by
// (comment_id, user_id).
type CommentScore struct {
	CommentID uint64 // comment_scores.comment_id
	UserID    uint64 // comment_scores.user_id
	Score     string // comment_scores.score ('like' | 'dislike')
}
