package repository

import (
	"context"
	"database/sql"
)

// ScoreRepo manages like/dislike votes on videos and comments. Votes are
// keyed by (target, user): setting a vote is a delete-then-insert so a
// user can flip like to dislike in one call, and the pair runs inside a
// transaction so no observer sees the vote missing between the two
// statements.
type ScoreRepo struct{ DB *sql.DB }

func NewScoreRepo(db *sql.DB) *ScoreRepo { return &ScoreRepo{DB: db} }

// scoreTarget carries the two statements that differ between the video
// and comment score tables. Both take (user_id, target_id) for the delete
// and (target_id, user_id, score) for the insert, mirroring the column
// order of the composite keys.
type scoreTarget struct {
	deleteStmt string
	insertStmt string
}

var videoScores = scoreTarget{
	deleteStmt: "DELETE FROM video_scores WHERE user_id=? AND video_id=?",
	insertStmt: "INSERT INTO video_scores (video_id, user_id, score) VALUES (?,?,?)",
}

var commentScores = scoreTarget{
	deleteStmt: "DELETE FROM comment_scores WHERE user_id=? AND comment_id=?",
	insertStmt: "INSERT INTO comment_scores (comment_id, user_id, score) VALUES (?,?,?)",
}

// set replaces the user's vote on the target: delete then insert,
// committed together or not at all.
func (r *ScoreRepo) set(ctx context.Context, t scoreTarget, userID, targetID uint64, score string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, t.deleteStmt, userID, targetID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, t.insertStmt, targetID, userID, score); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// remove deletes the user's vote and reports whether one existed.
func (r *ScoreRepo) remove(ctx context.Context, t scoreTarget, userID, targetID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, t.deleteStmt, userID, targetID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *ScoreRepo) SetVideoScore(ctx context.Context, userID, videoID uint64, score string) error {
	return r.set(ctx, videoScores, userID, videoID, score)
}

func (r *ScoreRepo) RemoveVideoScore(ctx context.Context, userID, videoID uint64) (bool, error) {
	return r.remove(ctx, videoScores, userID, videoID)
}

func (r *ScoreRepo) SetCommentScore(ctx context.Context, userID, commentID uint64, score string) error {
	return r.set(ctx, commentScores, userID, commentID, score)
}

func (r *ScoreRepo) RemoveCommentScore(ctx context.Context, userID, commentID uint64) (bool, error) {
	return r.remove(ctx, commentScores, userID, commentID)
}

// VideoScoreCounts returns the like and dislike totals of a video.
func (r *ScoreRepo) VideoScoreCounts(ctx context.Context, videoID uint64) (likes, dislikes int64, err error) {
	err = r.DB.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(score='like'),0),
		   COALESCE(SUM(score='dislike'),0)
		 FROM video_scores WHERE video_id=?`, videoID).Scan(&likes, &dislikes)
	return likes, dislikes, err
}
