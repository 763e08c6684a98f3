package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/model"
)

type scoreReq struct {
	VideoID   *int64  `json:"videoid"`
	CommentID *int64  `json:"comment_id"`
	Method    *string `json:"method"`
	Score     *string `json:"score"`
}

// scoreBinding parameterizes the one score flow over its two targets.
// Everything that differs between voting on a video and voting on a
// comment — the request field, the messages, the existence check, and the
// repository calls — lives here; the control flow is shared.
type scoreBinding struct {
	action      string
	idField     string // name used in the "invalid ..." message
	missingFmt  string // format for the target-doesn't-exist message
	targetID    func(req scoreReq) *int64
	exists      func(ctx context.Context, id uint64) (bool, error)
	setScore    func(ctx context.Context, uid, id uint64, score string) error
	removeScore func(ctx context.Context, uid, id uint64) (bool, error)
}

func (a *API) scoreVideo(c echo.Context, body json.RawMessage) error {
	return a.handleScore(c, body, scoreBinding{
		action:      "scorevideo",
		idField:     "videoid",
		missingFmt:  "videoid %d doesn't exist",
		targetID:    func(req scoreReq) *int64 { return req.VideoID },
		exists:      a.Videos.Exists,
		setScore:    a.Scores.SetVideoScore,
		removeScore: a.Scores.RemoveVideoScore,
	})
}

func (a *API) scoreComment(c echo.Context, body json.RawMessage) error {
	return a.handleScore(c, body, scoreBinding{
		action:      "scorecomment",
		idField:     "comment_id",
		missingFmt:  "comment %d doesn't exist",
		targetID:    func(req scoreReq) *int64 { return req.CommentID },
		exists:      a.Comments.Exists,
		setScore:    a.Scores.SetCommentScore,
		removeScore: a.Scores.RemoveCommentScore,
	})
}

func (a *API) handleScore(c echo.Context, body json.RawMessage, b scoreBinding) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req scoreReq
	if !decodeInto(body, &req) || b.targetID(req) == nil || req.Method == nil {
		return missingParams(c)
	}
	method := strings.ToLower(strings.TrimSpace(*req.Method))
	targetID := *b.targetID(req)

	if method == "" {
		return failed(c, "method is empty")
	}
	if method != "add" && method != "remove" {
		return failed(c, "invalid method. must be 'add' or 'remove'")
	}
	if targetID < 1 {
		return failed(c, "invalid "+b.idField)
	}

	var score string
	if method == "add" {
		if req.Score == nil {
			return missingParams(c)
		}
		score = strings.ToLower(strings.TrimSpace(*req.Score))
		if score == "" {
			return failed(c, "score is empty")
		}
		if score != model.ScoreLike && score != model.ScoreDislike {
			return failed(c, "invalid score. must be 'like' or 'dislike'")
		}
	}

	ctx := c.Request().Context()
	exists, err := b.exists(ctx, uint64(targetID))
	if err != nil {
		return internalError(c, b.action, err)
	}
	if !exists {
		return failed(c, fmt.Sprintf(b.missingFmt, targetID))
	}

	if method == "add" {
		// Replace, not upsert: the old vote row is deleted and the new one
		// inserted in a single transaction, which also lets a user flip a
		// like to a dislike in one call.
		if err := b.setScore(ctx, uid, uint64(targetID), score); err != nil {
			return internalError(c, b.action, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "score has been submited"})
	}

	removed, err := b.removeScore(ctx, uid, uint64(targetID))
	if err != nil {
		return internalError(c, b.action, err)
	}
	if !removed {
		return c.JSON(http.StatusOK, echo.Map{"result": false, "msg": "no score found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "score has been deleted"})
}
