package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/queue"
)

type addCommentReq struct {
	VideoID *int64  `json:"videoid"`
	Comment *string `json:"comment"`
	ReplyTo *int64  `json:"reply_to"`
}

type removeCommentReq struct {
	CommentID *int64 `json:"comment_id"`
}

func (a *API) addComment(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req addCommentReq
	if !decodeInto(body, &req) || req.VideoID == nil || req.Comment == nil {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}
	comment := strings.TrimSpace(*req.Comment)

	if *req.VideoID < 1 {
		return failed(c, "invalid video_id")
	}
	if comment == "" {
		return failed(c, "empty comment")
	}
	var replyTo int64
	if req.ReplyTo != nil {
		replyTo = *req.ReplyTo
		if replyTo < 0 {
			return failed(c, "invalid reply_to")
		}
	}
	videoID := uint64(*req.VideoID)

	ctx := c.Request().Context()
	exists, err := a.Videos.Exists(ctx, videoID)
	if err != nil {
		return internalError(c, "addcomment", err)
	}
	if !exists {
		return failed(c, fmt.Sprintf("videoid %d doesn't exist", videoID))
	}

	// A reply must name a comment that already exists, which keeps the
	// comment tree free of cycles.
	if replyTo > 0 {
		exists, err := a.Comments.Exists(ctx, uint64(replyTo))
		if err != nil {
			return internalError(c, "addcomment", err)
		}
		if !exists {
			return failed(c, fmt.Sprintf("comment_id %d doesn't exist", replyTo))
		}
	}

	id, err := a.Comments.Create(ctx, uid, videoID, uint64(replyTo), comment)
	if err != nil {
		return internalError(c, "addcomment", err)
	}

	a.publish(c, queue.CommentAddedQueue, queue.CommentAddedEvent{
		CommentID:   id,
		VideoID:     videoID,
		UserID:      uid,
		ParentID:    uint64(replyTo),
		Comment:     comment,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "comment has been submited"})
}

func (a *API) removeComment(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req removeCommentReq
	if !decodeInto(body, &req) || req.CommentID == nil {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}
	if *req.CommentID < 1 {
		return failed(c, "invalid comment_id")
	}

	deleted, err := a.Comments.DeleteOwned(c.Request().Context(), uid, uint64(*req.CommentID))
	if err != nil {
		return internalError(c, "removecomment", err)
	}
	if !deleted {
		return c.JSON(http.StatusOK, echo.Map{"result": false, "msg": "comment not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "comment has been deleted"})
}
