package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/queue"
	"github.com/nbolat/vidshare/internal/repository"
)

type newVideoReq struct {
	Title       *string `json:"title"`
	Filename    *string `json:"filename"`
	Description *string `json:"description"`
}

type deleteVideoReq struct {
	VideoID *int64 `json:"videoid"`
}

func (a *API) newVideo(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req newVideoReq
	if !decodeInto(body, &req) || req.Title == nil || req.Filename == nil || req.Description == nil {
		return missingParams(c)
	}
	title := strings.TrimSpace(*req.Title)
	filename := *req.Filename
	description := strings.TrimSpace(*req.Description)

	if title == "" {
		return failed(c, "title is empty")
	}
	if len(title) > 50 {
		return failed(c, "title length is larger than 50")
	}
	if filename == "" {
		return failed(c, "filename is empty")
	}
	if description == "" {
		return failed(c, "description is empty")
	}

	id, err := a.Videos.Create(c.Request().Context(), uid, title, filename, description)
	if err != nil {
		return internalError(c, "newvideo", err)
	}

	a.publish(c, queue.VideoUploadedQueue, queue.VideoUploadedEvent{
		VideoID:    id,
		UserID:     uid,
		Title:      title,
		Filename:   filename,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "video has been uploaded"})
}

func (a *API) deleteVideo(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req deleteVideoReq
	if !decodeInto(body, &req) || req.VideoID == nil {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}
	if *req.VideoID < 1 {
		return failed(c, "invalid videoid")
	}

	deleted, err := a.Videos.DeleteOwned(c.Request().Context(), uid, uint64(*req.VideoID))
	if err != nil {
		return internalError(c, "deletevideo", err)
	}
	// A video owned by someone else reads as not found; ownership is never
	// disclosed.
	if !deleted {
		return c.JSON(http.StatusOK, echo.Map{"result": false, "msg": "video not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "video has been deleted"})
}

func (a *API) getVideo(c echo.Context, _ json.RawMessage) error {
	videoID, ok := queryID(c, "videoid")
	if !ok {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}

	ctx := c.Request().Context()
	v, err := a.Videos.Get(ctx, videoID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "video not found")
	}
	if err != nil {
		return internalError(c, "getvideo", err)
	}

	likes, dislikes, err := a.Scores.VideoScoreCounts(ctx, videoID)
	if err != nil {
		return internalError(c, "getvideo", err)
	}
	comments, err := a.Comments.ListByVideo(ctx, videoID)
	if err != nil {
		return internalError(c, "getvideo", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result":   true,
		"video":    v,
		"likes":    likes,
		"dislikes": dislikes,
		"comments": comments,
	})
}

func (a *API) search(c echo.Context, _ json.RawMessage) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return failed(c, "query is empty")
	}

	videos, err := a.Videos.Search(c.Request().Context(), query, 50)
	if err != nil {
		return internalError(c, "search", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "videos": videos})
}
