package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/model"
	"github.com/nbolat/vidshare/internal/repository"
)

type newPlaylistReq struct {
	Name   *string `json:"name"`
	Public *bool   `json:"public"`
}

type vidPlaylistReq struct {
	PlaylistID *int64  `json:"playlist_id"`
	VideoID    *int64  `json:"videoid"`
	Method     *string `json:"method"`
}

type mngPlaylistReq struct {
	PlaylistID *int64  `json:"playlist_id"`
	Method     *string `json:"method"`
	Name       *string `json:"name"`
	Public     *bool   `json:"public"`
}

// validPlaylistName applies the shared name rules for creation and rename.
// It returns a failure message, or "" when the name is acceptable.
func validPlaylistName(name string) string {
	if name == "" {
		return "name is empty"
	}
	if len(name) > 50 {
		return "playlist name length is larger than 50"
	}
	if name == model.WatchLaterName {
		return "playlist name is reserved"
	}
	return ""
}

func (a *API) newPlaylist(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req newPlaylistReq
	if !decodeInto(body, &req) || req.Name == nil {
		return missingParams(c)
	}
	name := strings.TrimSpace(*req.Name)
	if msg := validPlaylistName(name); msg != "" {
		return failed(c, msg)
	}
	public := req.Public != nil && *req.Public

	_, err := a.Playlists.Create(c.Request().Context(), uid, name, public)
	if errors.Is(err, repository.ErrPlaylistExists) {
		return failed(c, "playlist already exists")
	}
	if err != nil {
		return internalError(c, "newplaylist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "playlist has been created"})
}

func (a *API) vidPlaylist(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req vidPlaylistReq
	if !decodeInto(body, &req) || req.PlaylistID == nil || req.VideoID == nil || req.Method == nil {
		return missingParams(c)
	}
	method := strings.ToLower(strings.TrimSpace(*req.Method))
	if method != "add" && method != "remove" {
		return failed(c, "invalid method. must be 'add' or 'remove'")
	}
	if *req.PlaylistID < 1 {
		return failed(c, "invalid playlist_id")
	}
	if *req.VideoID < 1 {
		return failed(c, "invalid videoid")
	}
	playlistID := uint64(*req.PlaylistID)
	videoID := uint64(*req.VideoID)

	ctx := c.Request().Context()
	// Membership is owner-only; a foreign playlist reads as missing.
	if _, err := a.Playlists.GetOwned(ctx, uid, playlistID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failed(c, "playlist not found")
		}
		return internalError(c, "vidplaylist", err)
	}
	exists, err := a.Videos.Exists(ctx, videoID)
	if err != nil {
		return internalError(c, "vidplaylist", err)
	}
	if !exists {
		return failed(c, fmt.Sprintf("videoid %d doesn't exist", videoID))
	}

	if method == "add" {
		err = a.Playlists.AddVideo(ctx, playlistID, videoID)
		if errors.Is(err, repository.ErrDuplicate) {
			return failed(c, "video already in playlist")
		}
		if err != nil {
			return internalError(c, "vidplaylist", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "video has been added to playlist"})
	}

	err = a.Playlists.RemoveVideo(ctx, playlistID, videoID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "video not in playlist")
	}
	if err != nil {
		return internalError(c, "vidplaylist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "video has been removed from playlist"})
}

func (a *API) mngPlaylist(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req mngPlaylistReq
	if !decodeInto(body, &req) || req.PlaylistID == nil || req.Method == nil {
		return missingParams(c)
	}
	method := strings.ToLower(strings.TrimSpace(*req.Method))
	if method != "delete" && method != "rename" && method != "visibility" {
		return failed(c, "invalid method. must be 'delete', 'rename' or 'visibility'")
	}
	if *req.PlaylistID < 1 {
		return failed(c, "invalid playlist_id")
	}
	playlistID := uint64(*req.PlaylistID)

	ctx := c.Request().Context()
	p, err := a.Playlists.GetOwned(ctx, uid, playlistID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "playlist not found")
	}
	if err != nil {
		return internalError(c, "mngplaylist", err)
	}

	switch method {
	case "delete":
		// The system list survives its owner's delete attempts; no delete
		// statement runs.
		if p.Name == model.WatchLaterName {
			return failed(c, "watch_later playlist cannot be deleted")
		}
		if err := a.Playlists.Delete(ctx, playlistID); err != nil {
			return internalError(c, "mngplaylist", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "playlist has been deleted"})

	case "rename":
		if p.Name == model.WatchLaterName {
			return failed(c, "watch_later playlist cannot be renamed")
		}
		if req.Name == nil {
			return missingParams(c)
		}
		name := strings.TrimSpace(*req.Name)
		if msg := validPlaylistName(name); msg != "" {
			return failed(c, msg)
		}
		err := a.Playlists.Rename(ctx, playlistID, name)
		if errors.Is(err, repository.ErrPlaylistExists) {
			return failed(c, "playlist already exists")
		}
		if err != nil {
			return internalError(c, "mngplaylist", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "playlist has been renamed"})

	default: // visibility
		if req.Public == nil {
			return missingParams(c)
		}
		if err := a.Playlists.SetVisibility(ctx, playlistID, *req.Public); err != nil {
			return internalError(c, "mngplaylist", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "playlist visibility has been updated"})
	}
}

func (a *API) displayPlaylist(c echo.Context, _ json.RawMessage) error {
	playlistID, ok := queryID(c, "playlist_id")
	if !ok {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}

	ctx := c.Request().Context()
	p, err := a.Playlists.Get(ctx, playlistID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "playlist not found")
	}
	if err != nil {
		return internalError(c, "displayplaylist", err)
	}
	// Private playlists exist only for their owner; everyone else gets the
	// same answer as for a missing id.
	if !p.IsPublic && a.currentUser(c) != p.UserID {
		return failed(c, "playlist not found")
	}

	videos, err := a.Playlists.ListVideos(ctx, playlistID)
	if err != nil {
		return internalError(c, "displayplaylist", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result": true,
		"playlist": echo.Map{
			"playlist_id": p.ID,
			"user_id":     p.UserID,
			"name":        p.Name,
			"public":      p.IsPublic,
			"created_at":  p.CreatedAt,
		},
		"videos": videos,
	})
}
