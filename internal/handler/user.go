package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/repository"
)

func (a *API) displayUserInfo(c echo.Context, _ json.RawMessage) error {
	userID, ok := queryID(c, "userid")
	if !ok {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}

	ctx := c.Request().Context()
	u, err := a.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "user not found")
	}
	if err != nil {
		return internalError(c, "displayuserinfo", err)
	}

	channels, err := a.Channels.ListByOwner(ctx, userID)
	if err != nil {
		return internalError(c, "displayuserinfo", err)
	}
	playlists, err := a.Playlists.ListPublicByOwner(ctx, userID)
	if err != nil {
		return internalError(c, "displayuserinfo", err)
	}

	playlistInfo := make([]echo.Map, 0, len(playlists))
	for _, p := range playlists {
		playlistInfo = append(playlistInfo, echo.Map{
			"playlist_id": p.ID,
			"name":        p.Name,
			"created_at":  p.CreatedAt,
		})
	}

	user := echo.Map{
		"userid":   u.ID,
		"username": u.Username,
		"reg_date": u.RegDate,
	}
	// The email is private; only the profile's owner sees it.
	if a.currentUser(c) == u.ID {
		user["email"] = u.Email
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result":    true,
		"user":      user,
		"channels":  channels,
		"playlists": playlistInfo,
	})
}
