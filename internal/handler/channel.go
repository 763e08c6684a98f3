package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/repository"
)

type newChannelReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageName   *string `json:"imagename"`
}

type deleteChannelReq struct {
	ChannelID *int64 `json:"channel_id"`
}

type subscribeReq struct {
	ChannelID *int64  `json:"channel_id"`
	Method    *string `json:"method"`
}

func (a *API) newChannel(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req newChannelReq
	if !decodeInto(body, &req) || req.Name == nil || req.Description == nil || req.ImageName == nil {
		return missingParams(c)
	}
	name := strings.TrimSpace(*req.Name)
	description := strings.TrimSpace(*req.Description)
	imageName := strings.TrimSpace(*req.ImageName)

	if name == "" {
		return failed(c, "name is empty")
	}
	if len(name) > 50 {
		return failed(c, "channel name length is larger than 50")
	}
	if description == "" {
		return failed(c, "description is empty")
	}
	// The image is uploaded out of band and renamed after the channel id
	// is known; only presence is validated here.
	if imageName == "" {
		return failed(c, "image_name is empty")
	}

	if _, err := a.Channels.Create(c.Request().Context(), uid, name, description); err != nil {
		return internalError(c, "newchannel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "channel has been created"})
}

func (a *API) deleteChannel(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req deleteChannelReq
	if !decodeInto(body, &req) || req.ChannelID == nil {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}
	if *req.ChannelID < 1 {
		return failed(c, "invalid channel_id")
	}

	deleted, err := a.Channels.DeleteOwned(c.Request().Context(), uid, uint64(*req.ChannelID))
	if err != nil {
		return internalError(c, "deletechannel", err)
	}
	if !deleted {
		return c.JSON(http.StatusOK, echo.Map{"result": false, "msg": "channel not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "channel has been deleted"})
}

func (a *API) displayChannel(c echo.Context, _ json.RawMessage) error {
	channelID, ok := queryID(c, "channel_id")
	if !ok {
		return failedStatus(c, http.StatusBadRequest, "missing/invalid parameters")
	}

	ctx := c.Request().Context()
	ch, err := a.Channels.Get(ctx, channelID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "channel not found")
	}
	if err != nil {
		return internalError(c, "displaychannel", err)
	}

	subscribers, err := a.Channels.SubscriberCount(ctx, channelID)
	if err != nil {
		return internalError(c, "displaychannel", err)
	}
	videos, err := a.Videos.ListByOwner(ctx, ch.UserID)
	if err != nil {
		return internalError(c, "displaychannel", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result":      true,
		"channel":     ch,
		"subscribers": subscribers,
		"videos":      videos,
	})
}

func (a *API) channelSubscribe(c echo.Context, body json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}

	var req subscribeReq
	if !decodeInto(body, &req) || req.ChannelID == nil || req.Method == nil {
		return missingParams(c)
	}
	method := strings.ToLower(strings.TrimSpace(*req.Method))
	if method != "add" && method != "remove" {
		return failed(c, "invalid method. must be 'add' or 'remove'")
	}
	if *req.ChannelID < 1 {
		return failed(c, "invalid channel_id")
	}
	channelID := uint64(*req.ChannelID)

	ctx := c.Request().Context()
	exists, err := a.Channels.Exists(ctx, channelID)
	if err != nil {
		return internalError(c, "channelsubscribe", err)
	}
	if !exists {
		return failed(c, fmt.Sprintf("channel_id %d doesn't exist", channelID))
	}

	if method == "add" {
		err = a.Subs.Subscribe(ctx, uid, channelID)
		if errors.Is(err, repository.ErrDuplicate) {
			return failed(c, "already subscribed")
		}
		if err != nil {
			return internalError(c, "channelsubscribe", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "subscribed to channel"})
	}

	err = a.Subs.Unsubscribe(ctx, uid, channelID)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "not subscribed")
	}
	if err != nil {
		return internalError(c, "channelsubscribe", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "unsubscribed from channel"})
}
