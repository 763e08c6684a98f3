// Package handler implements the single-endpoint action API. Every
// request names an action in the query string; the API resolves it in an
// immutable action table, authenticates the caller where required, runs
// the action against the repositories, and answers with the uniform
// {result, msg|error, ...} envelope.
package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/config"
	"github.com/nbolat/vidshare/internal/repository"
)

// EventSink receives domain events after a successful mutation. Publishing
// is best effort: the request outcome never depends on it, and a nil sink
// drops events entirely.
type EventSink interface {
	Publish(ctx context.Context, queueName string, payload any) error
}

// actionFunc runs one action. body is the request's JSON object, nil when
// the request carried none (read actions take parameters from the query
// string instead).
type actionFunc func(c echo.Context, body json.RawMessage) error

// API bundles the repositories behind the action catalog. The action
// table is built once in NewAPI and never mutated afterwards.
type API struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Sessions  repository.SessionStore
	Videos    *repository.VideoRepo
	Channels  *repository.ChannelRepo
	Subs      *repository.SubscriptionRepo
	Comments  *repository.CommentRepo
	Scores    *repository.ScoreRepo
	Playlists *repository.PlaylistRepo
	Events    EventSink

	actions map[string]actionFunc
}

// NewAPI constructs the API over one store handle and freezes the action
// table. events may be nil.
func NewAPI(cfg config.Config, db *sql.DB, events EventSink) *API {
	a := &API{
		Cfg:       cfg,
		Users:     repository.NewUserRepo(db),
		Sessions:  repository.NewSessionRepo(db),
		Videos:    repository.NewVideoRepo(db),
		Channels:  repository.NewChannelRepo(db),
		Subs:      repository.NewSubscriptionRepo(db),
		Comments:  repository.NewCommentRepo(db),
		Scores:    repository.NewScoreRepo(db),
		Playlists: repository.NewPlaylistRepo(db),
		Events:    events,
	}
	a.actions = map[string]actionFunc{
		"register":         a.register,
		"login":            a.login,
		"logout":           a.logout,
		"newvideo":         a.newVideo,
		"deletevideo":      a.deleteVideo,
		"newchannel":       a.newChannel,
		"deletechannel":    a.deleteChannel,
		"displaychannel":   a.displayChannel,
		"channelsubscribe": a.channelSubscribe,
		"addcomment":       a.addComment,
		"removecomment":    a.removeComment,
		"scorevideo":       a.scoreVideo,
		"scorecomment":     a.scoreComment,
		"newplaylist":      a.newPlaylist,
		"vidplaylist":      a.vidPlaylist,
		"mngplaylist":      a.mngPlaylist,
		"displayplaylist":  a.displayPlaylist,
		"displayuserinfo":  a.displayUserInfo,
		"getvideo":         a.getVideo,
		"search":           a.search,
	}
	return a
}

// Dispatch is the single HTTP entry point. The action name comes from the
// `action` query parameter; an unknown name fails with 404 regardless of
// body content, and a non-GET request whose body is not valid JSON fails
// with 400 before the action — and therefore the store — is touched.
func (a *API) Dispatch(c echo.Context) error {
	name := strings.ToLower(strings.TrimSpace(c.QueryParam("action")))
	act, ok := a.actions[name]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"result": false, "error": "invalid method"})
	}

	var body json.RawMessage
	if raw, err := io.ReadAll(c.Request().Body); err == nil {
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
			body = trimmed
		}
	}
	if body == nil && c.Request().Method != http.MethodGet {
		return c.JSON(http.StatusBadRequest, echo.Map{"result": false, "error": "invalid json"})
	}
	return act(c, body)
}

// ----- envelope helpers -----

// failed reports a recoverable business-rule violation: the envelope says
// failure but the transport status stays 200.
func failed(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, echo.Map{"result": false, "error": msg})
}

func failedStatus(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"result": false, "error": msg})
}

func missingParams(c echo.Context) error {
	return failedStatus(c, http.StatusBadRequest, "missing parameters")
}

func accessDenied(c echo.Context) error {
	return failedStatus(c, http.StatusForbidden, "access denied")
}

// internalError logs the cause with the action name and hides it behind
// the generic envelope. Every store failure funnels through here.
func internalError(c echo.Context, action string, err error) error {
	c.Logger().Errorf("%s: %v", action, err)
	return failedStatus(c, http.StatusInternalServerError, "internal server error")
}

// decodeInto unmarshals the request body into dst. A nil body or a field
// of the wrong type counts as missing parameters; the handler still has
// to nil-check its required pointer fields.
func decodeInto(body json.RawMessage, dst any) bool {
	if body == nil {
		return false
	}
	return json.Unmarshal(body, dst) == nil
}

// queryID parses a positive numeric query parameter for the read actions.
func queryID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(c.QueryParam(name)), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// publish hands an event to the sink, if any. Failures are already logged
// by the publisher and never affect the response.
func (a *API) publish(c echo.Context, queueName string, payload any) {
	if a.Events != nil {
		_ = a.Events.Publish(c.Request().Context(), queueName, payload)
	}
}
