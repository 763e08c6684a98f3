package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nbolat/vidshare/internal/repository"
)

// credentialHeader carries "<user_id>,<hex token>" on authenticated calls.
const credentialHeader = "X-Token"

// currentUser resolves the credential header to a user id. Anything short
// of an exact match against the stored session — absent header, malformed
// shape, unknown user, stale token, or a store failure — yields 0
// (anonymous). A guard failure must never grant access, so store errors
// fail closed rather than fatal.
func (a *API) currentUser(c echo.Context) uint64 {
	header := c.Request().Header.Get(credentialHeader)
	if header == "" {
		return 0
	}
	parts := strings.Split(header, ",")
	if len(parts) != 2 {
		return 0
	}
	uid, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || uid < 1 {
		return 0
	}
	ok, err := a.Sessions.Validate(c.Request().Context(), uid, parts[1])
	if err != nil || !ok {
		return 0
	}
	return uid
}

type registerReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
}

type loginReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (a *API) register(c echo.Context, body json.RawMessage) error {
	var req registerReq
	if !decodeInto(body, &req) || req.Username == nil || req.Password == nil || req.Email == nil {
		return missingParams(c)
	}
	username := strings.TrimSpace(*req.Username)
	password := *req.Password
	email := strings.TrimSpace(*req.Email)

	if len(username) < 4 {
		return failed(c, "username length is less than 4 characters")
	}
	if len(password) < 6 {
		return failed(c, "password length is less than 6 characters")
	}

	_, err := a.Users.Create(c.Request().Context(), username, password, email, a.Cfg.BcryptCost)
	switch {
	case errors.Is(err, repository.ErrUsernameExists):
		return failed(c, "username already exists")
	case errors.Is(err, repository.ErrEmailExists):
		return failed(c, "email already exists")
	case err != nil:
		return internalError(c, "register", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result":   true,
		"msg":      "new user created",
		"username": username,
		"email":    email,
	})
}

func (a *API) login(c echo.Context, body json.RawMessage) error {
	var req loginReq
	if !decodeInto(body, &req) || req.Username == nil || req.Password == nil {
		return missingParams(c)
	}
	username := strings.TrimSpace(*req.Username)
	password := *req.Password

	if username == "" {
		return failed(c, "username is empty")
	}
	if password == "" {
		return failed(c, "password is empty")
	}

	ctx := c.Request().Context()
	uid, err := a.Users.Verify(ctx, username, password)
	if errors.Is(err, repository.ErrNotFound) {
		return failed(c, "invalid username/password")
	}
	if err != nil {
		return internalError(c, "login", err)
	}

	token, err := a.Sessions.Issue(ctx, uid)
	if err != nil {
		return internalError(c, "login", err)
	}

	// The composite credential must be presented verbatim on later calls.
	return c.JSON(http.StatusOK, echo.Map{
		"result": true,
		"msg":    "successful login",
		"token":  fmt.Sprintf("%d,%s", uid, token),
	})
}

func (a *API) logout(c echo.Context, _ json.RawMessage) error {
	uid := a.currentUser(c)
	if uid == 0 {
		return accessDenied(c)
	}
	// Revoking an already-revoked session is fine; logout is idempotent.
	if err := a.Sessions.Revoke(c.Request().Context(), uid); err != nil {
		return internalError(c, "logout", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"result": true, "msg": "successfully logged out"})
}
