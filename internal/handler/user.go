package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-report-api/internal/auth"
	"github.com/ecotrack/waste-report-api/internal/config"
	"github.com/ecotrack/waste-report-api/internal/middleware"
	"github.com/ecotrack/waste-report-api/internal/model"
	"github.com/ecotrack/waste-report-api/internal/repository"
)

// UserHandler serves the profile endpoints (/users/me) and the
// superuser-only user management endpoints (/users, /users/:id).
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

// updateMeReq carries the fields a caller may change on their own profile.
type updateMeReq struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

// updateUserReq extends the profile fields with the flags only a superuser
// may touch.
type updateUserReq struct {
	Email       *string `json:"email"`
	FullName    *string `json:"full_name"`
	Password    *string `json:"password"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
}

func userPasswordUpdate(hash string) model.UserUpdate {
	return model.UserUpdate{PasswordHash: &hash}
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateMe updates the caller's own profile. The active and superuser flags
// are not bindable here, whatever the body says.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateMeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd, badReq := h.buildUpdate(req.Email, req.FullName, req.Password)
	if badReq != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": badReq})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Update(ctx, id.ID, upd); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	u, err := h.Users.GetByID(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// List returns all users. Reached only through the superuser route group.
func (h *UserHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID returns an arbitrary user record (superuser only).
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateByID updates an arbitrary user record (superuser only), including
// the active and superuser flags.
func (h *UserHandler) UpdateByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	upd, badReq := h.buildUpdate(req.Email, req.FullName, req.Password)
	if badReq != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": badReq})
	}
	upd.IsActive = req.IsActive
	upd.IsSuperuser = req.IsSuperuser

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Users.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// DeleteByID removes a user record (superuser only).
func (h *UserHandler) DeleteByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// buildUpdate validates and assembles the shared profile fields of an
// update. It returns a non-empty message when the input is rejected.
func (h *UserHandler) buildUpdate(email, fullName, password *string) (model.UserUpdate, string) {
	var upd model.UserUpdate
	if email != nil {
		e := strings.ToLower(strings.TrimSpace(*email))
		if e == "" {
			return upd, "email must not be empty"
		}
		upd.Email = &e
	}
	if fullName != nil {
		upd.FullName = fullName
	}
	if password != nil {
		if *password == "" {
			return upd, "password must not be empty"
		}
		hash, err := auth.HashPassword(*password, h.Cfg.BcryptCost)
		if err != nil {
			return upd, "invalid password"
		}
		upd.PasswordHash = &hash
	}
	return upd, ""
}
