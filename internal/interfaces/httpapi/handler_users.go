package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/pickempool/pickem-api/internal/domain/user"
	"github.com/pickempool/pickem-api/internal/usecase"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req usernameRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.userService.Login(ctx, req.Username)
	if err != nil {
		// Unknown username is a signup hint, not a failure page.
		if errors.Is(err, usecase.ErrNotFound) {
			writeJSON(ctx, w, http.StatusNotFound, canCreateDTO{CanCreate: true})
			return
		}
		h.logger.WarnContext(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, userToDTO(u))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateUser")
	defer span.End()

	var req usernameRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.userService.CreateUser(ctx, req.Username)
	if err != nil {
		h.logger.WarnContext(ctx, "create user failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, userToDTO(u))
}

type usernameRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type canCreateDTO struct {
	CanCreate bool `json:"canCreate"`
}

type userDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{UserID: u.ID, Username: u.Username}
}
