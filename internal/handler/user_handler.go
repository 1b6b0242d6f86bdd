package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
	"github.com/gin-gonic/gin"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	DeleteUser(context.Context, cqrs.DeleteUserCommand) (*models.UserView, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	ListUsers(context.Context, cqrs.ListUsersQuery) ([]models.UserView, error)
}

// UserHandler serves user management for owners.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserView
// @Failure 403 {object} middleware.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	users, err := h.queries.ListUsers(c.Request.Context(), cqrs.ListUsersQuery{Viewer: identity})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete a user and all of their transactions
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserView
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	deleted, err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{UserID: id, Actor: identity})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, deleted)
}
