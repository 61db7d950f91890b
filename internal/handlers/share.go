package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nandapratama/todo-share-api/internal/authz"
	"github.com/nandapratama/todo-share-api/internal/dto"
	apierrors "github.com/nandapratama/todo-share-api/internal/errors"
	"github.com/nandapratama/todo-share-api/internal/middleware"
	"github.com/nandapratama/todo-share-api/internal/services"
)

// ShareHandler coordinates share registry HTTP handlers.
type ShareHandler struct {
	shareService *services.ShareService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// ShareTodo shares a todo with another user, identified by email.
func (h *ShareHandler) ShareTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ShareTodoRequest struct {
		TodoID          uint64 `json:"todo_id" binding:"required"`
		SharedWithEmail string `json:"shared_with_email" binding:"required,email"`
		CanEdit         bool   `json:"can_edit"`
	}

	var req ShareTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	share, err := h.shareService.ShareTodo(services.ShareTodoInput{
		ActorID:        userID,
		TodoID:         req.TodoID,
		RecipientEmail: req.SharedWithEmail,
		CanEdit:        req.CanEdit,
	})
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShareDTO(*share))
}

// ListReceived returns todos shared with the current user.
func (h *ShareHandler) ListReceived(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shares, err := h.shareService.ListReceived(userID)
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shares": dto.ToShareDTOs(shares),
	})
}

// ListGiven returns the current user's todos that have been shared, with all
// recipients.
func (h *ShareHandler) ListGiven(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todos, err := h.shareService.ListGiven(userID)
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"todos": dto.ToSharedTodoDTOs(todos),
	})
}

// UpdatePermission changes the can_edit flag of an existing share.
func (h *ShareHandler) UpdatePermission(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdatePermissionRequest struct {
		TodoID           uint64 `json:"todo_id" binding:"required"`
		SharedWithUserID uint64 `json:"shared_with_user_id" binding:"required"`
		CanEdit          *bool  `json:"can_edit" binding:"required"`
	}

	var req UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	share, err := h.shareService.UpdatePermission(services.UpdatePermissionInput{
		ActorID:          userID,
		TodoID:           req.TodoID,
		SharedWithUserID: req.SharedWithUserID,
		CanEdit:          *req.CanEdit,
	})
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShareDTO(*share))
}

// Unshare revokes a share by ID. The todo's owner and the recipient may both
// revoke.
func (h *ShareHandler) Unshare(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	shareID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid share ID")
		return
	}

	if err := h.shareService.Unshare(userID, shareID); err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo unshared successfully",
	})
}

func respondShareError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, authz.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTodoNotFound),
		errors.Is(err, services.ErrShareNotFound),
		errors.Is(err, services.ErrRecipientNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyShared):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotShareWithSelf):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
