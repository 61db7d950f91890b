package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nandapratama/todo-share-api/internal/authz"
	"github.com/nandapratama/todo-share-api/internal/models"
	"github.com/nandapratama/todo-share-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrShareNotFound       = errors.New("share not found")
	ErrRecipientNotFound   = errors.New("user with that email not found")
	ErrAlreadyShared       = errors.New("todo already shared with this user")
	ErrCannotShareWithSelf = errors.New("cannot share a todo with its owner")
)

// ShareService handles the share registry business logic.
type ShareService struct {
	shareRepo repository.ShareRepository
	todoRepo  repository.TodoRepository
	userRepo  repository.UserRepository
	evaluator *authz.Evaluator
}

// NewShareService creates a new ShareService.
func NewShareService(
	shareRepo repository.ShareRepository,
	todoRepo repository.TodoRepository,
	userRepo repository.UserRepository,
	evaluator *authz.Evaluator,
) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		todoRepo:  todoRepo,
		userRepo:  userRepo,
		evaluator: evaluator,
	}
}

// ShareTodoInput represents input for sharing a todo with another user.
type ShareTodoInput struct {
	ActorID        uint64
	TodoID         uint64
	RecipientEmail string
	CanEdit        bool
}

// ShareTodo grants another user access to the actor's todo. The recipient is
// resolved by email. A duplicate (todo, recipient) pair is a conflict, never
// an upsert.
func (s *ShareService) ShareTodo(input ShareTodoInput) (*models.TodoShare, error) {
	todo, err := s.todoRepo.FindByID(input.TodoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if err := s.evaluator.CanShare(input.ActorID, todo); err != nil {
		return nil, err
	}

	recipient, err := s.userRepo.FindByEmail(strings.TrimSpace(input.RecipientEmail))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	if recipient.ID == todo.OwnerID {
		return nil, ErrCannotShareWithSelf
	}

	share := &models.TodoShare{
		TodoID:           todo.ID,
		SharedWithUserID: recipient.ID,
		CanEdit:          input.CanEdit,
	}

	if err := s.shareRepo.Create(share); err != nil {
		if errors.Is(err, repository.ErrDuplicateShare) {
			return nil, ErrAlreadyShared
		}
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	return s.shareRepo.FindByID(share.ID, "Todo", "SharedWithUser")
}

// ListReceived returns all shares where the actor is the recipient, with the
// todo and its owner loaded.
func (s *ShareService) ListReceived(actorID uint64) ([]models.TodoShare, error) {
	shares, err := s.shareRepo.ListByRecipient(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received shares: %w", err)
	}
	return shares, nil
}

// ListGiven returns the actor's todos that have at least one share, with all
// recipients loaded.
func (s *ShareService) ListGiven(actorID uint64) ([]models.Todo, error) {
	todos, err := s.shareRepo.ListTodosSharedByOwner(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list given shares: %w", err)
	}
	return todos, nil
}

// UpdatePermissionInput represents input for changing a share's can_edit
// flag.
type UpdatePermissionInput struct {
	ActorID          uint64
	TodoID           uint64
	SharedWithUserID uint64
	CanEdit          bool
}

// UpdatePermission changes the can_edit flag of an existing share. Only the
// owner may change permissions; a missing share is not-found and mutates
// nothing.
func (s *ShareService) UpdatePermission(input UpdatePermissionInput) (*models.TodoShare, error) {
	todo, err := s.todoRepo.FindByID(input.TodoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	if err := s.evaluator.CanChangeSharePermission(input.ActorID, todo); err != nil {
		return nil, err
	}

	if err := s.shareRepo.UpdatePermission(todo.ID, input.SharedWithUserID, input.CanEdit); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("failed to update share permission: %w", err)
	}

	return s.shareRepo.FindByTodoAndUser(todo.ID, input.SharedWithUserID)
}

// Unshare revokes a share by ID. Both the todo's owner and the recipient may
// revoke.
func (s *ShareService) Unshare(actorID, shareID uint64) error {
	share, err := s.shareRepo.FindByID(shareID, "Todo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShareNotFound
		}
		return fmt.Errorf("failed to find share: %w", err)
	}

	if err := s.evaluator.CanUnshare(actorID, &share.Todo, share); err != nil {
		return err
	}

	if err := s.shareRepo.Delete(share.ID); err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}

	return nil
}
