// Package authz holds the todo permission matrix in one place. Handlers and
// services consult the Evaluator before every mutating or sensitive read
// operation instead of repeating ownership checks inline.
package authz

import (
	"errors"
	"fmt"

	"github.com/nandapratama/todo-share-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrUnauthenticated means no actor identity was established.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the entity exists but the actor lacks the capability.
	ErrForbidden = errors.New("permission denied")
)

// ShareFinder is the single read the evaluator may perform itself: looking
// up the share for a (todo, recipient) pair. A missing share is reported as
// gorm.ErrRecordNotFound.
type ShareFinder interface {
	FindByTodoAndUser(todoID, userID uint64) (*models.TodoShare, error)
}

// Evaluator decides whether an actor may perform an action on a todo.
type Evaluator struct {
	shares ShareFinder
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(shares ShareFinder) *Evaluator {
	return &Evaluator{shares: shares}
}

// CanView allows the owner and any share recipient, regardless of can_edit.
func (e *Evaluator) CanView(actorID uint64, todo *models.Todo) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}
	if todo.OwnerID == actorID {
		return nil
	}

	if _, err := e.findShare(todo.ID, actorID); err != nil {
		return err
	}
	return nil
}

// CanEdit allows the owner and recipients whose share has can_edit set.
func (e *Evaluator) CanEdit(actorID uint64, todo *models.Todo) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}
	if todo.OwnerID == actorID {
		return nil
	}

	share, err := e.findShare(todo.ID, actorID)
	if err != nil {
		return err
	}
	if !share.CanEdit {
		return ErrForbidden
	}
	return nil
}

// CanDelete allows only the owner. Shares never grant delete.
func (e *Evaluator) CanDelete(actorID uint64, todo *models.Todo) error {
	return e.requireOwner(actorID, todo)
}

// CanShare allows only the owner.
func (e *Evaluator) CanShare(actorID uint64, todo *models.Todo) error {
	return e.requireOwner(actorID, todo)
}

// CanChangeSharePermission allows only the owner.
func (e *Evaluator) CanChangeSharePermission(actorID uint64, todo *models.Todo) error {
	return e.requireOwner(actorID, todo)
}

// CanUnshare allows the todo's owner and the share's recipient: either side
// may revoke.
func (e *Evaluator) CanUnshare(actorID uint64, todo *models.Todo, share *models.TodoShare) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}
	if todo.OwnerID == actorID || share.SharedWithUserID == actorID {
		return nil
	}
	return ErrForbidden
}

func (e *Evaluator) requireOwner(actorID uint64, todo *models.Todo) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}
	if todo.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}

func (e *Evaluator) findShare(todoID, actorID uint64) (*models.TodoShare, error) {
	share, err := e.shares.FindByTodoAndUser(todoID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to look up share: %w", err)
	}
	return share, nil
}
