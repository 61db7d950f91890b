package services

import (
	"testing"

	"github.com/nandapratama/todo-share-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubUserRepo models a concurrent registration landing between the
// uniqueness lookups and the insert: the lookups miss, the insert hits the
// unique index.
type stubUserRepo struct {
	createErr  error
	emailTaken bool
	emailCalls int
}

func (s *stubUserRepo) Create(user *models.User) error {
	return s.createErr
}

func (s *stubUserRepo) FindByID(id uint64) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(email string) (*models.User, error) {
	s.emailCalls++
	if s.emailCalls > 1 && s.emailTaken {
		return &models.User{ID: 1, Email: email}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByUsername(username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByIdentifier(identifier string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestAuthService_Register_DuplicateOnCreate(t *testing.T) {
	input := RegisterInput{
		Username: "racer",
		Fullname: "Racer Test",
		Email:    "racer@example.com",
		Password: "supersecret",
	}

	t.Run("email conflict", func(t *testing.T) {
		repo := &stubUserRepo{createErr: gorm.ErrDuplicatedKey, emailTaken: true}
		service := NewAuthService(repo)

		_, err := service.Register(input)
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("username conflict", func(t *testing.T) {
		repo := &stubUserRepo{createErr: gorm.ErrDuplicatedKey}
		service := NewAuthService(repo)

		_, err := service.Register(input)
		require.ErrorIs(t, err, ErrUsernameTaken)
	})
}
