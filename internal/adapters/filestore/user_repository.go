package filestore

import (
	"context"
	"fmt"

	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
)

const usersFile = "users.json"

type fileUserRepository struct {
	users *Collection[domain.User]
}

func newFileUserRepository(users *Collection[domain.User]) *fileUserRepository {
	return &fileUserRepository{users: users}
}

// Ensure fileUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*fileUserRepository)(nil)

func (r *fileUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	for _, u := range r.users.Load(ctx) {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fileUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users.Load(ctx) {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fileUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	err := r.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, apperrors.ErrDuplicate
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return fmt.Errorf("save user %d: %w", user.ID, err)
	}
	return nil
}

func (r *fileUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	err := r.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = user
				return users, nil
			}
		}
		return nil, apperrors.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return nil
}
