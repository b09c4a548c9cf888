package repositories

import (
	"context"

	"github.com/SscSPs/todo_api/internal/core/domain"
)

// TodoReader defines read operations for todos. Every lookup is scoped to the owner.
type TodoReader interface {
	// FindTodosByUser returns all of userID's todos in stored order.
	FindTodosByUser(ctx context.Context, userID int64) ([]domain.Todo, error)

	// FindTodo returns the todo matching both todoID and userID, or apperrors.ErrNotFound.
	FindTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error)
}

// TodoWriter defines write operations for todos.
type TodoWriter interface {
	// InsertTodo stores todo at the front of the collection.
	InsertTodo(ctx context.Context, todo domain.Todo) error

	// ModifyTodo applies mutate to the todo matching todoID and userID and
	// persists the result. Returns apperrors.ErrNotFound when nothing matches;
	// an error from mutate aborts the write.
	ModifyTodo(ctx context.Context, userID, todoID int64, mutate func(*domain.Todo) error) (*domain.Todo, error)

	// DeleteTodo removes and returns the todo matching todoID and userID.
	DeleteTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error)

	// DeleteCompletedTodos removes all of userID's completed todos and reports how many went.
	DeleteCompletedTodos(ctx context.Context, userID int64) (int, error)
}

// TodoRepositoryFacade combines all todo-related repository interfaces
type TodoRepositoryFacade interface {
	TodoReader
	TodoWriter
}
