package filestore

import (
	"context"
	"fmt"

	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
)

const todosFile = "todos.json"

type fileTodoRepository struct {
	todos *Collection[domain.Todo]
}

func newFileTodoRepository(todos *Collection[domain.Todo]) *fileTodoRepository {
	return &fileTodoRepository{todos: todos}
}

var _ portsrepo.TodoRepositoryFacade = (*fileTodoRepository)(nil)

func (r *fileTodoRepository) FindTodosByUser(ctx context.Context, userID int64) ([]domain.Todo, error) {
	owned := []domain.Todo{}
	for _, t := range r.todos.Load(ctx) {
		if t.IsOwnedBy(userID) {
			owned = append(owned, t)
		}
	}
	return owned, nil
}

func (r *fileTodoRepository) FindTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error) {
	todos := r.todos.Load(ctx)
	if i := indexOfTodo(todos, userID, todoID); i >= 0 {
		return &todos[i], nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fileTodoRepository) InsertTodo(ctx context.Context, todo domain.Todo) error {
	err := r.todos.Update(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		return append([]domain.Todo{todo}, todos...), nil
	})
	if err != nil {
		return fmt.Errorf("insert todo %d: %w", todo.ID, err)
	}
	return nil
}

func (r *fileTodoRepository) ModifyTodo(ctx context.Context, userID, todoID int64, mutate func(*domain.Todo) error) (*domain.Todo, error) {
	var updated domain.Todo
	err := r.todos.Update(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		i := indexOfTodo(todos, userID, todoID)
		if i < 0 {
			return nil, apperrors.ErrNotFound
		}
		if err := mutate(&todos[i]); err != nil {
			return nil, err
		}
		updated = todos[i]
		return todos, nil
	})
	if err != nil {
		return nil, fmt.Errorf("modify todo %d: %w", todoID, err)
	}
	return &updated, nil
}

func (r *fileTodoRepository) DeleteTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error) {
	var removed domain.Todo
	err := r.todos.Update(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		i := indexOfTodo(todos, userID, todoID)
		if i < 0 {
			return nil, apperrors.ErrNotFound
		}
		removed = todos[i]
		return append(todos[:i], todos[i+1:]...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete todo %d: %w", todoID, err)
	}
	return &removed, nil
}

func (r *fileTodoRepository) DeleteCompletedTodos(ctx context.Context, userID int64) (int, error) {
	deleted := 0
	err := r.todos.Update(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		kept := todos[:0]
		for _, t := range todos {
			if t.IsOwnedBy(userID) && t.Completed {
				deleted++
				continue
			}
			kept = append(kept, t)
		}
		return kept, nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete completed todos: %w", err)
	}
	return deleted, nil
}

func indexOfTodo(todos []domain.Todo, userID, todoID int64) int {
	for i := range todos {
		if todos[i].ID == todoID && todos[i].IsOwnedBy(userID) {
			return i
		}
	}
	return -1
}
