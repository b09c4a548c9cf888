package services

import (
	"context"

	"github.com/SscSPs/todo_api/internal/core/domain"
	"github.com/SscSPs/todo_api/internal/dto"
)

// TodoReaderSvc defines read operations for a user's todos.
type TodoReaderSvc interface {
	// ListTodos filters, sorts and paginates the user's todos.
	ListTodos(ctx context.Context, userID int64, params dto.ListTodosParams) (*dto.ListTodosResponse, error)

	// GetTodo returns one of the user's todos.
	GetTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error)
}

// TodoWriterSvc defines write operations for a user's todos.
type TodoWriterSvc interface {
	CreateTodo(ctx context.Context, userID int64, req dto.CreateTodoRequest) (*domain.Todo, error)

	// UpdateTodo applies the fields present in req.
	UpdateTodo(ctx context.Context, userID, todoID int64, req dto.UpdateTodoRequest) (*domain.Todo, error)

	// DeleteTodo removes a todo and returns it.
	DeleteTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error)

	// ToggleTodo flips the completed flag.
	ToggleTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error)

	// ClearCompletedTodos removes every completed todo of the user and reports how many went.
	ClearCompletedTodos(ctx context.Context, userID int64) (int, error)
}

// TodoSvcFacade combines all todo-related service interfaces.
type TodoSvcFacade interface {
	TodoReaderSvc
	TodoWriterSvc
}
