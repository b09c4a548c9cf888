package dto

import "github.com/SscSPs/todo_api/internal/core/domain"

// CreateTodoRequest is the body of POST /todos. Text is checked by the service
// so an empty string and a missing field produce the same message.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest is the body of PUT /todos/:id. Only fields present in the
// body are applied.
type UpdateTodoRequest struct {
	Text      Optional[string] `json:"text" swaggertype:"string"`
	Completed Optional[bool]   `json:"completed" swaggertype:"boolean"`
}

// ListTodosParams defines query parameters for listing todos. Values stay raw
// strings; lenient parsing happens in the service.
type ListTodosParams struct {
	Page   string `form:"page"`
	Limit  string `form:"limit"`
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
}

// TodoResponse is the wire form of a todo.
type TodoResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UserID    int64  `json:"userId"`
}

// ListTodosResponse is one page of a user's todos.
type ListTodosResponse struct {
	Data       []TodoResponse `json:"data"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// ClearCompletedResponse reports how many completed todos were removed.
type ClearCompletedResponse struct {
	Deleted int `json:"deleted"`
}

func ToTodoResponse(todo *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt,
		UserID:    todo.UserID,
	}
}

// ToTodoResponses converts todos, always returning a non-nil slice.
func ToTodoResponses(todos []domain.Todo) []TodoResponse {
	out := make([]TodoResponse, len(todos))
	for i := range todos {
		out[i] = ToTodoResponse(&todos[i])
	}
	return out
}
