package domain

import "strings"

// Todo is a single task owned by exactly one user.
type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UserID    int64  `json:"userId"`
}

// CreatedAtMillis returns the creation time in Unix milliseconds, 0 when unparsable.
func (t *Todo) CreatedAtMillis() int64 {
	return ParseTimestamp(t.CreatedAt).UnixMilli()
}

// IsOwnedBy reports whether the todo belongs to userID.
func (t *Todo) IsOwnedBy(userID int64) bool {
	return t.UserID == userID
}

// TodoFilter selects todos by completion state.
type TodoFilter string

const (
	TodoFilterAll       TodoFilter = "all"
	TodoFilterCompleted TodoFilter = "completed"
	TodoFilterActive    TodoFilter = "active"
)

// ParseTodoFilter maps a query value to a filter; unknown values select everything.
func ParseTodoFilter(raw string) TodoFilter {
	switch TodoFilter(raw) {
	case TodoFilterCompleted:
		return TodoFilterCompleted
	case TodoFilterActive:
		return TodoFilterActive
	default:
		return TodoFilterAll
	}
}

// Matches reports whether todo passes the filter.
func (f TodoFilter) Matches(todo Todo) bool {
	switch f {
	case TodoFilterCompleted:
		return todo.Completed
	case TodoFilterActive:
		return !todo.Completed
	default:
		return true
	}
}

// TodoSort orders todos by creation time.
type TodoSort string

const (
	TodoSortNewFirst TodoSort = "newFirst"
	TodoSortOldFirst TodoSort = "oldFirst"
)

// ParseTodoSort is case-insensitive; anything other than oldFirst sorts newest first.
func ParseTodoSort(raw string) TodoSort {
	if strings.ToLower(raw) == strings.ToLower(string(TodoSortOldFirst)) {
		return TodoSortOldFirst
	}
	return TodoSortNewFirst
}
