package services

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/core/domain"
	portsrepo "github.com/SscSPs/todo_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/dto"
	"github.com/SscSPs/todo_api/internal/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type todoService struct {
	BaseService
	todoRepo portsrepo.TodoRepositoryFacade
	ids      *utils.IDGenerator
	now      func() time.Time
}

// NewTodoService creates the service behind /todos.
func NewTodoService(todoRepo portsrepo.TodoRepositoryFacade, ids *utils.IDGenerator) portssvc.TodoSvcFacade {
	return &todoService{
		todoRepo: todoRepo,
		ids:      ids,
		now:      time.Now,
	}
}

var _ portssvc.TodoSvcFacade = (*todoService)(nil)

func errTodoNotFound() error {
	return apperrors.New(apperrors.ErrNotFound, "Todo not found")
}

func errTextRequired() error {
	return apperrors.New(apperrors.ErrValidation, "Text is required")
}

// ListTodos selects the user's todos, applies the filter, sorts by creation
// time and returns the requested page. Out-of-range pages are clamped.
func (s *todoService) ListTodos(ctx context.Context, userID int64, params dto.ListTodosParams) (*dto.ListTodosResponse, error) {
	page := parsePositiveInt(params.Page, defaultPage)
	limit := parsePositiveInt(params.Limit, defaultLimit)
	filter := domain.ParseTodoFilter(params.Filter)
	order := domain.ParseTodoSort(params.Sort)

	owned, err := s.todoRepo.FindTodosByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := make([]domain.Todo, 0, len(owned))
	for _, t := range owned {
		if filter.Matches(t) {
			selected = append(selected, t)
		}
	}

	slices.SortStableFunc(selected, func(a, b domain.Todo) int {
		if order == domain.TodoSortOldFirst {
			return cmp.Compare(a.CreatedAtMillis(), b.CreatedAtMillis())
		}
		return cmp.Compare(b.CreatedAtMillis(), a.CreatedAtMillis())
	})

	total := len(selected)
	totalPages := max(1, int(math.Ceil(float64(total)/float64(limit))))
	page = min(page, totalPages)

	start := (page - 1) * limit
	end := min(start+limit, total)

	s.LogDebug(ctx, "Listed todos",
		slog.String("filter", string(filter)),
		slog.String("sort", string(order)),
		slog.Int("total", total),
		slog.Int("page", page))

	return &dto.ListTodosResponse{
		Data:       dto.ToTodoResponses(selected[start:end]),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *todoService) GetTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error) {
	todo, err := s.todoRepo.FindTodo(ctx, userID, todoID)
	if err != nil {
		return nil, mapTodoErr(err)
	}
	return todo, nil
}

func (s *todoService) CreateTodo(ctx context.Context, userID int64, req dto.CreateTodoRequest) (*domain.Todo, error) {
	if req.Text == "" {
		return nil, errTextRequired()
	}
	todo := domain.Todo{
		ID:        s.ids.Next(),
		Text:      req.Text,
		Completed: false,
		CreatedAt: domain.FormatTimestamp(s.now()),
		UserID:    userID,
	}
	if err := s.todoRepo.InsertTodo(ctx, todo); err != nil {
		s.LogError(ctx, err, "Failed to create todo")
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo overwrites only the fields present in req. A null completed
// clears the flag. Text must stay non-empty, so a null or empty text is
// rejected rather than written.
func (s *todoService) UpdateTodo(ctx context.Context, userID, todoID int64, req dto.UpdateTodoRequest) (*domain.Todo, error) {
	todo, err := s.todoRepo.ModifyTodo(ctx, userID, todoID, func(t *domain.Todo) error {
		if req.Text.Set {
			if req.Text.Null || req.Text.Value == "" {
				return errTextRequired()
			}
			t.Text = req.Text.Value
		}
		if req.Completed.Set {
			t.Completed = !req.Completed.Null && req.Completed.Value
		}
		return nil
	})
	if err != nil {
		return nil, s.mapWriteErr(ctx, err, todoID)
	}
	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error) {
	todo, err := s.todoRepo.DeleteTodo(ctx, userID, todoID)
	if err != nil {
		return nil, s.mapWriteErr(ctx, err, todoID)
	}
	return todo, nil
}

func (s *todoService) ToggleTodo(ctx context.Context, userID, todoID int64) (*domain.Todo, error) {
	todo, err := s.todoRepo.ModifyTodo(ctx, userID, todoID, func(t *domain.Todo) error {
		t.Completed = !t.Completed
		return nil
	})
	if err != nil {
		return nil, s.mapWriteErr(ctx, err, todoID)
	}
	return todo, nil
}

func (s *todoService) ClearCompletedTodos(ctx context.Context, userID int64) (int, error) {
	deleted, err := s.todoRepo.DeleteCompletedTodos(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear completed todos")
		return 0, err
	}
	s.LogInfo(ctx, "Cleared completed todos", slog.Int("deleted", deleted))
	return deleted, nil
}

// mapWriteErr keeps client-facing errors and logs storage failures.
func (s *todoService) mapWriteErr(ctx context.Context, err error, todoID int64) error {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
		return mapTodoErr(err)
	}
	s.LogError(ctx, err, "Failed to write todo", slog.Int64("todo_id", todoID))
	return err
}

func mapTodoErr(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return errTodoNotFound()
	}
	return err
}

// parsePositiveInt reads the leading integer of raw ("3abc" is 3). Missing,
// non-numeric or zero values fall back; negatives become one.
func parsePositiveInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return fallback
	}

	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		// Out of range: keep the sign, cap the magnitude.
		if raw[0] == '-' {
			return 1
		}
		return math.MaxInt32
	}
	if n == 0 {
		return fallback
	}
	return max(n, 1)
}
