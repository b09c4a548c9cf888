package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/todo_api/internal/apperrors"
	portssvc "github.com/SscSPs/todo_api/internal/core/ports/services"
	"github.com/SscSPs/todo_api/internal/dto"
	"github.com/SscSPs/todo_api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// todoHandler handles HTTP requests for the authenticated user's todos.
type todoHandler struct {
	todoService portssvc.TodoSvcFacade
}

func newTodoHandler(ts portssvc.TodoSvcFacade) *todoHandler {
	return &todoHandler{todoService: ts}
}

// registerTodoRoutes registers all todo routes on an authenticated group.
func registerTodoRoutes(rg *gin.RouterGroup, todoService portssvc.TodoSvcFacade) {
	h := newTodoHandler(todoService)

	todos := rg.Group("/todos")
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)
		todos.DELETE("/completed", h.clearCompleted)
		todos.GET("/:id", h.getTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
		todos.PATCH("/:id/toggle", h.toggleTodo)
	}
}

// requireUser returns the authenticated user id, or writes 401 and reports false.
func requireUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// todoIDParam reads the leading integer of the :id path segment ("12abc" is 12).
// A segment with no usable integer cannot name a todo, so it is answered as not found.
func todoIDParam(c *gin.Context) (int64, bool) {
	todoID, ok := leadingInt(c.Param("id"))
	if !ok {
		respondError(c, apperrors.New(apperrors.ErrNotFound, "Todo not found"))
		return 0, false
	}
	return todoID, true
}

func leadingInt(raw string) (int64, bool) {
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
		return 0, false
	}
	n, err := strconv.ParseInt(raw[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// listTodos godoc
// @Summary List todos
// @Description Returns one page of the user's todos after filtering and sorting by creation time.
// @Tags todos
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param filter query string false "all, completed or active"
// @Param sort query string false "newFirst or oldFirst"
// @Success 200 {object} dto.ListTodosResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos [get]
func (h *todoHandler) listTodos(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var params dto.ListTodosParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, bindError(err, "Invalid query parameters"))
		return
	}

	resp, err := h.todoService.ListTodos(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTodo godoc
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Todo not found"
// @Security BearerAuth
// @Router /todos/{id} [get]
func (h *todoHandler) getTodo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(c)
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTodoResponse(todo))
}

// createTodo godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body dto.CreateTodoRequest true "Todo text"
// @Success 201 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse "Text is required"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos [post]
func (h *todoHandler) createTodo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, bindError(err, "Text is required"))
		return
	}

	todo, err := h.todoService.CreateTodo(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Todo created", slog.Int64("todo_id", todo.ID))
	c.JSON(http.StatusCreated, dto.ToTodoResponse(todo))
}

// updateTodo godoc
// @Summary Update a todo
// @Description Overwrites only the fields present in the body. A null completed clears the flag.
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param todo body dto.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Todo not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [put]
func (h *todoHandler) updateTodo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, bindError(err, "Invalid request body"))
		return
	}

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), userID, todoID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTodoResponse(todo))
}

// deleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse "The deleted todo"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Todo not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *todoHandler) deleteTodo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(c)
	if !ok {
		return
	}

	todo, err := h.todoService.DeleteTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTodoResponse(todo))
}

// toggleTodo godoc
// @Summary Toggle completion
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Todo not found"
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id}/toggle [patch]
func (h *todoHandler) toggleTodo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	todoID, ok := todoIDParam(c)
	if !ok {
		return
	}

	todo, err := h.todoService.ToggleTodo(c.Request.Context(), userID, todoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTodoResponse(todo))
}

// clearCompleted godoc
// @Summary Delete all completed todos
// @Tags todos
// @Produce json
// @Success 200 {object} dto.ClearCompletedResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/completed [delete]
func (h *todoHandler) clearCompleted(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	deleted, err := h.todoService.ClearCompletedTodos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClearCompletedResponse{Deleted: deleted})
}
