package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task assignment and lifecycle.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title                   string     `json:"title"       validate:"required"`
	Description             string     `json:"description"`
	AssignedTo              int64      `json:"assigned_to" validate:"required,gt=0"`
	Priority                string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate                 *time.Time `json:"due_date"`
	CropID                  *int64     `json:"crop_id"`
	FieldID                 *int64     `json:"field_id"`
	ExpectedDurationMinutes *int       `json:"expected_duration_minutes" validate:"omitempty,gt=0"`
}

type updateTaskRequest struct {
	Title                   *string    `json:"title"`
	Description             *string    `json:"description"`
	Status                  *string    `json:"status"   validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority                *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate                 *time.Time `json:"due_date"`
	CropID                  *int64     `json:"crop_id"`
	FieldID                 *int64     `json:"field_id"`
	ExpectedDurationMinutes *int       `json:"expected_duration_minutes" validate:"omitempty,gt=0"`
}

// Create handles POST /v1/tasks: a manager assigns a task to a farmer.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.CreateTask(c.Request().Context(), ports.CreateTaskInput{
		Title:                   req.Title,
		Description:             req.Description,
		AssignedTo:              req.AssignedTo,
		AssignedBy:              userID,
		Priority:                req.Priority,
		DueDate:                 req.DueDate,
		CropID:                  req.CropID,
		FieldID:                 req.FieldID,
		ExpectedDurationMinutes: req.ExpectedDurationMinutes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// Get returns one task by id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	task, err := h.service.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// ListMine returns the caller's tasks: assigned-to for farmers, assigned-by
// for managers. Status and priority filters apply to both.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Success      200       {array}   domain.Task
// @Router       /v1/tasks [get]
func (h *TaskHandler) ListMine(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	filter := ports.TaskFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	}

	var tasks []*domain.Task
	if role == domain.RoleManager || role == domain.RoleAdmin {
		tasks, err = h.service.ListAssignedBy(c.Request().Context(), userID, filter)
	} else {
		tasks, err = h.service.ListAssignedTo(c.Request().Context(), userID, filter)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListForUser returns tasks assigned to a specific user.
//
// @Summary      List a user's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int     true   "Assignee user id"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   domain.Task
// @Router       /v1/tasks/user/{id} [get]
func (h *TaskHandler) ListForUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tasks, err := h.service.ListAssignedTo(c.Request().Context(), id, ports.TaskFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListOverdue returns tasks past their due date and still open.
//
// @Summary      List overdue tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Task
// @Router       /v1/tasks/overdue [get]
func (h *TaskHandler) ListOverdue(c echo.Context) error {
	tasks, err := h.service.ListOverdue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update applies a partial update to a task. Status changes go through the
// lifecycle state machine and trigger re-scoring of the affected users.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := ports.TaskPatch{
		Title:                   req.Title,
		Description:             req.Description,
		DueDate:                 req.DueDate,
		CropID:                  req.CropID,
		FieldID:                 req.FieldID,
		ExpectedDurationMinutes: req.ExpectedDurationMinutes,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	task, err := h.service.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task and re-scores its assignee.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	task, err := h.service.DeleteTask(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
