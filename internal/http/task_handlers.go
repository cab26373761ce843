package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskapi/internal/domain"
	"taskapi/internal/service"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	OwnerID     string            `json:"ownerId"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

type PaginationResponse struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

func (h *Handler) listTasks(c *gin.Context) {
	user, ok := h.mustUser(c)
	if !ok {
		return
	}

	page := parsePage(c)
	list, err := h.tasks.ListTasks(c.Request.Context(), user.ID, page)
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := make([]TaskResponse, len(list.Tasks))
	for i := range list.Tasks {
		resp[i] = taskToResponse(list.Tasks[i])
	}

	extra := gin.H{"tasks": resp}
	if page.Limit > 0 {
		extra["pagination"] = paginationFor(page, list.Total)
	}
	respond(c, http.StatusOK, "Tasks found successfully.", extra)
}

func (h *Handler) getTask(c *gin.Context) {
	user, ok := h.mustUser(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), user.ID, c.Param("taskId"))
	if err != nil {
		h.taskError(c, err, "You can't access task of another user")
		return
	}

	respond(c, http.StatusOK, "Task found successfully.", gin.H{"task": taskToResponse(*task)})
}

func (h *Handler) createTask(c *gin.Context) {
	user, ok := h.mustUser(c)
	if !ok {
		return
	}

	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), user.ID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		h.taskError(c, err, "")
		return
	}

	respond(c, http.StatusCreated, "Task created successfully.", gin.H{"task": taskToResponse(*task)})
}

func (h *Handler) updateTask(c *gin.Context) {
	user, ok := h.mustUser(c)
	if !ok {
		return
	}

	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), user.ID, c.Param("taskId"), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		h.taskError(c, err, "You can't update task of another user")
		return
	}

	respond(c, http.StatusOK, "Task updated successfully.", gin.H{"task": taskToResponse(*task)})
}

func (h *Handler) deleteTask(c *gin.Context) {
	user, ok := h.mustUser(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), user.ID, c.Param("taskId")); err != nil {
		h.taskError(c, err, "You can't delete task of another user")
		return
	}

	respond(c, http.StatusOK, "Task deleted successfully.", nil)
}

// mustUser fetches the session user; routes without requireSession get a 401.
func (h *Handler) mustUser(c *gin.Context) (*domain.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Access token not found in cookies")
		return nil, false
	}
	return user, true
}

func (h *Handler) taskError(c *gin.Context, err error, forbiddenMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, "No task found.")
	case errors.Is(err, service.ErrTaskForbidden):
		respondError(c, http.StatusForbidden, forbiddenMsg)
	default:
		h.internalError(c, err)
	}
}

// parsePage returns a zero Page unless the client asked for paging.
func parsePage(c *gin.Context) domain.Page {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return domain.Page{}
	}

	page := domain.Page{Number: 1, Limit: defaultPageLimit}
	if n, err := strconv.Atoi(pageStr); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		page.Limit = min(n, maxPageLimit)
	}
	// keeps (Number-1)*Limit inside an int
	page.Number = min(page.Number, math.MaxInt/page.Limit)
	return page
}

func paginationFor(page domain.Page, total int) PaginationResponse {
	totalPages := int(math.Ceil(float64(total) / float64(page.Limit)))
	return PaginationResponse{
		CurrentPage:  page.Number,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: page.Limit,
		HasNextPage:  page.Number < totalPages,
		HasPrevPage:  page.Number > 1,
	}
}

func taskToResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
}
