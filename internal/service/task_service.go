package service

import (
	"context"
	"errors"

	"taskapi/internal/domain"
	"taskapi/internal/repository"
)

// TaskInput carries the fields accepted when creating a task.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
}

// TaskList is one listing result. Total counts all of the owner's tasks.
type TaskList struct {
	Tasks []domain.Task
	Total int
	Page  domain.Page
}

// TaskService coordinates task operations for an authenticated owner.
type TaskService interface {
	ListTasks(ctx context.Context, ownerID string, page domain.Page) (*TaskList, error)
	GetTask(ctx context.Context, ownerID, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, ownerID string, input TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) ListTasks(ctx context.Context, ownerID string, page domain.Page) (*TaskList, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	total := len(tasks)
	if page.Limit > 0 {
		if total, err = s.tasks.CountByOwner(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	return &TaskList{Tasks: tasks, Total: total, Page: page}, nil
}

func (s *taskService) GetTask(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return s.ownedTask(ctx, ownerID, id)
}

func (s *taskService) CreateTask(ctx context.Context, ownerID string, input TaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, invalid("Title is required")
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		OwnerID:     ownerID,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, ownerID, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return task, nil
	}

	// the owner is checked again inside the UPDATE; a task deleted since the
	// lookup surfaces as not found
	task, err = s.tasks.UpdateOwned(ctx, id, ownerID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, ownerID, id string) error {
	if _, err := s.ownedTask(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.tasks.DeleteOwned(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *taskService) ownedTask(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, ErrTaskForbidden
	}
	return task, nil
}
