package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// TaskService coordinates per-user task operations backed by the repository.
// Every operation is scoped to the owning user; a task belonging to someone
// else is indistinguishable from a missing one.
type TaskService interface {
	Create(ctx context.Context, userID int64, title string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	Update(ctx context.Context, userID, id int64, title string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, userID, id int64) error
	Snapshot(ctx context.Context, userID int64) ([]byte, error)
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, userID int64, title string) (*domain.Task, error) {
	task := &domain.Task{
		Title:  title,
		UserID: userID,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create task: %w", err))
	}
	return task, nil
}

func (s *taskService) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list tasks: %w", err))
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, userID, id int64, title string, completed bool) (*domain.Task, error) {
	task, err := s.tasks.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, apperr.Internal(fmt.Errorf("lookup task: %w", err))
	}

	task.Title = title
	task.Completed = completed
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, apperr.Internal(fmt.Errorf("update task: %w", err))
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("task not found")
		}
		return apperr.Internal(fmt.Errorf("delete task: %w", err))
	}
	return nil
}

type snapshotTask struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type snapshot struct {
	UserID     int64          `json:"user_id"`
	ExportedAt string         `json:"exported_at"`
	Tasks      []snapshotTask `json:"tasks"`
}

// Snapshot renders the caller's tasks as a JSON document for export.
func (s *taskService) Snapshot(ctx context.Context, userID int64) ([]byte, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list tasks for snapshot: %w", err))
	}

	doc := snapshot{
		UserID:     userID,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tasks:      make([]snapshotTask, len(tasks)),
	}
	for i := range tasks {
		doc.Tasks[i] = snapshotTask{
			ID:        tasks[i].ID,
			Title:     tasks[i].Title,
			Completed: tasks[i].Completed,
		}
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("marshal snapshot: %w", err))
	}
	return payload, nil
}
