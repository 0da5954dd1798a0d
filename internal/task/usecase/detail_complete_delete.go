package usecase

import (
	"context"
	"fmt"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
)

// Detail retrieves a single task by ID. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Task, error) {
	t, err := uc.repo.GetTask(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "uc.Detail GetTask: %v", err)
		return model.Task{}, err
	}
	if t.ID == "" {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

// Complete marks a task done at the current clock time. Completing a
// completed task returns it unchanged.
func (uc *implUseCase) Complete(ctx context.Context, id string) (model.Task, error) {
	var out model.Task
	err := uc.writer.Do(ctx, func(ctx context.Context) error {
		t, err := uc.repo.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if t.ID == "" {
			return task.ErrTaskNotFound
		}
		if t.IsTemplate() {
			return task.ErrTemplateNotCompletable
		}
		if t.IsCompleted {
			out = t
			return nil
		}

		now := uc.clock.Now()
		out, err = uc.repo.UpdateTask(ctx, repository.UpdateTaskOptions{
			ID:          t.ID,
			Fields:      fieldsOf(t),
			IsCompleted: true,
			CompletedAt: &now,
		})
		return err
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Complete id=%s: %v", id, err)
		return model.Task{}, err
	}
	return out, nil
}

// Delete removes a task. A template's instances are enumerated through the
// store and removed before the template itself.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	err := uc.writer.Do(ctx, func(ctx context.Context) error {
		t, err := uc.repo.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if t.ID == "" {
			return task.ErrTaskNotFound
		}

		if t.IsTemplate() {
			instances, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{ParentID: t.ID})
			if err != nil {
				return fmt.Errorf("list instances: %w", err)
			}
			for _, inst := range instances {
				if err := uc.repo.DeleteTask(ctx, inst.ID); err != nil {
					return fmt.Errorf("delete instance %s: %w", inst.ID, err)
				}
			}
			uc.l.Infof(ctx, "Delete: template=%s instances=%d", t.ID, len(instances))
		}
		return uc.repo.DeleteTask(ctx, t.ID)
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Delete id=%s: %v", id, err)
		return err
	}
	return nil
}
