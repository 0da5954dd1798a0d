package memory

import (
	"sync"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/log"
)

// implRepository keeps every task in one indexed collection.
type implRepository struct {
	l   log.Logger
	cal *datemath.Calendar

	mu    sync.RWMutex
	tasks map[string]model.Task
	order []string
}

var _ repository.Repository = (*implRepository)(nil)

// New creates an in-memory task repository. Calendar days are compared in cal.
func New(l log.Logger, cal *datemath.Calendar) repository.Repository {
	if cal == nil {
		cal = datemath.UTC()
	}
	return &implRepository{
		l:     l,
		cal:   cal,
		tasks: make(map[string]model.Task),
	}
}
