package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
	"github.com/habitloop/habitloop-backend/internal/validation"
)

type TaskService interface {
	// CreateTask adds a catalog task. Only admins may grow the catalog and
	// every field must pass validation.
	CreateTask(ctx context.Context, userID uuid.UUID, task *types.Task) (*types.Task, error)
}

type taskService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	taskRepo repos.TaskRepo
}

func NewTaskService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, taskRepo repos.TaskRepo) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{db: db, log: serviceLog, userRepo: userRepo, taskRepo: taskRepo}
}

func (ts *taskService) CreateTask(ctx context.Context, userID uuid.UUID, task *types.Task) (*types.Task, error) {
	found, err := ts.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, ErrUserNotFound
	}
	if !found[0].IsAdmin {
		return nil, ErrNotAdmin
	}

	if res := validation.ValidateTask(task); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTask, validation.FormatErrors(res.Errors))
	}

	created, err := ts.taskRepo.Create(ctx, nil, []*types.Task{task})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	ts.log.Info("Catalog task created", "title", task.Title, "type", task.Type)
	return created[0], nil
}
