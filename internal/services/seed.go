package services

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
	"github.com/habitloop/habitloop-backend/internal/validation"
)

type seedTask struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	Type            string   `yaml:"type"`
	DurationSeconds int      `yaml:"duration_seconds"`
	Difficulty      int      `yaml:"difficulty"`
	Tags            []string `yaml:"tags"`
}

type seedCatalog struct {
	Tasks []seedTask `yaml:"tasks"`
}

type SeedService interface {
	// SeedCatalog loads the YAML task catalog into an empty task table.
	// A populated table is left untouched.
	SeedCatalog(ctx context.Context, path string) error
}

type seedService struct {
	db       *gorm.DB
	log      *logger.Logger
	taskRepo repos.TaskRepo
}

func NewSeedService(db *gorm.DB, log *logger.Logger, taskRepo repos.TaskRepo) SeedService {
	serviceLog := log.With("service", "SeedService")
	return &seedService{db: db, log: serviceLog, taskRepo: taskRepo}
}

func (ss *seedService) SeedCatalog(ctx context.Context, path string) error {
	count, err := ss.taskRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("error counting tasks: %w", err)
	}
	if count > 0 {
		ss.log.Debug("Task catalog already populated, skipping seed", "count", count)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading task catalog: %w", err)
	}

	var catalog seedCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("error parsing task catalog: %w", err)
	}

	tasks := make([]*types.Task, 0, len(catalog.Tasks))
	for i, entry := range catalog.Tasks {
		task := &types.Task{
			Title:           entry.Title,
			Description:     entry.Description,
			Category:        entry.Category,
			Type:            entry.Type,
			DurationSeconds: entry.DurationSeconds,
			Difficulty:      entry.Difficulty,
			Tags:            entry.Tags,
		}
		if res := validation.ValidateTask(task); !res.Valid {
			return fmt.Errorf("task catalog entry %d (%q) is invalid: %s", i, entry.Title, validation.FormatErrors(res.Errors))
		}
		tasks = append(tasks, task)
	}

	if _, err := ss.taskRepo.Create(ctx, nil, tasks); err != nil {
		return fmt.Errorf("error inserting task catalog: %w", err)
	}
	ss.log.Info("Seeded task catalog", "tasks", len(tasks))
	return nil
}
