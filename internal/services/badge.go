package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/gamification"
	"github.com/habitloop/habitloop-backend/internal/pkg/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type BadgeProgress struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Icon         string     `json:"icon"`
	Requirement  string     `json:"requirement"`
	Earned       bool       `json:"earned"`
	EarnedAt     *time.Time `json:"earned_at,omitempty"`
	Progress     int        `json:"progress"`
	ProgressText string     `json:"progress_text"`
}

type BadgeService interface {
	// CheckEarned evaluates the named badge against fresh stats. Unknown
	// badge names report false rather than an error.
	CheckEarned(ctx context.Context, userID uuid.UUID, badgeName string) (bool, error)
	// Award grants the badge if it is earned and not already held. Returns
	// whether a new award record was created.
	Award(ctx context.Context, userID uuid.UUID, badgeName string) (bool, error)
	// CheckAndAwardAll walks the catalog in order and returns the names of
	// badges newly awarded in this call.
	CheckAndAwardAll(ctx context.Context, userID uuid.UUID) ([]string, error)
	ListEarned(ctx context.Context, userID uuid.UUID) ([]*types.Badge, error)
	Progress(ctx context.Context, userID uuid.UUID) ([]*BadgeProgress, error)
}

type badgeService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	completionRepo repos.CompletionRepo
	badgeRepo      repos.BadgeRepo
}

func NewBadgeService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, completionRepo repos.CompletionRepo, badgeRepo repos.BadgeRepo) BadgeService {
	serviceLog := log.With("service", "BadgeService")
	return &badgeService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		completionRepo: completionRepo,
		badgeRepo:      badgeRepo,
	}
}

func (bs *badgeService) statsFor(ctx context.Context, userID uuid.UUID) (gamification.Stats, error) {
	found, err := bs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return gamification.Stats{}, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return gamification.Stats{}, ErrUserNotFound
	}
	user := found[0]

	completions, err := bs.completionRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		return gamification.Stats{}, fmt.Errorf("error counting completions: %w", err)
	}

	return gamification.Stats{
		Streak:      user.Streak,
		Coins:       user.Coins,
		Completions: int(completions),
	}, nil
}

func (bs *badgeService) CheckEarned(ctx context.Context, userID uuid.UUID, badgeName string) (bool, error) {
	def, ok := gamification.BadgeByName(badgeName)
	if !ok {
		return false, nil
	}
	stats, err := bs.statsFor(ctx, userID)
	if err != nil {
		return false, err
	}
	return def.Earned(stats), nil
}

func (bs *badgeService) Award(ctx context.Context, userID uuid.UUID, badgeName string) (bool, error) {
	def, ok := gamification.BadgeByName(badgeName)
	if !ok {
		bs.log.Warn("Badge not found", "badge", badgeName)
		return false, nil
	}

	alreadyHas, err := bs.badgeRepo.Exists(ctx, nil, userID, badgeName)
	if err != nil {
		return false, fmt.Errorf("error checking badge ownership: %w", err)
	}
	if alreadyHas {
		return false, nil
	}

	earned, err := bs.CheckEarned(ctx, userID, badgeName)
	if err != nil {
		return false, err
	}
	if !earned {
		return false, nil
	}

	row := &types.Badge{
		UserID:           userID,
		BadgeName:        def.Name,
		BadgeDescription: def.Description,
		EarnedAt:         time.Now(),
	}
	if _, err := bs.badgeRepo.Create(ctx, nil, []*types.Badge{row}); err != nil {
		return false, fmt.Errorf("error awarding badge: %w", err)
	}
	bs.log.Info("Badge awarded", "badge", def.Name)
	return true, nil
}

func (bs *badgeService) CheckAndAwardAll(ctx context.Context, userID uuid.UUID) ([]string, error) {
	newBadges := []string{}
	for _, def := range gamification.BadgeCatalog {
		awarded, err := bs.Award(ctx, userID, def.Name)
		if err != nil {
			return newBadges, err
		}
		if awarded {
			newBadges = append(newBadges, def.Name)
		}
	}
	return newBadges, nil
}

func (bs *badgeService) ListEarned(ctx context.Context, userID uuid.UUID) ([]*types.Badge, error) {
	return bs.badgeRepo.ListByUser(ctx, nil, userID)
}

func (bs *badgeService) Progress(ctx context.Context, userID uuid.UUID) ([]*BadgeProgress, error) {
	stats, err := bs.statsFor(ctx, userID)
	if err != nil {
		// Degrade to zero progress rather than failing the whole request.
		bs.log.Warn("Stats lookup failed, reporting zero progress", "error", err)
		stats = gamification.Stats{}
	}

	earned, err := bs.badgeRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		bs.log.Warn("Earned badge lookup failed", "error", err)
		earned = nil
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, b := range earned {
		earnedAt[b.BadgeName] = b.EarnedAt
	}

	progress := make([]*BadgeProgress, 0, len(gamification.BadgeCatalog))
	for _, def := range gamification.BadgeCatalog {
		pct, text := def.Progress(stats)
		entry := &BadgeProgress{
			Name:         def.Name,
			Description:  def.Description,
			Icon:         def.Icon,
			Requirement:  def.Requirement,
			Progress:     pct,
			ProgressText: text,
		}
		if at, ok := earnedAt[def.Name]; ok {
			at := at
			entry.Earned = true
			entry.EarnedAt = &at
			entry.Progress = 100
		}
		progress = append(progress, entry)
	}
	return progress, nil
}
