package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/autonomeal/backend/internal/model"
)

// RecipeGenerationPoints is awarded for each completed recipe pipeline run.
const RecipeGenerationPoints = 10

// ExperienceService stores per-user experience points. It is a thin
// consumer of the pipeline's output, not part of the pipeline itself.
type ExperienceService struct {
	db *gorm.DB
}

// NewExperienceService creates a new ExperienceService instance
func NewExperienceService(db *gorm.DB) *ExperienceService {
	return &ExperienceService{db: db}
}

// AwardPoints adds points to the user's total, creating the row on first
// award.
func (s *ExperienceService) AwardPoints(ctx context.Context, userID uuid.UUID, points int) error {
	var xp model.UserExperience
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&xp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		xp = model.UserExperience{
			ID:     uuid.New(),
			UserID: userID,
			Points: points,
		}
		if err := s.db.WithContext(ctx).Create(&xp).Error; err != nil {
			return fmt.Errorf("failed to create experience record: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load experience record: %w", err)
	}

	xp.Points += points
	if err := s.db.WithContext(ctx).Save(&xp).Error; err != nil {
		return fmt.Errorf("failed to update experience record: %w", err)
	}

	return nil
}

// GetPoints returns the user's current total, zero if they have none yet.
func (s *ExperienceService) GetPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var xp model.UserExperience
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&xp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load experience record: %w", err)
	}

	return xp.Points, nil
}
