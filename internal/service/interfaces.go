package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/autonomeal/backend/internal/types"
)

// RecipeGenerator produces recipe text from a dish name or a preference set.
type RecipeGenerator interface {
	GenerateFromDishName(ctx context.Context, name string) (string, error)
	GenerateFromPreferences(ctx context.Context, prefs types.PreferenceSet) (*types.RecipeCard, error)
}

// DishImageGenerator produces a local dish photo for a recipe title. An
// empty path means no image; generation failures never propagate.
type DishImageGenerator interface {
	Generate(ctx context.Context, dishTitle string) string
}

// ImageStore uploads raw image bytes and returns a durable public URL.
type ImageStore interface {
	Upload(ctx context.Context, imageData []byte) (string, error)
}

// VisionAnalyzer describes and rates a hosted meal photo.
type VisionAnalyzer interface {
	Analyze(ctx context.Context, imageURL string) (string, error)
}

// CardCache stores generated recipe cards for short-lived refetching.
type CardCache interface {
	SaveCard(ctx context.Context, card *types.RecipeCard) error
	GetCard(ctx context.Context, id string) (*types.RecipeCard, error)
}

// RecipePipeline runs the full preferences-to-card pipeline.
type RecipePipeline interface {
	GenerateRecipe(ctx context.Context, prefs types.PreferenceSet) *types.RecipeCard
}

// ExperienceStore awards experience points to callers.
type ExperienceStore interface {
	AwardPoints(ctx context.Context, userID uuid.UUID, points int) error
	GetPoints(ctx context.Context, userID uuid.UUID) (int, error)
}
