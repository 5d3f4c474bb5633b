package service

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/autonomeal/backend/internal/types"
)

// PlaceholderImageURL is substituted whenever image generation or hosting
// fails. The recipe path never surfaces an image error to the caller.
const PlaceholderImageURL = "https://placehold.co/1024x1024/png?text=Recipe+Image"

// StageStatus records how a pipeline stage resolved.
type StageStatus int

const (
	// StageSuccess means the stage produced real content.
	StageSuccess StageStatus = iota
	// StageDegraded means the stage substituted fallback content.
	StageDegraded
	// StageSkipped means the stage produced nothing and the pipeline
	// moved on without it.
	StageSkipped
)

// StageResult carries a stage's value together with how it was obtained,
// so later stages can react to degradation without sentinel values.
type StageResult[T any] struct {
	Status StageStatus
	Value  T
}

// PipelineService runs the preferences-to-recipe-card pipeline: text
// generation, dish image generation, image hosting, assembly. Each stage
// degrades independently; the pipeline itself has no failure exit.
type PipelineService struct {
	recipes RecipeGenerator
	images  DishImageGenerator
	store   ImageStore
	cache   CardCache
	logger  *zap.Logger
}

// NewPipelineService creates a new PipelineService instance. cache may be
// nil when no card cache is configured.
func NewPipelineService(recipes RecipeGenerator, images DishImageGenerator, store ImageStore, cache CardCache, logger *zap.Logger) *PipelineService {
	return &PipelineService{
		recipes: recipes,
		images:  images,
		store:   store,
		cache:   cache,
		logger:  logger,
	}
}

// GenerateRecipe turns a preference set into a complete recipe card. The
// returned card always has every field populated, including a fresh
// identifier and an image URL (hosted or placeholder).
func (p *PipelineService) GenerateRecipe(ctx context.Context, prefs types.PreferenceSet) *types.RecipeCard {
	textStage := p.runTextStage(ctx, prefs)
	card := textStage.Value

	imageStage := p.runImageStage(ctx, card.Title)
	if imageStage.Status == StageSuccess {
		// temp file is gone once the run ends, whatever the upload did
		defer func() { _ = os.Remove(imageStage.Value) }()
	}

	uploadStage := p.runUploadStage(ctx, imageStage)

	card.ID = uuid.New().String()
	card.ImageURL = uploadStage.Value

	if p.cache != nil {
		if err := p.cache.SaveCard(ctx, card); err != nil {
			p.logger.Warn("failed to cache recipe card",
				zap.String("card_id", card.ID),
				zap.Error(err))
		}
	}

	p.logger.Info("recipe pipeline complete",
		zap.String("card_id", card.ID),
		zap.String("title", card.Title),
		zap.Int("text_stage", int(textStage.Status)),
		zap.Int("image_stage", int(imageStage.Status)),
		zap.Int("upload_stage", int(uploadStage.Status)))

	return card
}

func (p *PipelineService) runTextStage(ctx context.Context, prefs types.PreferenceSet) StageResult[*types.RecipeCard] {
	card, err := p.recipes.GenerateFromPreferences(ctx, prefs)
	if err != nil {
		// the generator already substituted a complete fallback card
		if errors.Is(err, ErrGenerationTransport) || errors.Is(err, ErrGenerationParse) {
			return StageResult[*types.RecipeCard]{Status: StageDegraded, Value: card}
		}
		p.logger.Warn("unexpected text stage error", zap.Error(err))
		return StageResult[*types.RecipeCard]{Status: StageDegraded, Value: card}
	}
	return StageResult[*types.RecipeCard]{Status: StageSuccess, Value: card}
}

func (p *PipelineService) runImageStage(ctx context.Context, title string) StageResult[string] {
	path := p.images.Generate(ctx, title)
	if path == "" {
		return StageResult[string]{Status: StageSkipped}
	}
	return StageResult[string]{Status: StageSuccess, Value: path}
}

func (p *PipelineService) runUploadStage(ctx context.Context, imageStage StageResult[string]) StageResult[string] {
	if imageStage.Status != StageSuccess {
		return StageResult[string]{Status: StageDegraded, Value: PlaceholderImageURL}
	}

	imageData, err := os.ReadFile(imageStage.Value)
	if err != nil {
		p.logger.Warn("failed to read generated image", zap.Error(err))
		return StageResult[string]{Status: StageDegraded, Value: PlaceholderImageURL}
	}

	hostedURL, err := p.store.Upload(ctx, imageData)
	if err != nil {
		p.logger.Warn("image upload failed, using placeholder", zap.Error(err))
		return StageResult[string]{Status: StageDegraded, Value: PlaceholderImageURL}
	}

	return StageResult[string]{Status: StageSuccess, Value: hostedURL}
}
