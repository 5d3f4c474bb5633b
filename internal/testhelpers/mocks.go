package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/autonomeal/backend/internal/types"
)

// MockRecipeGenerator is a mock implementation of the RecipeGenerator interface
type MockRecipeGenerator struct {
	mock.Mock
}

func (m *MockRecipeGenerator) GenerateFromDishName(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockRecipeGenerator) GenerateFromPreferences(ctx context.Context, prefs types.PreferenceSet) (*types.RecipeCard, error) {
	args := m.Called(ctx, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeCard), args.Error(1)
}

// MockDishImageGenerator is a mock implementation of the DishImageGenerator interface
type MockDishImageGenerator struct {
	mock.Mock
}

func (m *MockDishImageGenerator) Generate(ctx context.Context, dishTitle string) string {
	args := m.Called(ctx, dishTitle)
	return args.String(0)
}

// MockImageStore is a mock implementation of the ImageStore interface
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, imageData []byte) (string, error) {
	args := m.Called(ctx, imageData)
	return args.String(0), args.Error(1)
}

// MockVisionAnalyzer is a mock implementation of the VisionAnalyzer interface
type MockVisionAnalyzer struct {
	mock.Mock
}

func (m *MockVisionAnalyzer) Analyze(ctx context.Context, imageURL string) (string, error) {
	args := m.Called(ctx, imageURL)
	return args.String(0), args.Error(1)
}

// MockCardCache is a mock implementation of the CardCache interface
type MockCardCache struct {
	mock.Mock
}

func (m *MockCardCache) SaveCard(ctx context.Context, card *types.RecipeCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardCache) GetCard(ctx context.Context, id string) (*types.RecipeCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeCard), args.Error(1)
}

// MockRecipePipeline is a mock implementation of the RecipePipeline interface
type MockRecipePipeline struct {
	mock.Mock
}

func (m *MockRecipePipeline) GenerateRecipe(ctx context.Context, prefs types.PreferenceSet) *types.RecipeCard {
	args := m.Called(ctx, prefs)
	return args.Get(0).(*types.RecipeCard)
}

// MockExperienceStore is a mock implementation of the ExperienceStore interface
type MockExperienceStore struct {
	mock.Mock
}

func (m *MockExperienceStore) AwardPoints(ctx context.Context, userID uuid.UUID, points int) error {
	args := m.Called(ctx, userID, points)
	return args.Error(0)
}

func (m *MockExperienceStore) GetPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
