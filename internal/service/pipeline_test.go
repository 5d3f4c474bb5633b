package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/autonomeal/backend/internal/testhelpers"
	"github.com/pageza/autonomeal/backend/internal/types"
)

func sampleCard() *types.RecipeCard {
	return &types.RecipeCard{
		Title:       "Eggplant-Free Caponata",
		Description: "A Sicilian-style vegetable stew without the eggplant",
		Difficulty:  "Easy",
		CookTime:    "35 minutes",
		Rating:      4.1,
		Ingredients: []string{"zucchini", "celery", "tomatoes", "capers"},
		Steps:       []string{"Saute the vegetables", "Add tomatoes and simmer", "Finish with capers"},
	}
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fmt.Sprintf("dish-%s.png", uuid.New().String()))
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))
	return path
}

func TestPipelineGenerateRecipe(t *testing.T) {
	prefs := types.PreferenceSet{
		Cuisines:           []string{"Italian"},
		Restrictions:       []string{"vegetarian"},
		MissingIngredients: []string{"eggplant"},
		CookingExperience:  []string{"beginner"},
	}

	t.Run("assembles a complete card on the happy path", func(t *testing.T) {
		recipes := new(testhelpers.MockRecipeGenerator)
		images := new(testhelpers.MockDishImageGenerator)
		store := new(testhelpers.MockImageStore)
		cache := new(testhelpers.MockCardCache)

		imagePath := writeTempImage(t)
		recipes.On("GenerateFromPreferences", mock.Anything, prefs).Return(sampleCard(), nil)
		images.On("Generate", mock.Anything, "Eggplant-Free Caponata").Return(imagePath)
		store.On("Upload", mock.Anything, []byte("png-bytes")).Return("https://host.example/abc.png", nil)
		cache.On("SaveCard", mock.Anything, mock.Anything).Return(nil)

		p := NewPipelineService(recipes, images, store, cache, zap.NewNop())
		card := p.GenerateRecipe(context.Background(), prefs)

		require.NotNil(t, card)
		assert.NotEmpty(t, card.ID)
		assert.NotEmpty(t, card.Title)
		assert.NotEmpty(t, card.Ingredients)
		assert.Equal(t, "https://host.example/abc.png", card.ImageURL)
		assert.True(t, strings.HasPrefix(card.ImageURL, "http"))

		// temp file is cleaned up once the run ends
		_, err := os.Stat(imagePath)
		assert.True(t, os.IsNotExist(err))

		cache.AssertCalled(t, "SaveCard", mock.Anything, card)
		recipes.AssertExpectations(t)
		images.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("uses the placeholder when no image is generated", func(t *testing.T) {
		recipes := new(testhelpers.MockRecipeGenerator)
		images := new(testhelpers.MockDishImageGenerator)
		store := new(testhelpers.MockImageStore)

		recipes.On("GenerateFromPreferences", mock.Anything, prefs).Return(sampleCard(), nil)
		images.On("Generate", mock.Anything, mock.Anything).Return("")

		p := NewPipelineService(recipes, images, store, nil, zap.NewNop())
		card := p.GenerateRecipe(context.Background(), prefs)

		assert.Equal(t, PlaceholderImageURL, card.ImageURL)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("uses the placeholder when the upload fails", func(t *testing.T) {
		recipes := new(testhelpers.MockRecipeGenerator)
		images := new(testhelpers.MockDishImageGenerator)
		store := new(testhelpers.MockImageStore)

		imagePath := writeTempImage(t)
		recipes.On("GenerateFromPreferences", mock.Anything, prefs).Return(sampleCard(), nil)
		images.On("Generate", mock.Anything, mock.Anything).Return(imagePath)
		store.On("Upload", mock.Anything, mock.Anything).Return("", ErrUploadFailed)

		p := NewPipelineService(recipes, images, store, nil, zap.NewNop())
		card := p.GenerateRecipe(context.Background(), prefs)

		assert.Equal(t, PlaceholderImageURL, card.ImageURL)

		_, err := os.Stat(imagePath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("completes with a degraded card when generation falls back", func(t *testing.T) {
		recipes := new(testhelpers.MockRecipeGenerator)
		images := new(testhelpers.MockDishImageGenerator)
		store := new(testhelpers.MockImageStore)

		fallback := transportFallbackCard()
		recipes.On("GenerateFromPreferences", mock.Anything, prefs).
			Return(&fallback, fmt.Errorf("%w: connection refused", ErrGenerationTransport))
		images.On("Generate", mock.Anything, fallback.Title).Return("")

		p := NewPipelineService(recipes, images, store, nil, zap.NewNop())
		card := p.GenerateRecipe(context.Background(), prefs)

		require.NotNil(t, card)
		assert.NotEmpty(t, card.ID)
		assert.Equal(t, fallback.Title, card.Title)
		assert.Equal(t, PlaceholderImageURL, card.ImageURL)
	})

	t.Run("cache failure does not affect the returned card", func(t *testing.T) {
		recipes := new(testhelpers.MockRecipeGenerator)
		images := new(testhelpers.MockDishImageGenerator)
		store := new(testhelpers.MockImageStore)
		cache := new(testhelpers.MockCardCache)

		recipes.On("GenerateFromPreferences", mock.Anything, prefs).Return(sampleCard(), nil)
		images.On("Generate", mock.Anything, mock.Anything).Return("")
		cache.On("SaveCard", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		p := NewPipelineService(recipes, images, store, cache, zap.NewNop())
		card := p.GenerateRecipe(context.Background(), prefs)

		require.NotNil(t, card)
		assert.NotEmpty(t, card.ID)
	})

	t.Run("every run gets a distinct identifier", func(t *testing.T) {
		recipes := new(testhelpers.MockRecipeGenerator)
		images := new(testhelpers.MockDishImageGenerator)
		store := new(testhelpers.MockImageStore)

		recipes.On("GenerateFromPreferences", mock.Anything, prefs).Return(sampleCard(), nil).Once()
		recipes.On("GenerateFromPreferences", mock.Anything, prefs).Return(sampleCard(), nil).Once()
		images.On("Generate", mock.Anything, mock.Anything).Return("")

		p := NewPipelineService(recipes, images, store, nil, zap.NewNop())
		first := p.GenerateRecipe(context.Background(), prefs)
		second := p.GenerateRecipe(context.Background(), prefs)

		assert.NotEqual(t, first.ID, second.ID)
	})
}
