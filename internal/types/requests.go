package types

// GenerateRecipeRequest is the body for the preferences-to-recipe endpoint.
type GenerateRecipeRequest struct {
	Preferences PreferenceSet `json:"preferences" binding:"required"`
}

// GenerateRecipeResponse wraps a completed recipe card.
type GenerateRecipeResponse struct {
	Success bool       `json:"success"`
	Recipe  RecipeCard `json:"recipe"`
	Message string     `json:"message"`
}

// GenerateRecipeTextRequest is the body for the free-text recipe endpoint.
type GenerateRecipeTextRequest struct {
	DishName string `json:"dish_name" binding:"required"`
}

// GenerateRecipeTextResponse carries the model's raw recipe text.
type GenerateRecipeTextResponse struct {
	RecipeText string `json:"recipe_text"`
}
