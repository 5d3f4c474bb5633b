package types

// PreferenceSet holds the caller-supplied constraints that drive recipe
// generation. Slice order is preserved so prompts read the way the user
// entered them.
type PreferenceSet struct {
	Cuisines           []string `json:"cuisines"`
	Restrictions       []string `json:"restrictions"`
	MissingIngredients []string `json:"missingIngredients"`
	CookingExperience  []string `json:"cookingExperience"`
}

// RecipeCard is the structured recipe result returned to callers. Every
// field is always populated, even when generation degrades to a fallback.
type RecipeCard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	CookTime    string   `json:"cook_time"`
	Rating      float64  `json:"rating"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ImageURL    string   `json:"image_url"`
}

// AnalysisResult is the outcome of a meal photo analysis. The analysis text
// is opaque model output and is never parsed downstream.
type AnalysisResult struct {
	ImageURL string `json:"image_url"`
	Analysis string `json:"analysis"`
}
