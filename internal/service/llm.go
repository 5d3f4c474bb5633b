package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/autonomeal/backend/internal/types"
)

// LLMService handles recipe text generation against the DeepSeek API.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	logger *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(logger *zap.Logger) (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	model := os.Getenv("DEEPSEEK_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// GenerateFromDishName asks the model for a human-readable recipe for the
// named dish and returns its raw text verbatim.
func (s *LLMService) GenerateFromDishName(ctx context.Context, name string) (string, error) {
	messages := []Message{
		{
			Role:    "system",
			Content: "You are a professional chef. Write clear, friendly recipes for home cooks.",
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Give me a complete recipe for %s, with ingredients and numbered steps.", name),
		},
	}

	return s.complete(ctx, messages)
}

// GenerateFromPreferences asks the model for a recipe matching the caller's
// preference set and parses a RecipeCard out of the response. It never
// returns a nil card: on transport or parse failure it substitutes the
// matching fallback card and reports the condition through the error, which
// callers treat as informational rather than fatal.
func (s *LLMService) GenerateFromPreferences(ctx context.Context, prefs types.PreferenceSet) (*types.RecipeCard, error) {
	messages := []Message{
		{
			Role:    "system",
			Content: recipeCardInstruction,
		},
		{
			Role:    "user",
			Content: buildPreferencePrompt(prefs),
		},
	}

	text, err := s.complete(ctx, messages)
	if err != nil {
		s.logger.Warn("recipe model unreachable, using transport fallback", zap.Error(err))
		card := transportFallbackCard()
		return &card, fmt.Errorf("%w: %v", ErrGenerationTransport, err)
	}

	card, err := parseRecipeCard(text)
	if err != nil {
		s.logger.Warn("recipe response unparseable, using parse fallback",
			zap.Error(err),
			zap.String("response", text))
		fallback := parseFallbackCard()
		return &fallback, fmt.Errorf("%w: %v", ErrGenerationParse, err)
	}

	return card, nil
}

// recipeCardInstruction pins the model to the RecipeCard field names.
const recipeCardInstruction = `You are a professional chef. Respond with a single JSON object using exactly these fields:
{
    "title": "Recipe name",
    "description": "Brief description of the recipe",
    "difficulty": "Easy, Medium or Hard",
    "cook_time": "Total cooking time",
    "rating": 4.5,
    "ingredients": [
        "2 cups flour",
        "1 cup sugar"
    ],
    "steps": [
        "Step 1: Mix the dry ingredients",
        "Step 2: Bake at 350F for 30 minutes"
    ]
}

The rating field must be a number. The difficulty field MUST be Easy, Medium or Hard.`

func buildPreferencePrompt(prefs types.PreferenceSet) string {
	var b strings.Builder
	b.WriteString("Generate a recipe for a user with these preferences:\n")
	writePreferenceLine(&b, "Preferred cuisines", prefs.Cuisines)
	writePreferenceLine(&b, "Dietary restrictions", prefs.Restrictions)
	writePreferenceLine(&b, "Ingredients they do not have", prefs.MissingIngredients)
	writePreferenceLine(&b, "Cooking experience", prefs.CookingExperience)
	b.WriteString("\nUse the preferred cuisines where possible. ")
	b.WriteString("Respect every dietary restriction. ")
	b.WriteString("Avoid the ingredients they do not have. ")
	b.WriteString("Match the recipe's complexity to their cooking experience.")
	return b.String()
}

func writePreferenceLine(b *strings.Builder, label string, values []string) {
	b.WriteString(label)
	b.WriteString(": ")
	if len(values) == 0 {
		b.WriteString("none specified")
	} else {
		b.WriteString(strings.Join(values, ", "))
	}
	b.WriteString("\n")
}

// complete performs one chat-completion round trip and returns the model's
// message content.
func (s *LLMService) complete(ctx context.Context, messages []Message) (string, error) {
	reqBody := Request{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}

	return result.Choices[0].Message.Content, nil
}

// parseRecipeCard extracts the substring between the first '{' and the last
// '}' of the model's text and decodes it as a RecipeCard. The model's output
// is untrusted: anything that doesn't decode cleanly is a parse failure, not
// a reason to guess.
func parseRecipeCard(text string) (*types.RecipeCard, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start > end {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var payload struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Difficulty  string   `json:"difficulty"`
		CookTime    string   `json:"cook_time"`
		Rating      float64  `json:"rating"`
		Ingredients []string `json:"ingredients"`
		Steps       []string `json:"steps"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode recipe JSON: %w", err)
	}

	card := types.RecipeCard{
		Title:       payload.Title,
		Description: payload.Description,
		Difficulty:  payload.Difficulty,
		CookTime:    payload.CookTime,
		Rating:      payload.Rating,
		Ingredients: payload.Ingredients,
		Steps:       payload.Steps,
	}
	fillCardDefaults(&card)

	return &card, nil
}

// fillCardDefaults guarantees a structurally complete card: callers must
// never see empty fields, whatever the model chose to omit.
func fillCardDefaults(card *types.RecipeCard) {
	if card.Title == "" {
		card.Title = "Chef's Choice"
	}
	if card.Description == "" {
		card.Description = "A recipe built around your preferences."
	}
	switch card.Difficulty {
	case "Easy", "Medium", "Hard":
	default:
		card.Difficulty = "Medium"
	}
	if card.CookTime == "" {
		card.CookTime = "30 minutes"
	}
	if len(card.Ingredients) == 0 {
		card.Ingredients = []string{"See recipe description"}
	}
	if len(card.Steps) == 0 {
		card.Steps = []string{"See recipe description"}
	}
}

// transportFallbackCard is returned when the model could not be reached at
// all. Its title is deliberately error-flavored so callers can tell it apart
// from a parse fallback.
func transportFallbackCard() types.RecipeCard {
	return types.RecipeCard{
		Title:       "Recipe Service Unavailable",
		Description: "We couldn't reach the recipe generator. Please try again in a few minutes.",
		Difficulty:  "Easy",
		CookTime:    "N/A",
		Rating:      0,
		Ingredients: []string{"No ingredients available right now"},
		Steps:       []string{"Try generating this recipe again shortly"},
	}
}

// parseFallbackCard is returned when the model answered but its text held no
// usable recipe JSON. Generic but cookable content.
func parseFallbackCard() types.RecipeCard {
	return types.RecipeCard{
		Title:       "Simple Stir-Fry Bowl",
		Description: "A flexible stir-fry you can build from whatever vegetables and protein you have on hand.",
		Difficulty:  "Easy",
		CookTime:    "20 minutes",
		Rating:      3.5,
		Ingredients: []string{
			"2 cups chopped mixed vegetables",
			"1 cup cooked rice or noodles",
			"1 tablespoon cooking oil",
			"2 tablespoons soy sauce",
			"Optional protein of your choice",
		},
		Steps: []string{
			"Heat the oil in a large pan over medium-high heat",
			"Add the vegetables and protein and cook for 5-7 minutes",
			"Stir in the rice or noodles and soy sauce",
			"Toss for 2 more minutes and serve hot",
		},
	}
}
