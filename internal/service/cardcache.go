package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/autonomeal/backend/internal/types"
)

// cardTTL bounds how long a generated card can be refetched. Cards are not
// persisted; the cache only bridges the gap between generation and the
// client's follow-up fetch.
const cardTTL = 24 * time.Hour

// CardCacheService keeps generated recipe cards in Redis.
type CardCacheService struct {
	redis *redis.Client
}

// NewCardCacheService creates a new CardCacheService instance using
// environment variables for the Redis connection.
func NewCardCacheService() *CardCacheService {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})

	return &CardCacheService{redis: client}
}

// SaveCard stores a card under its identifier with a TTL.
func (s *CardCacheService) SaveCard(ctx context.Context, card *types.RecipeCard) error {
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	key := fmt.Sprintf("recipe:card:%s", card.ID)
	if err := s.redis.Set(ctx, key, data, cardTTL).Err(); err != nil {
		return fmt.Errorf("failed to save card to Redis: %w", err)
	}

	return nil
}

// GetCard retrieves a previously generated card by identifier.
func (s *CardCacheService) GetCard(ctx context.Context, id string) (*types.RecipeCard, error) {
	key := fmt.Sprintf("recipe:card:%s", id)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get card from Redis: %w", err)
	}

	var card types.RecipeCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card: %w", err)
	}

	return &card, nil
}
