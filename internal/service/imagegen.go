package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageGenService requests a generated dish photo from the image model and
// persists it as a per-request temp file. Image generation is best-effort:
// the recipe pipeline proceeds without a photo when it fails.
type ImageGenService struct {
	apiKey string
	apiURL string
	client *http.Client
	logger *zap.Logger
}

// NewImageGenService creates a new ImageGenService instance
func NewImageGenService(logger *zap.Logger) (*ImageGenService, error) {
	apiKey := os.Getenv("STABILITY_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("STABILITY_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("STABILITY_API_KEY or STABILITY_API_KEY_FILE must be set")
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

	apiURL := os.Getenv("STABILITY_API_URL")
	if apiURL == "" {
		apiURL = "https://api.stability.ai/v2beta/stable-image/generate/core"
	}

	return &ImageGenService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

type imageGenRequest struct {
	Prompt       string `json:"prompt"`
	AspectRatio  string `json:"aspect_ratio"`
	OutputFormat string `json:"output_format"`
}

type imageGenResponse struct {
	Image string `json:"image"`
}

// Generate requests a square PNG for the dish title and writes it to a
// uuid-named file in the OS temp dir. An empty path means no image was
// produced; failures are logged, never returned.
func (s *ImageGenService) Generate(ctx context.Context, dishTitle string) string {
	prompt := fmt.Sprintf("a realistic photograph of %s, plated at home, slightly imperfect but appetizing", dishTitle)

	reqBody := imageGenRequest{
		Prompt:       prompt,
		AspectRatio:  "1:1",
		OutputFormat: "png",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		s.logger.Warn("failed to marshal image request", zap.Error(err))
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		s.logger.Warn("failed to create image request", zap.Error(err))
		return ""
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("image generation request failed", zap.Error(err))
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Warn("failed to read image response", zap.Error(err))
		return ""
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("image generation rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return ""
	}

	var result imageGenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Warn("failed to decode image response", zap.Error(err))
		return ""
	}

	if result.Image == "" {
		s.logger.Warn("image response had no image field")
		return ""
	}

	imageData, err := base64.StdEncoding.DecodeString(result.Image)
	if err != nil {
		s.logger.Warn("failed to decode image payload", zap.Error(err))
		return ""
	}

	// uuid-named so concurrent requests never collide on the filename
	path := filepath.Join(os.TempDir(), fmt.Sprintf("dish-%s.png", uuid.New().String()))
	if err := os.WriteFile(path, imageData, 0o600); err != nil {
		s.logger.Warn("failed to write generated image", zap.Error(err))
		return ""
	}

	s.logger.Info("generated dish image",
		zap.String("dish", dishTitle),
		zap.String("path", path))

	return path
}
