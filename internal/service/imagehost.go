package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ImageHostService uploads image blobs to an ImgBB-style hosting API and
// returns the durable public URL. A single failed attempt propagates
// immediately; the pipeline decides whether to substitute a placeholder.
type ImageHostService struct {
	apiKey string
	apiURL string
	client *http.Client
	logger *zap.Logger
}

// NewImageHostService creates a new ImageHostService instance
func NewImageHostService(logger *zap.Logger) (*ImageHostService, error) {
	apiKey := os.Getenv("IMGBB_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("IMGBB_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("IMGBB_API_KEY or IMGBB_API_KEY_FILE must be set")
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

	apiURL := os.Getenv("IMGBB_API_URL")
	if apiURL == "" {
		apiURL = "https://api.imgbb.com/1/upload"
	}

	return &ImageHostService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

type imageHostResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload base64-encodes the image bytes and submits them to the hosting
// service, returning the hosted public URL.
func (s *ImageHostService) Upload(ctx context.Context, imageData []byte) (string, error) {
	form := url.Values{}
	form.Set("key", s.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(imageData))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("image host rejected upload",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var result imageHostResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if result.Data.URL == "" {
		return "", fmt.Errorf("%w: no url in host response", ErrUploadFailed)
	}

	return result.Data.URL, nil
}
