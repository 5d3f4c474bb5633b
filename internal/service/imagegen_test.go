package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestImageGen(t *testing.T, apiURL string) *ImageGenService {
	t.Setenv("STABILITY_API_KEY", "test-gen-key")
	t.Setenv("STABILITY_API_URL", apiURL)

	svc, err := NewImageGenService(zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestImageGenGenerate(t *testing.T) {
	pngBytes := []byte("pretend-this-is-a-png")

	t.Run("writes the decoded image to a temp file", func(t *testing.T) {
		var reqBody imageGenRequest
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &reqBody))
			fmt.Fprintf(w, `{"image":%q}`, base64.StdEncoding.EncodeToString(pngBytes))
		}))
		defer ts.Close()

		svc := newTestImageGen(t, ts.URL)
		path := svc.Generate(context.Background(), "shakshuka")

		require.NotEmpty(t, path)
		t.Cleanup(func() { _ = os.Remove(path) })

		written, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, pngBytes, written)

		name := filepath.Base(path)
		assert.True(t, strings.HasPrefix(name, "dish-"))
		assert.True(t, strings.HasSuffix(name, ".png"))

		assert.Equal(t, "a realistic photograph of shakshuka, plated at home, slightly imperfect but appetizing", reqBody.Prompt)
		assert.Equal(t, "1:1", reqBody.AspectRatio)
		assert.Equal(t, "png", reqBody.OutputFormat)
	})

	t.Run("two runs never share a filename", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"image":%q}`, base64.StdEncoding.EncodeToString(pngBytes))
		}))
		defer ts.Close()

		svc := newTestImageGen(t, ts.URL)
		first := svc.Generate(context.Background(), "ramen")
		second := svc.Generate(context.Background(), "ramen")
		t.Cleanup(func() {
			_ = os.Remove(first)
			_ = os.Remove(second)
		})

		require.NotEmpty(t, first)
		require.NotEmpty(t, second)
		assert.NotEqual(t, first, second)
	})

	t.Run("returns empty on a non-success status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "content policy", http.StatusBadRequest)
		}))
		defer ts.Close()

		svc := newTestImageGen(t, ts.URL)
		assert.Empty(t, svc.Generate(context.Background(), "ramen"))
	})

	t.Run("returns empty when the response lacks an image field", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"seed": 42}`)
		}))
		defer ts.Close()

		svc := newTestImageGen(t, ts.URL)
		assert.Empty(t, svc.Generate(context.Background(), "ramen"))
	})

	t.Run("returns empty on an invalid base64 payload", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"image":"!!not-base64!!"}`)
		}))
		defer ts.Close()

		svc := newTestImageGen(t, ts.URL)
		assert.Empty(t, svc.Generate(context.Background(), "ramen"))
	})

	t.Run("returns empty when the service is unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		svc := newTestImageGen(t, ts.URL)
		assert.Empty(t, svc.Generate(context.Background(), "ramen"))
	})
}
