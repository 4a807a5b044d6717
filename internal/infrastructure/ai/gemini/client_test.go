package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/pkg/errors"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain json passes through",
			in:   `{"title":"Soup"}`,
			want: `{"title":"Soup"}`,
		},
		{
			name: "fenced json",
			in:   "```\n{\"title\":\"Soup\"}\n```",
			want: `{"title":"Soup"}`,
		},
		{
			name: "fenced with json tag",
			in:   "```json\n{\"title\":\"Soup\"}\n```",
			want: `{"title":"Soup"}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n[1,2]\n```  ",
			want: "[1,2]",
		},
		{
			name: "fence on one line",
			in:   "```[1,2]```",
			want: "[1,2]",
		},
		{
			name: "garbage stays garbage",
			in:   "I cannot help with that.",
			want: "I cannot help with that.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}

func geminiConfig(baseURL string) *config.Config {
	return &config.Config{
		AI: config.AIConfig{
			APIKey:      "test-key",
			BaseURL:     baseURL,
			Model:       "gemini-1.5-flash",
			Timeout:     5 * time.Second,
			Temperature: 0.7,
		},
	}
}

func fakeGemini(t *testing.T, responseText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.RawQuery, "key=test-key")

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": responseText}},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestSuggestRecipes(t *testing.T) {
	srv := fakeGemini(t, "```json\n[{\"title\":\"Tomato Soup\",\"description\":\"warm\",\"ingredients\":[\"tomato\"]}]\n```")
	defer srv.Close()

	svc := NewService(geminiConfig(srv.URL), zap.NewNop())

	suggestions, err := svc.SuggestRecipes(context.Background(), "tomato, basil")

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Tomato Soup", suggestions[0].Title)
}

func TestSuggestRecipesUnparsable(t *testing.T) {
	srv := fakeGemini(t, "Sorry, I can only answer cooking questions in prose.")
	defer srv.Close()

	svc := NewService(geminiConfig(srv.URL), zap.NewNop())

	_, err := svc.SuggestRecipes(context.Background(), "tomato")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeAIUnparsable))
}

func TestRecipeDetails(t *testing.T) {
	detail := `{"title":"Tomato Soup","description":"warm","ingredients":[{"name":"tomato","amount":4,"unit":"pcs"}],"steps":["chop","simmer"],"tags":["soup"]}`
	srv := fakeGemini(t, detail)
	defer srv.Close()

	svc := NewService(geminiConfig(srv.URL), zap.NewNop())

	got, err := svc.RecipeDetails(context.Background(), "Tomato Soup", "tomato")

	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Title)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, 4.0, got.Ingredients[0].Amount)
	assert.Len(t, got.Steps, 2)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewService(geminiConfig(srv.URL), zap.NewNop())

	_, err := svc.SuggestRecipes(context.Background(), "tomato")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeExternalServiceError))
}

func TestNewServiceFallsBackToMock(t *testing.T) {
	cfg := &config.Config{}
	svc := NewService(cfg, zap.NewNop())

	suggestions, err := svc.SuggestRecipes(context.Background(), "tomato, basil")

	require.NoError(t, err)
	assert.Len(t, suggestions, 3)
	assert.Contains(t, suggestions[0].Ingredients, "tomato")
}

func TestMockRecipeDetails(t *testing.T) {
	svc := NewMockService()

	detail, err := svc.RecipeDetails(context.Background(), "Anything Bake", "egg, cheese")

	require.NoError(t, err)
	assert.Equal(t, "Anything Bake", detail.Title)
	assert.Len(t, detail.Ingredients, 2)
	assert.NotEmpty(t, detail.Steps)
}
