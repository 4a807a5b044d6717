// Package gemini provides the AI service implementation backed by the
// Gemini generateContent API. Without an API key it falls back to a
// deterministic mock so development works offline.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

// Client calls the Gemini generateContent endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	temp       float64
	logger     *zap.Logger
}

// NewService creates the AI service. When no API key is configured it
// returns the mock implementation instead of the live client.
func NewService(cfg *config.Config, logger *zap.Logger) outbound.AIService {
	if cfg.AI.APIKey == "" {
		logger.Warn("No AI API key configured, using mock AI service")
		return NewMockService()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.AI.Timeout},
		baseURL:    strings.TrimRight(cfg.AI.BaseURL, "/"),
		model:      cfg.AI.Model,
		apiKey:     cfg.AI.APIKey,
		temp:       cfg.AI.Temperature,
		logger:     logger.Named("gemini-client"),
	}
}

// SuggestRecipes asks for three recipe ideas from free-text ingredients
func (c *Client) SuggestRecipes(ctx context.Context, ingredients string) ([]outbound.AISuggestion, error) {
	prompt := fmt.Sprintf(
		"Suggest exactly 3 recipes that can be cooked with these ingredients: %s. "+
			"Respond with a JSON array where each element has the keys "+
			"\"title\", \"description\" and \"ingredients\" (array of strings). "+
			"Respond with JSON only, no other text.",
		ingredients,
	)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var suggestions []outbound.AISuggestion
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &suggestions); err != nil {
		c.logger.Warn("Unparsable suggestion response", zap.String("text", truncate(text, 200)))
		return nil, errors.NewAIUnparsableError(err)
	}
	return suggestions, nil
}

// RecipeDetails asks for the full recipe behind one suggestion
func (c *Client) RecipeDetails(ctx context.Context, title string, ingredients string) (*outbound.AIRecipeDetail, error) {
	prompt := fmt.Sprintf(
		"Write the full recipe for \"%s\" using these ingredients: %s. "+
			"Respond with a JSON object with the keys \"title\", \"description\", "+
			"\"ingredients\" (array of objects with \"name\", \"amount\", \"unit\"), "+
			"\"steps\" (array of strings) and \"tags\" (array of strings). "+
			"Respond with JSON only, no other text.",
		title, ingredients,
	)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var detail outbound.AIRecipeDetail
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &detail); err != nil {
		c.logger.Warn("Unparsable recipe detail response", zap.String("text", truncate(text, 200)))
		return nil, errors.NewAIUnparsableError(err)
	}
	return &detail, nil
}

// generateContent wire types

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: c.temp},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewInternalError("failed to encode AI request").WithCause(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", errors.NewInternalError("failed to build AI request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.NewExternalServiceError("gemini", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewExternalServiceError("gemini", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.NewExternalServiceError("gemini",
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", errors.NewAIUnparsableError(err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewAIUnparsableError(fmt.Errorf("response has no candidates"))
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractJSON strips markdown code fences from a model response. The
// model often wraps its JSON in ``` fences, sometimes tagged with a
// language name. Plain responses pass through unchanged.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		// The first line may carry a language tag such as "json".
		firstLine := strings.TrimSpace(text[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{}[]") {
			text = text[idx+1:]
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
