// Package recipe is a client for the external recipe generation service. The
// service is treated as a black box: this package moves requests and
// responses and knows nothing about prompts or PDF layout.
package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// DefaultLanguage is used when a request names none.
const DefaultLanguage = "en"

// maxErrorBody bounds how much of an upstream error response is kept.
const maxErrorBody = 4 << 10

var ErrNoIngredients = errors.New("recipe: ingredients are required")

// UpstreamError is returned when the recipe service answers with a non-2xx
// status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("recipe: upstream returned %d", e.StatusCode)
}

type Recipe struct {
	Recipe    string          `json:"recipe"`
	Nutrition json.RawMessage `json:"nutrition,omitempty" swaggertype:"object"`
	Language  string          `json:"language"`
}

type PDFRequest struct {
	Recipe   string `json:"recipe"`
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the service at baseURL. Generation can take
// tens of seconds, so timeout should be generous.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Generate asks for a recipe from a free-text ingredient list.
func (c *Client) Generate(ctx context.Context, ingredients, language string) (Recipe, error) {
	if strings.TrimSpace(ingredients) == "" {
		return Recipe{}, ErrNoIngredients
	}

	body, err := json.Marshal(map[string]string{
		"ingredients": ingredients,
		"language":    orDefault(language),
	})
	if err != nil {
		return Recipe{}, err
	}

	resp, err := c.do(ctx, "/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return Recipe{}, err
	}
	return decodeRecipe(resp)
}

// GenerateFromImage uploads a photo of ingredients as multipart field "file".
func (c *Client) GenerateFromImage(ctx context.Context, filename string, image io.Reader, language string) (Recipe, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Recipe{}, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return Recipe{}, fmt.Errorf("recipe: read image: %w", err)
	}
	if err := mw.WriteField("language", orDefault(language)); err != nil {
		return Recipe{}, err
	}
	if err := mw.Close(); err != nil {
		return Recipe{}, err
	}

	resp, err := c.do(ctx, "/generate-from-image", mw.FormDataContentType(), &buf)
	if err != nil {
		return Recipe{}, err
	}
	return decodeRecipe(resp)
}

// RenderPDF returns the rendered PDF stream. The caller must close it.
func (c *Client) RenderPDF(ctx context.Context, req PDFRequest) (io.ReadCloser, error) {
	if req.Title == "" {
		req.Title = "Generated Recipe"
	}
	req.Language = orDefault(req.Language)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, "/download-recipe-pdf", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// do sends a POST and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("recipe: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipe: send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}

func decodeRecipe(resp *http.Response) (Recipe, error) {
	defer resp.Body.Close()

	var r Recipe
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Recipe{}, fmt.Errorf("recipe: decode response: %w", err)
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	return r, nil
}

func orDefault(language string) string {
	if language = strings.TrimSpace(language); language != "" {
		return language
	}
	return DefaultLanguage
}
