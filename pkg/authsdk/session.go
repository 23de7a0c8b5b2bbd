package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Session is an authenticated view of the API.
type Session struct {
	client *SDKClient
	token  string
	user   User
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// User returns the user the session was opened for.
func (s *Session) User() User { return s.user }

// Me fetches the profile for the session's token.
func (s *Session) Me(ctx context.Context) (*User, error) {
	var out MeResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/api/auth/me", s.token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GenerateRecipe asks for a recipe from a comma separated ingredient list.
func (s *Session) GenerateRecipe(ctx context.Context, ingredients, language string) (*RecipeResponse, error) {
	var out RecipeResponse
	req := GenerateRecipeRequest{Ingredients: ingredients, Language: language}
	if err := s.client.doJSON(ctx, http.MethodPost, "/api/recipes/generate", s.token, req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateRecipeFromImage uploads a photo of ingredients.
func (s *Session) GenerateRecipeFromImage(ctx context.Context, filename string, image io.Reader, language string) (*RecipeResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/recipes/generate-from-image", s.token, &buf,
		map[string]string{"Content-Type": mw.FormDataContentType()})
	if err != nil {
		return nil, err
	}

	var out RecipeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadRecipePDF returns the rendered PDF bytes.
func (s *Session) DownloadRecipePDF(ctx context.Context, req RecipePDFRequest) ([]byte, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.doRequest(ctx, http.MethodPost, "/api/recipes/pdf", s.token, bytes.NewReader(raw),
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}
	return body, nil
}
