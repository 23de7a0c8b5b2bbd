package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amitmore-007/Recipe-Generator/internal/recipe"
	"github.com/amitmore-007/Recipe-Generator/pkg/authsdk"
	"github.com/amitmore-007/Recipe-Generator/pkg/httpx"
	"github.com/amitmore-007/Recipe-Generator/pkg/slogx"
)

// MaxImageBytes bounds an uploaded ingredient photo.
const MaxImageBytes = 10 << 20

type RecipeHandler struct {
	Recipes *recipe.Client
}

// HandleGenerate godoc
//
//	@Summary		Generate a recipe
//	@Description	Forwards a comma separated ingredient list to the recipe service.
//	@Tags			Recipes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.GenerateRecipeRequest	true	"ingredients, language"
//	@Success		200		{object}	authsdk.RecipeResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Ingredients are required"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		502		{object}	authsdk.ErrorResponse	"Recipe service unavailable"
//	@Router			/api/recipes/generate [post]
func (h *RecipeHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.GenerateRecipeRequest
	if err := httpx.DecodeJSON(w, r, &req, httpx.DefaultMaxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.Recipes.Generate(r.Context(), req.Ingredients, req.Language)
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRecipeResponse(rec))
}

// HandleGenerateFromImage godoc
//
//	@Summary		Generate a recipe from a photo
//	@Description	Uploads a photo of ingredients (max 10 MiB) to the recipe service.
//	@Tags			Recipes
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"Ingredient photo"
//	@Param			language	formData	string	false	"Recipe language"	default(en)
//	@Success		200			{object}	authsdk.RecipeResponse
//	@Failure		400			{object}	authsdk.ErrorResponse	"Image file is required"
//	@Failure		401			{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		413			{object}	authsdk.ErrorResponse	"Image too large"
//	@Failure		502			{object}	authsdk.ErrorResponse	"Recipe service unavailable"
//	@Router			/api/recipes/generate-from-image [post]
func (h *RecipeHandler) HandleGenerateFromImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes)

	if err := r.ParseMultipartForm(MaxImageBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteError(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	rec, err := h.Recipes.GenerateFromImage(r.Context(), header.Filename, file, r.FormValue("language"))
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRecipeResponse(rec))
}

// HandlePDF godoc
//
//	@Summary		Download a recipe as PDF
//	@Tags			Recipes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		application/pdf
//	@Param			request	body		authsdk.RecipePDFRequest	true	"recipe, title, language"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	authsdk.ErrorResponse	"Recipe text is required"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid or missing token"
//	@Failure		502		{object}	authsdk.ErrorResponse	"Recipe service unavailable"
//	@Router			/api/recipes/pdf [post]
func (h *RecipeHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RecipePDFRequest
	if err := httpx.DecodeJSON(w, r, &req, httpx.DefaultMaxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Recipe) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Recipe text is required")
		return
	}

	pdf, err := h.Recipes.RenderPDF(r.Context(), recipe.PDFRequest{
		Recipe:   req.Recipe,
		Title:    req.Title,
		Language: req.Language,
	})
	if err != nil {
		writeRecipeError(w, r, err)
		return
	}
	defer pdf.Close()

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="recipe.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, pdf); err != nil {
		slogx.FromContext(r.Context()).Warn("pdf stream interrupted", slog.Any("error", err))
	}
}

func writeRecipeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var upstream *recipe.UpstreamError
	switch {
	case errors.Is(err, recipe.ErrNoIngredients):
		httpx.WriteError(w, http.StatusBadRequest, "Ingredients are required")
	case errors.As(err, &upstream):
		log.Warn("recipe service error", slog.Int("status", upstream.StatusCode), slog.String("body", upstream.Body))
		httpx.WriteError(w, http.StatusBadGateway, "Recipe service unavailable")
	default:
		log.Error("recipe service call failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusBadGateway, "Recipe service unavailable")
	}
}

func toRecipeResponse(rec recipe.Recipe) authsdk.RecipeResponse {
	out := authsdk.RecipeResponse{Recipe: rec.Recipe, Language: rec.Language}
	if len(rec.Nutrition) > 0 && string(rec.Nutrition) != "null" {
		out.Nutrition = json.RawMessage(rec.Nutrition)
	}
	return out
}
