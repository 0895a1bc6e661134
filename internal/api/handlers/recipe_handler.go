package handlers

import (
	"Recipe-Box/domain"
	"Recipe-Box/internal/api/presenters"
	"Recipe-Box/pkg/recipe"
	"Recipe-Box/pkg/session"
	"Recipe-Box/pkg/upload"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		ListRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		uploadService upload.UploadService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, uploadService upload.UploadService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		uploadService: uploadService,
		validator:     validator,
	}
}

func invalidRequest(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
}

// parsePayload reads the recipe form. When the request is multipart and
// carries a "file" part, the image is uploaded and its link replaces
// image_url. A non-nil authorize runs before anything is stored.
func (h *recipeHandler) parsePayload(c *fiber.Ctx, user *domain.Identity, authorize func() error) (domain.RecipePayload, error) {
	req := new(domain.RecipeForm)
	if err := c.BodyParser(req); err != nil {
		return domain.RecipePayload{}, invalidRequest(err)
	}
	if err := h.validator.Struct(req); err != nil {
		return domain.RecipePayload{}, invalidRequest(err)
	}

	payload, err := recipe.PayloadFromForm(*req)
	if err != nil {
		return domain.RecipePayload{}, err
	}

	if user != nil {
		if file, err := c.FormFile("file"); err == nil {
			if authorize != nil {
				if err := authorize(); err != nil {
					return domain.RecipePayload{}, err
				}
			}
			res, err := h.uploadService.UploadImage(c.Context(), user, domain.UploadImageRequest{File: file})
			if err != nil {
				return domain.RecipePayload{}, err
			}
			payload.ImageURL = res.URL
			payload.ImageKey = res.ObjectKey
		}
	}
	return payload, nil
}

func (h *recipeHandler) ListRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.ListRecipes(c.Context(), session.Identity(c), c.Query("search"))
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.Context(), session.Identity(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	user := session.Identity(c)
	if user == nil {
		return presenters.ErrorFrom(c, domain.MessageFailedCreateRecipe, domain.ErrUnauthorized)
	}

	payload, err := h.parsePayload(c, user, nil)
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), user, payload)
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	user := session.Identity(c)
	if user == nil {
		return presenters.ErrorFrom(c, domain.MessageFailedUpdateRecipe, domain.ErrUnauthorized)
	}

	owned := func() error {
		_, err := h.recipeService.GetRecipe(c.Context(), user, c.Params("id"))
		return err
	}
	payload, err := h.parsePayload(c, user, owned)
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), user, c.Params("id"), payload)
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.DeleteRecipe(c.Context(), session.Identity(c), c.Params("id"))
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedDeleteRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
