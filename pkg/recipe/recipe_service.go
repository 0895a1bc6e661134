package recipe

import (
	"context"
	"errors"

	"Recipe-Box/domain"
	"Recipe-Box/entities"
	"Recipe-Box/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, user *domain.Identity, payload domain.RecipePayload) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, user *domain.Identity, recipeID string, payload domain.RecipePayload) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, user *domain.Identity, recipeID string) (domain.RecipeDetail, error)
		ListRecipes(ctx context.Context, user *domain.Identity, titleFilter string) (domain.RecipeListResponse, error)
		GetRecipe(ctx context.Context, user *domain.Identity, recipeID string) (domain.RecipeDetail, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.Storage
	}
)

// NewRecipeService builds the service. store may be nil, in which case
// images of updated or deleted recipes are left in place.
func NewRecipeService(recipeRepository RecipeRepository, store storage.Storage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          store,
	}
}

func ownerID(user *domain.Identity) (uuid.UUID, error) {
	if user == nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, user *domain.Identity, payload domain.RecipePayload) (domain.RecipeDetail, error) {
	owner, err := ownerID(user)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe, err := buildRecipe(payload)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	recipe.UserID = owner

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.WrapPersistence(err)
	}
	return toRecipeDetail(recipe), nil
}

// findOwned loads a recipe for user. A recipe owned by someone else is
// reported exactly like a missing one.
func (s *recipeService) findOwned(ctx context.Context, user *domain.Identity, recipeID string) (*entities.Recipe, error) {
	owner, err := ownerID(user)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrInvalidRecipeID
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.WrapPersistence(err)
	}
	if recipe.UserID != owner {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, user *domain.Identity, recipeID string, payload domain.RecipePayload) (domain.RecipeDetail, error) {
	existing, err := s.findOwned(ctx, user, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe, err := buildRecipe(payload)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	recipe.ID = existing.ID
	recipe.UserID = existing.UserID
	recipe.CreatedAt = existing.CreatedAt
	if recipe.ImageKey == nil && recipe.ImageURL != nil && deref(recipe.ImageURL) == deref(existing.ImageURL) {
		recipe.ImageKey = existing.ImageKey
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.WrapPersistence(err)
	}
	if deref(existing.ImageKey) != deref(recipe.ImageKey) {
		s.releaseImage(ctx, existing)
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, domain.WrapPersistence(err)
	}
	return toRecipeDetail(updated), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, user *domain.Identity, recipeID string) (domain.RecipeDetail, error) {
	recipe, err := s.findOwned(ctx, user, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID.String()); err != nil {
		return domain.RecipeDetail{}, domain.WrapPersistence(err)
	}
	s.releaseImage(ctx, recipe)

	return toRecipeDetail(recipe), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, user *domain.Identity, titleFilter string) (domain.RecipeListResponse, error) {
	owner, err := ownerID(user)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	recipes, err := s.recipeRepository.GetRecipes(ctx, owner.String(), titleFilter)
	if err != nil {
		return domain.RecipeListResponse{}, domain.WrapPersistence(err)
	}

	res := domain.RecipeListResponse{
		Recipes: make([]domain.Recipe, 0, len(recipes)),
		Total:   len(recipes),
	}
	for _, r := range recipes {
		res.Recipes = append(res.Recipes, toRecipe(r))
	}
	return res, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, user *domain.Identity, recipeID string) (domain.RecipeDetail, error) {
	recipe, err := s.findOwned(ctx, user, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

// releaseImage deletes the image r uploaded itself, unless another recipe
// still shows the same link. Failures are logged and otherwise ignored.
func (s *recipeService) releaseImage(ctx context.Context, r *entities.Recipe) {
	key := deref(r.ImageKey)
	if s.storage == nil || key == "" {
		return
	}
	if link := deref(r.ImageURL); link != "" {
		n, err := s.recipeRepository.CountImageUsers(ctx, link, r.ID.String())
		if err != nil {
			log.Warnf("failed to check users of recipe image %s: %v", key, err)
			return
		}
		if n > 0 {
			return
		}
	}
	if err := s.storage.DeleteFile(key); err != nil {
		log.Warnf("failed to delete recipe image %s: %v", key, err)
	}
}
