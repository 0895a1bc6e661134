package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Recipe-Box/domain"
	"Recipe-Box/internal/api/presenters"
	"Recipe-Box/internal/utils"
	"Recipe-Box/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecipeService struct {
	gotUser    *domain.Identity
	gotID      string
	gotFilter  string
	gotPayload domain.RecipePayload

	detail domain.RecipeDetail
	list   domain.RecipeListResponse
	err    error
}

func (f *fakeRecipeService) CreateRecipe(_ context.Context, user *domain.Identity, p domain.RecipePayload) (domain.RecipeDetail, error) {
	f.gotUser, f.gotPayload = user, p
	return f.detail, f.err
}
func (f *fakeRecipeService) UpdateRecipe(_ context.Context, user *domain.Identity, id string, p domain.RecipePayload) (domain.RecipeDetail, error) {
	f.gotUser, f.gotID, f.gotPayload = user, id, p
	return f.detail, f.err
}
func (f *fakeRecipeService) DeleteRecipe(_ context.Context, user *domain.Identity, id string) (domain.RecipeDetail, error) {
	f.gotUser, f.gotID = user, id
	return f.detail, f.err
}
func (f *fakeRecipeService) ListRecipes(_ context.Context, user *domain.Identity, filter string) (domain.RecipeListResponse, error) {
	f.gotUser, f.gotFilter = user, filter
	return f.list, f.err
}
func (f *fakeRecipeService) GetRecipe(_ context.Context, user *domain.Identity, id string) (domain.RecipeDetail, error) {
	f.gotUser, f.gotID = user, id
	return f.detail, f.err
}

type fakeUploadService struct {
	url   string
	calls int
}

func (f *fakeUploadService) UploadImage(_ context.Context, _ *domain.Identity, req domain.UploadImageRequest) (domain.UploadImageResponse, error) {
	f.calls++
	return domain.UploadImageResponse{ObjectKey: "recipes/x.png", URL: f.url}, nil
}

const testUserHeader = "X-Test-User"

func newRecipeApp(svc *fakeRecipeService) *fiber.App {
	return newRecipeAppWith(svc, &fakeUploadService{url: "http://img/recipes/x.png"})
}

func newRecipeAppWith(svc *fakeRecipeService, uploads *fakeUploadService) *fiber.App {
	utils.InitValidator()
	h := NewRecipeHandler(svc, uploads, utils.Validate)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get(testUserHeader); id != "" {
			session.SetIdentity(c, id, domain.RoleUser)
		}
		return c.Next()
	})
	r := app.Group("/api/v1/recipes")
	r.Get("", h.ListRecipes)
	r.Get("/:id", h.GetRecipe)
	r.Post("", h.CreateRecipe)
	r.Put("/:id", h.UpdateRecipe)
	r.Delete("/:id", h.DeleteRecipe)
	return app
}

func decode(t *testing.T, res *http.Response) presenters.Response {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out presenters.Response
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func formRequest(method, target string, values url.Values, user string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	return req
}

func TestCreateRecipe_ParsesForm(t *testing.T) {
	svc := &fakeRecipeService{detail: domain.RecipeDetail{Recipe: domain.Recipe{ID: "r1", Title: "Pancakes"}}}
	app := newRecipeApp(svc)

	values := url.Values{}
	values.Set("title", "Pancakes")
	values.Set("servings", "4")
	values.Set("cookTimeMins", "15")
	values.Set("ingredients", `[{"ingredient":"flour","quantity":"2","unit":"cup"}]`)
	values.Set("steps", `["Mix","Cook"]`)
	values.Set("tags", `["breakfast"]`)

	res, err := app.Test(formRequest(http.MethodPost, "/api/v1/recipes", values, "u1"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	out := decode(t, res)
	assert.Equal(t, domain.StatusOK, out.Status)
	require.NotNil(t, svc.gotUser)
	assert.Equal(t, "u1", svc.gotUser.ID)
	assert.Equal(t, "Pancakes", svc.gotPayload.Title)
	assert.Equal(t, "4", svc.gotPayload.Servings)
	assert.Equal(t, []string{"Mix", "Cook"}, svc.gotPayload.Steps)
	require.Len(t, svc.gotPayload.Ingredients, 1)
	assert.Equal(t, "flour", svc.gotPayload.Ingredients[0].Ingredient)
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, user string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("file", "cake.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	return req
}

func TestCreateRecipe_UploadsImage(t *testing.T) {
	svc := &fakeRecipeService{}
	uploads := &fakeUploadService{url: "http://img/recipes/x.png"}
	app := newRecipeAppWith(svc, uploads)

	res, err := app.Test(multipartRequest(t, http.MethodPost, "/api/v1/recipes", map[string]string{
		"title":     "Cake",
		"image_url": "http://img/recipes/someone-else.png",
	}, "u1"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, 1, uploads.calls)
	assert.Equal(t, "http://img/recipes/x.png", svc.gotPayload.ImageURL)
	assert.Equal(t, "recipes/x.png", svc.gotPayload.ImageKey)
}

func TestCreateRecipe_FormCannotSetImageKey(t *testing.T) {
	svc := &fakeRecipeService{}
	app := newRecipeApp(svc)

	values := url.Values{"title": {"Cake"}, "image_url": {"http://img/recipes/a.png"}, "image_key": {"recipes/a.png"}}
	res, err := app.Test(formRequest(http.MethodPost, "/api/v1/recipes", values, "u1"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, "http://img/recipes/a.png", svc.gotPayload.ImageURL)
	assert.Empty(t, svc.gotPayload.ImageKey)
}

func TestUpdateRecipe_NoUploadForNonOwner(t *testing.T) {
	svc := &fakeRecipeService{err: domain.ErrRecipeNotFound}
	uploads := &fakeUploadService{url: "http://img/recipes/x.png"}
	app := newRecipeAppWith(svc, uploads)

	res, err := app.Test(multipartRequest(t, http.MethodPut, "/api/v1/recipes/r1", map[string]string{"title": "Cake"}, "u2"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, domain.StatusNotFound, decode(t, res).Status)
	assert.Equal(t, 0, uploads.calls)
	assert.Equal(t, "r1", svc.gotID)
}

func TestUpdateRecipe_UploadsForOwner(t *testing.T) {
	svc := &fakeRecipeService{}
	uploads := &fakeUploadService{url: "http://img/recipes/x.png"}
	app := newRecipeAppWith(svc, uploads)

	res, err := app.Test(multipartRequest(t, http.MethodPut, "/api/v1/recipes/r1", map[string]string{"title": "Cake"}, "u1"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, 1, uploads.calls)
	assert.Equal(t, "recipes/x.png", svc.gotPayload.ImageKey)
}

func TestCreateRecipe_Anonymous(t *testing.T) {
	svc := &fakeRecipeService{}
	app := newRecipeApp(svc)

	res, err := app.Test(formRequest(http.MethodPost, "/api/v1/recipes", url.Values{"title": {"x"}}, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

	out := decode(t, res)
	assert.Equal(t, domain.StatusUnauthorized, out.Status)
	assert.Equal(t, domain.MessageSignInRequired, out.Message)
	assert.Nil(t, svc.gotUser)
}

func TestCreateRecipe_MalformedCollection(t *testing.T) {
	svc := &fakeRecipeService{}
	app := newRecipeApp(svc)

	values := url.Values{"title": {"x"}, "steps": {`["oops`}}
	res, err := app.Test(formRequest(http.MethodPost, "/api/v1/recipes", values, "u1"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, domain.StatusInvalidArgument, decode(t, res).Status)
}

func TestRecipeHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		status string
	}{
		{"validation", domain.NewValidationError("title", "title is required"), fiber.StatusBadRequest, domain.StatusInvalidArgument},
		{"not found", domain.ErrRecipeNotFound, fiber.StatusNotFound, domain.StatusNotFound},
		{"bad id", domain.ErrInvalidRecipeID, fiber.StatusBadRequest, domain.StatusInvalidArgument},
		{"unauthorized", domain.ErrUnauthorized, fiber.StatusUnauthorized, domain.StatusUnauthorized},
		{"persistence", domain.WrapPersistence(errors.New("deadlock")), fiber.StatusInternalServerError, domain.StatusInternalError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newRecipeApp(&fakeRecipeService{err: tc.err})

			values := url.Values{"title": {"Soup"}}
			res, err := app.Test(formRequest(http.MethodPut, "/api/v1/recipes/abc", values, "u1"))
			require.NoError(t, err)
			assert.Equal(t, tc.code, res.StatusCode)

			out := decode(t, res)
			assert.Equal(t, tc.status, out.Status)
			if tc.status == domain.StatusInternalError {
				assert.Empty(t, out.Error)
			}
		})
	}
}

func TestListRecipes_PassesFilter(t *testing.T) {
	svc := &fakeRecipeService{list: domain.RecipeListResponse{Recipes: []domain.Recipe{}}}
	app := newRecipeApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes?search=zz-no-match", nil)
	req.Header.Set(testUserHeader, "u1")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "zz-no-match", svc.gotFilter)
	assert.Equal(t, domain.StatusOK, decode(t, res).Status)
}

func TestGetAndDeleteRecipe(t *testing.T) {
	svc := &fakeRecipeService{detail: domain.RecipeDetail{Recipe: domain.Recipe{ID: "r9"}}}
	app := newRecipeApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/r9", nil)
	req.Header.Set(testUserHeader, "u1")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "r9", svc.gotID)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/recipes/r9", nil)
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Nil(t, svc.gotUser)
}
