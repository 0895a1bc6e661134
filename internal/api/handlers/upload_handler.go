package handlers

import (
	"Recipe-Box/domain"
	"Recipe-Box/internal/api/presenters"
	"Recipe-Box/pkg/session"
	"Recipe-Box/pkg/upload"

	"github.com/gofiber/fiber/v2"
)

type (
	UploadHandler interface {
		UploadImage(c *fiber.Ctx) error
	}

	uploadHandler struct {
		uploadService upload.UploadService
	}
)

func NewUploadHandler(uploadService upload.UploadService) UploadHandler {
	return &uploadHandler{uploadService: uploadService}
}

func (h *uploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedUpload, domain.ErrEmptyUpload)
	}

	res, err := h.uploadService.UploadImage(c.Context(), session.Identity(c), domain.UploadImageRequest{File: file})
	if err != nil {
		return presenters.ErrorFrom(c, domain.MessageFailedUpload, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUpload)
}
