package domain

import (
	"fmt"
	"mime/multipart"
)

var (
	MessageSuccessUpload = "file uploaded successfully"
	MessageFailedUpload  = "failed to upload file"

	ErrInvalidImageFormat = fmt.Errorf("%w: unsupported image format", ErrInvalidArgument)
	ErrEmptyUpload        = fmt.Errorf("%w: no file provided", ErrInvalidArgument)
)

type (
	UploadImageRequest struct {
		File *multipart.FileHeader `form:"file" validate:"required"`
	}

	UploadImageResponse struct {
		ObjectKey string `json:"object_key"`
		URL       string `json:"url"`
	}
)
