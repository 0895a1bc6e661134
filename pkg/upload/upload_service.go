package upload

import (
	"context"
	"errors"
	"fmt"

	"Recipe-Box/domain"
	"Recipe-Box/internal/utils/storage"

	"github.com/google/uuid"
)

const folder = "recipes"

type (
	UploadService interface {
		UploadImage(ctx context.Context, user *domain.Identity, req domain.UploadImageRequest) (domain.UploadImageResponse, error)
	}

	uploadService struct {
		storage storage.Storage
	}
)

func NewUploadService(store storage.Storage) UploadService {
	return &uploadService{storage: store}
}

// UploadImage stores the file bytes as they are under a fresh name.
func (s *uploadService) UploadImage(_ context.Context, user *domain.Identity, req domain.UploadImageRequest) (domain.UploadImageResponse, error) {
	if user == nil {
		return domain.UploadImageResponse{}, domain.ErrUnauthorized
	}
	if req.File == nil || req.File.Size == 0 {
		return domain.UploadImageResponse{}, domain.ErrEmptyUpload
	}

	key, err := s.storage.UploadFile(uuid.NewString(), req.File, folder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotAllowed) {
			return domain.UploadImageResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.UploadImageResponse{}, fmt.Errorf("upload image: %w", err)
	}

	return domain.UploadImageResponse{
		ObjectKey: key,
		URL:       s.storage.GetPublicLinkKey(key),
	}, nil
}
