package storage

import (
	"errors"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"Recipe-Box/internal/utils"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

var (
	ErrFileNotAllowed = errors.New("file type not allowed")
	ErrInvalidKey     = errors.New("invalid object key")
)

// Storage keeps uploaded blobs under object keys of the form
// "<folder>/<name><ext>" and exposes them through public links.
type Storage interface {
	UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
	DeleteFile(objectKey string) error
	GetPublicLinkKey(objectKey string) string
	GetObjectKeyFromLink(link string) string
}

// NewStorage picks the backend named by STORAGE_DRIVER.
func NewStorage() (Storage, error) {
	switch utils.GetConfig("STORAGE_DRIVER") {
	case "s3":
		s, err := NewAwsS3()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		baseURL := strings.TrimRight(utils.GetConfig("APP_URL"), "/") + "/uploads"
		l, err := NewLocalDisk(utils.GetConfig("UPLOAD_DIR"), baseURL)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
}

func extensionOf(file *multipart.FileHeader, allowed []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowed) == 0 {
		return ext, nil
	}
	for _, a := range allowed {
		if ext == a {
			return ext, nil
		}
	}
	return "", ErrFileNotAllowed
}

func objectKey(folder, fileName, ext string) (string, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) || strings.Contains(folder, "..") {
		return "", ErrInvalidKey
	}
	return path.Join(folder, fileName+ext), nil
}

// linkToKey strips base from link. Links that do not belong to base yield "".
func linkToKey(base, link string) string {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
