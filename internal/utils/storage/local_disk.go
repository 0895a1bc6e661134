package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

type LocalDisk struct {
	dir     string
	baseURL string
}

// NewLocalDisk stores files below dir and links them under baseURL, which
// is expected to be where dir is served statically.
func NewLocalDisk(dir, baseURL string) (*LocalDisk, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalDisk{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *LocalDisk) Dir() string { return l.dir }

func (l *LocalDisk) path(key string) (string, error) {
	p := filepath.Join(l.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.dir, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidKey
	}
	return p, nil
}

func (l *LocalDisk) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext, err := extensionOf(file, allowed)
	if err != nil {
		return "", err
	}
	key, err := objectKey(folder, fileName, ext)
	if err != nil {
		return "", err
	}
	dst, err := l.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return key, nil
}

func (l *LocalDisk) DeleteFile(objectKey string) error {
	p, err := l.path(objectKey)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *LocalDisk) GetPublicLinkKey(objectKey string) string {
	return l.baseURL + "/" + objectKey
}

func (l *LocalDisk) GetObjectKeyFromLink(link string) string {
	return linkToKey(l.baseURL, link)
}
