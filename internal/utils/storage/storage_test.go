package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestLocalDisk_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewLocalDisk(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := disk.UploadFile("abc", fileHeader(t, "Photo.JPG", []byte("jpeg-bytes")), "recipes", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "recipes/abc.jpg", key)

	stored, err := os.ReadFile(filepath.Join(dir, "recipes", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(stored))

	link := disk.GetPublicLinkKey(key)
	assert.Equal(t, "http://localhost:8080/uploads/recipes/abc.jpg", link)
	assert.Equal(t, key, disk.GetObjectKeyFromLink(link))
	assert.Equal(t, "", disk.GetObjectKeyFromLink("https://elsewhere.example/recipes/abc.jpg"))

	require.NoError(t, disk.DeleteFile(key))
	_, err = os.Stat(filepath.Join(dir, "recipes", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, disk.DeleteFile(key))
}

func TestLocalDisk_RejectsDisallowedAndEscapingKeys(t *testing.T) {
	disk, err := NewLocalDisk(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	_, err = disk.UploadFile("abc", fileHeader(t, "script.sh", []byte("#!")), "recipes", AllowImage...)
	assert.ErrorIs(t, err, ErrFileNotAllowed)

	_, err = disk.UploadFile("../abc", fileHeader(t, "a.png", []byte("x")), "recipes", AllowImage...)
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.ErrorIs(t, disk.DeleteFile("../../etc/passwd"), ErrInvalidKey)
}

func TestAwsS3_Links(t *testing.T) {
	a := &AwsS3{bucket: "box", region: "ap-southeast-1"}
	link := a.GetPublicLinkKey("recipes/abc.png")
	assert.Equal(t, "https://box.s3.ap-southeast-1.amazonaws.com/recipes/abc.png", link)
	assert.Equal(t, "recipes/abc.png", a.GetObjectKeyFromLink(link))

	minio := &AwsS3{bucket: "box", region: "us-east-1", endpoint: "http://minio:9000"}
	assert.Equal(t, "http://minio:9000/box/recipes/abc.png", minio.GetPublicLinkKey("recipes/abc.png"))
	assert.Equal(t, "", minio.GetObjectKeyFromLink(link))
}
