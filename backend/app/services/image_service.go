package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fruitlens/backend/app/models"
	"fruitlens/backend/app/repo"

	"github.com/google/uuid"
)

// ImageService persists image files under a per-user directory and their
// classification records through the image repository. Image bytes never
// touch the database.
type ImageService struct {
	images      *repo.ImageRepository
	storageRoot string
}

func NewImageService(images *repo.ImageRepository, storageRoot string) *ImageService {
	return &ImageService{images: images, storageRoot: storageRoot}
}

// SaveUpload writes the uploaded bytes under <root>/<userID>/<uuid>_<name>
// and returns the stored path.
func (s *ImageService) SaveUpload(userID uint, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.storageRoot, fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	dst := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(filename))
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// SaveLocal copies an image already on disk into the storage root. This is
// the desktop flow, where the user picks a file by path.
func (s *ImageService) SaveLocal(userID uint, srcPath string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.SaveUpload(userID, filepath.Base(srcPath), src)
}

func (s *ImageService) Record(userID uint, imagePath, label string) (uint, error) {
	return s.images.Insert(userID, imagePath, label)
}

func (s *ImageService) HistoryFor(userID uint) ([]models.ImageRecord, error) {
	return s.images.ListByUser(userID)
}

func (s *ImageService) ListAll() ([]models.ImageRecord, error) { return s.images.ListAll() }

func (s *ImageService) Delete(id uint) error { return s.images.DeleteByID(id) }
