package repo

import (
	"time"

	"fruitlens/backend/app/models"

	"gorm.io/gorm"
)

type ImageRepository struct{ db *gorm.DB }

func NewImageRepository(db *gorm.DB) *ImageRepository { return &ImageRepository{db: db} }

// Insert stamps the current time and persists the record. The userID value
// is stored as given; existence is not checked here.
func (r *ImageRepository) Insert(userID uint, imagePath, result string) (uint, error) {
	rec := models.ImageRecord{
		UserID:    userID,
		ImagePath: imagePath,
		Result:    result,
		Timestamp: time.Now().Format(models.TimestampLayout),
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// ListByUser returns the user's records most recent first. The id tiebreak
// keeps ordering stable for records stamped within the same second.
func (r *ImageRepository) ListByUser(userID uint) ([]models.ImageRecord, error) {
	var recs []models.ImageRecord
	return recs, r.db.Where("user_id = ?", userID).Order("timestamp DESC, id DESC").Find(&recs).Error
}

func (r *ImageRepository) ListAll() ([]models.ImageRecord, error) {
	var recs []models.ImageRecord
	return recs, r.db.Order("id").Find(&recs).Error
}

func (r *ImageRepository) DeleteByID(id uint) error {
	return r.db.Delete(&models.ImageRecord{}, id).Error
}

func (r *ImageRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.ImageRecord{}).Error
}
