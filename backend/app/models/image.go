package models

import "time"

// TimestampLayout is the lexicographically sortable format stamped on every
// image record; history ordering relies on it.
const TimestampLayout = "2006-01-02 15:04:05"

// ImageRecord is one stored classification. UserID is not validated against
// the users table at insert time; cascade deletion is handled explicitly by
// the repository.
type ImageRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	ImagePath string `gorm:"size:1024;not null"`
	Result    string `gorm:"size:255"`
	Timestamp string `gorm:"size:32;not null"`
	CreatedAt time.Time
}

func (ImageRecord) TableName() string { return "images" }
