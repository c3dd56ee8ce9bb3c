package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/misionvictoriosa/site-backend/models"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// FindByID returns a media row by its ID, or nil when it does not exist.
func (r *MediaRepo) FindByID(id uint) (*models.Media, error) {
	var media models.Media
	err := r.db.First(&media, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// Delete removes a media row from the database by id
func (r *MediaRepo) Delete(id uint) error {
	return r.db.Delete(&models.Media{}, id).Error
}
