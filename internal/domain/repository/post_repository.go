package repository

import (
	"oncotrack/internal/domain/entity"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(db *gorm.DB, post *entity.Post) error
	FindByID(db *gorm.DB, id uint) (*entity.Post, error)
	FindAll(db *gorm.DB) ([]entity.Post, error)
}
