package repository

import (
	"errors"

	"oncotrack/internal/domain/entity"
	domainRepo "oncotrack/internal/domain/repository"

	"gorm.io/gorm"
)

type postRepository struct{}

func NewPostRepository() domainRepo.PostRepository {
	return &postRepository{}
}

func (r *postRepository) Create(db *gorm.DB, post *entity.Post) error {
	return db.Omit("User").Create(post).Error
}

func (r *postRepository) FindByID(db *gorm.DB, id uint) (*entity.Post, error) {
	var post entity.Post
	err := db.Preload("User").Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindAll(db *gorm.DB) ([]entity.Post, error) {
	var posts []entity.Post
	err := db.Preload("User").Order("created_at DESC").Order("id DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
