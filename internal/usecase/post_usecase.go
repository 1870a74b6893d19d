package usecase

import (
	"context"
	"errors"
	"strings"

	"oncotrack/internal/converter"
	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/domain/entity"
	"oncotrack/internal/domain/repository"
	"oncotrack/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidPost  = errors.New("title and content must not be blank")
)

type PostUsecase interface {
	CreatePost(ctx context.Context, userID uint, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	ListPosts(ctx context.Context) ([]dto.PostResponse, error)
}

type postUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	postRepo     repository.PostRepository
	auditService service.AuditService
}

func NewPostUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	postRepo repository.PostRepository,
	auditService service.AuditService,
) PostUsecase {
	return &postUsecase{
		db:           db,
		log:          log,
		postRepo:     postRepo,
		auditService: auditService,
	}
}

func (u *postUsecase) CreatePost(ctx context.Context, userID uint, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, ErrInvalidPost
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	post := &entity.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := u.postRepo.Create(tx, post); err != nil {
		u.log.Warnf("Failed to create post: %+v", err)
		return nil, err
	}

	saved, err := u.postRepo.FindByID(tx, post.ID)
	if err != nil {
		u.log.Warnf("Failed to reload post %d: %+v", post.ID, err)
		return nil, err
	}
	if saved == nil {
		return nil, ErrPostNotFound
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionPostCreate, "post", saved.ID, converter.PostToResponse(saved)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PostToResponse(saved), nil
}

func (u *postUsecase) ListPosts(ctx context.Context) ([]dto.PostResponse, error) {
	posts, err := u.postRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find posts: %+v", err)
		return nil, err
	}

	return converter.PostsToResponses(posts), nil
}
