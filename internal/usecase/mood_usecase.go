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
	"oncotrack/pkg/timeutil"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMoodNotFound = errors.New("no mood recorded today")
	ErrInvalidLabel = errors.New("label must not be blank")
)

type MoodUsecase interface {
	// RecordMood stores today's mood, replacing the label when one already
	// exists. The bool reports whether a new row was created.
	RecordMood(ctx context.Context, userID uint, req *dto.RecordMoodRequest) (*dto.MoodResponse, bool, error)
	UpdateTodayMood(ctx context.Context, userID uint, req *dto.UpdateMoodRequest) (*dto.MoodResponse, error)
	GetTodayMood(ctx context.Context, userID uint) (*dto.MoodResponse, error)
	ListMoods(ctx context.Context, userID uint) ([]dto.MoodResponse, error)
}

type moodUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	moodRepo     repository.MoodRepository
	auditService service.AuditService
	days         *timeutil.DayResolver
}

func NewMoodUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	moodRepo repository.MoodRepository,
	auditService service.AuditService,
	days *timeutil.DayResolver,
) MoodUsecase {
	return &moodUsecase{
		db:           db,
		log:          log,
		moodRepo:     moodRepo,
		auditService: auditService,
		days:         days,
	}
}

func (u *moodUsecase) RecordMood(ctx context.Context, userID uint, req *dto.RecordMoodRequest) (*dto.MoodResponse, bool, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, false, ErrInvalidLabel
	}

	now := u.days.Now()
	day := timeutil.DayWindowAt(now, u.days.Location()).Key()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	previous, err := u.moodRepo.FindByUserAndDay(tx, userID, day)
	if err != nil {
		u.log.Warnf("Failed to find mood for user %d on %s: %+v", userID, day, err)
		return nil, false, err
	}

	mood := &entity.Mood{
		UserID: userID,
		Label:  label,
		Date:   now.UTC(),
		Day:    day,
	}
	if err := u.moodRepo.Upsert(tx, mood); err != nil {
		u.log.Warnf("Failed to upsert mood: %+v", err)
		return nil, false, err
	}

	// Reload so a replaced row reports its original id and date.
	saved, err := u.moodRepo.FindByUserAndDay(tx, userID, day)
	if err != nil {
		u.log.Warnf("Failed to reload mood: %+v", err)
		return nil, false, err
	}
	if saved == nil {
		return nil, false, ErrMoodNotFound
	}

	// An insert stamps both timestamps with one value; a replaced row gets a
	// newer updated_at. previous may be stale under concurrent first writes.
	created := saved.CreatedAt.Equal(saved.UpdatedAt)
	if created {
		err = u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionMoodRecord, "mood", saved.ID, converter.MoodToResponse(saved))
	} else {
		err = u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionMoodUpdate, "mood", saved.ID, converter.MoodToResponse(previous), converter.MoodToResponse(saved))
	}
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, false, err
	}

	return converter.MoodToResponse(saved), created, nil
}

func (u *moodUsecase) UpdateTodayMood(ctx context.Context, userID uint, req *dto.UpdateMoodRequest) (*dto.MoodResponse, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, ErrInvalidLabel
	}

	today := u.days.Today().UTC()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	mood, err := u.moodRepo.FindFirstInRange(tx, userID, today.Start, today.End)
	if err != nil {
		u.log.Warnf("Failed to find today's mood for user %d: %+v", userID, err)
		return nil, err
	}
	if mood == nil {
		return nil, ErrMoodNotFound
	}

	previous := converter.MoodToResponse(mood)
	if err := u.moodRepo.UpdateLabel(tx, mood, label); err != nil {
		u.log.Warnf("Failed to update mood %d: %+v", mood.ID, err)
		return nil, err
	}
	mood.Label = label

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionMoodUpdate, "mood", mood.ID, previous, converter.MoodToResponse(mood)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MoodToResponse(mood), nil
}

func (u *moodUsecase) GetTodayMood(ctx context.Context, userID uint) (*dto.MoodResponse, error) {
	today := u.days.Today().UTC()

	mood, err := u.moodRepo.FindFirstInRange(u.db.WithContext(ctx), userID, today.Start, today.End)
	if err != nil {
		u.log.Warnf("Failed to find today's mood for user %d: %+v", userID, err)
		return nil, err
	}
	if mood == nil {
		return nil, ErrMoodNotFound
	}

	return converter.MoodToResponse(mood), nil
}

func (u *moodUsecase) ListMoods(ctx context.Context, userID uint) ([]dto.MoodResponse, error) {
	moods, err := u.moodRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find moods for user %d: %+v", userID, err)
		return nil, err
	}

	return converter.MoodsToResponses(moods), nil
}
