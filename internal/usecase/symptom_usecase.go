package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

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
	ErrSymptomNotFound       = errors.New("symptom not found")
	ErrSymptomOptionNotFound = errors.New("symptom option not found")
	ErrInvalidOptionName     = errors.New("symptom name must have between 1 and 80 characters")
	ErrInvalidSeverity       = errors.New("severity must be between 1 and 10")
)

const maxSymptomOptionNameLength = 80

type SymptomUsecase interface {
	// CreateSymptomOption returns the existing option when the user already has
	// one with the same case-insensitive name. The bool reports whether a row was created.
	CreateSymptomOption(ctx context.Context, userID uint, req *dto.CreateSymptomOptionRequest) (*dto.SymptomOptionResponse, bool, error)
	ListSymptomOptions(ctx context.Context, userID uint) ([]dto.SymptomOptionResponse, error)
	CreateSymptom(ctx context.Context, userID uint, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error)
	ListSymptoms(ctx context.Context, userID uint) ([]dto.SymptomResponse, error)
	ListTodaySymptoms(ctx context.Context, userID uint) ([]dto.SymptomResponse, error)
	DeleteSymptom(ctx context.Context, userID uint, id uint) error
}

type symptomUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	optionRepo   repository.SymptomOptionRepository
	symptomRepo  repository.SymptomRepository
	auditService service.AuditService
	days         *timeutil.DayResolver
}

func NewSymptomUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	optionRepo repository.SymptomOptionRepository,
	symptomRepo repository.SymptomRepository,
	auditService service.AuditService,
	days *timeutil.DayResolver,
) SymptomUsecase {
	return &symptomUsecase{
		db:           db,
		log:          log,
		optionRepo:   optionRepo,
		symptomRepo:  symptomRepo,
		auditService: auditService,
		days:         days,
	}
}

func (u *symptomUsecase) CreateSymptomOption(ctx context.Context, userID uint, req *dto.CreateSymptomOptionRequest) (*dto.SymptomOptionResponse, bool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxSymptomOptionNameLength {
		return nil, false, ErrInvalidOptionName
	}
	nameKey := strings.ToLower(name)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	option := &entity.SymptomOption{
		UserID:  userID,
		Name:    name,
		NameKey: nameKey,
	}
	created, err := u.optionRepo.CreateIfAbsent(tx, option)
	if err != nil {
		u.log.Warnf("Failed to create symptom option: %+v", err)
		return nil, false, err
	}

	if !created {
		existing, err := u.optionRepo.FindByNameKey(tx, userID, nameKey)
		if err != nil {
			u.log.Warnf("Failed to find symptom option %q: %+v", nameKey, err)
			return nil, false, err
		}
		if existing == nil {
			return nil, false, ErrSymptomOptionNotFound
		}
		return converter.SymptomOptionToResponse(existing), false, nil
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionSymptomOptionAdd, "symptom_option", option.ID, converter.SymptomOptionToResponse(option)); err != nil {
		return nil, false, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, false, err
	}

	return converter.SymptomOptionToResponse(option), true, nil
}

func (u *symptomUsecase) ListSymptomOptions(ctx context.Context, userID uint) ([]dto.SymptomOptionResponse, error) {
	options, err := u.optionRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find symptom options for user %d: %+v", userID, err)
		return nil, err
	}

	return converter.SymptomOptionsToResponses(options), nil
}

func (u *symptomUsecase) CreateSymptom(ctx context.Context, userID uint, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error) {
	if req.Severity < entity.MinSymptomSeverity || req.Severity > entity.MaxSymptomSeverity {
		return nil, ErrInvalidSeverity
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// The option must belong to the same user as the symptom.
	option, err := u.optionRepo.FindByIDForUser(tx, req.SymptomOptionID, userID)
	if err != nil {
		u.log.Warnf("Failed to find symptom option %d: %+v", req.SymptomOptionID, err)
		return nil, err
	}
	if option == nil {
		return nil, ErrSymptomOptionNotFound
	}

	symptom := &entity.Symptom{
		UserID:          userID,
		SymptomOptionID: option.ID,
		Severity:        req.Severity,
		Note:            strings.TrimSpace(req.Note),
		CreatedAt:       u.days.Now().UTC(),
	}
	if err := u.symptomRepo.Create(tx, symptom); err != nil {
		u.log.Warnf("Failed to create symptom: %+v", err)
		return nil, err
	}
	symptom.SymptomOption = *option

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionSymptomCreate, "symptom", symptom.ID, converter.SymptomToResponse(symptom)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.SymptomToResponse(symptom), nil
}

func (u *symptomUsecase) ListSymptoms(ctx context.Context, userID uint) ([]dto.SymptomResponse, error) {
	return u.listSymptoms(ctx, userID, nil)
}

func (u *symptomUsecase) ListTodaySymptoms(ctx context.Context, userID uint) ([]dto.SymptomResponse, error) {
	today := u.days.Today().UTC()
	return u.listSymptoms(ctx, userID, &today)
}

func (u *symptomUsecase) listSymptoms(ctx context.Context, userID uint, window *timeutil.Window) ([]dto.SymptomResponse, error) {
	symptoms, err := u.symptomRepo.FindByUserID(u.db.WithContext(ctx), userID, window)
	if err != nil {
		u.log.Warnf("Failed to find symptoms for user %d: %+v", userID, err)
		return nil, err
	}

	return converter.SymptomsToResponses(symptoms), nil
}

func (u *symptomUsecase) DeleteSymptom(ctx context.Context, userID uint, id uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	symptom, err := u.symptomRepo.FindByIDForUser(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to find symptom %d: %+v", id, err)
		return err
	}
	if symptom == nil {
		return ErrSymptomNotFound
	}

	deleted, err := u.symptomRepo.DeleteByIDForUser(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to delete symptom %d: %+v", id, err)
		return err
	}
	if deleted == 0 {
		return ErrSymptomNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionSymptomDelete, "symptom", id, converter.SymptomToResponse(symptom)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
