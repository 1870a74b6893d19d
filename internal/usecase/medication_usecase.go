package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

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
	ErrMedicationNotFound = errors.New("medication not found")
	ErrInvalidDateRange   = errors.New("endDate must not be before startDate")
	ErrInvalidMedication  = errors.New("name, dosage and frequency must not be blank")
)

type MedicationUsecase interface {
	CreateMedication(ctx context.Context, userID uint, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error)
	ListMedicationsByUser(ctx context.Context, userID uint) ([]dto.MedicationResponse, error)
	DeleteMedication(ctx context.Context, id uint, userID uint) error
}

type medicationUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	medicationRepo repository.MedicationRepository
	auditService   service.AuditService
	days           *timeutil.DayResolver
}

func NewMedicationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicationRepo repository.MedicationRepository,
	auditService service.AuditService,
	days *timeutil.DayResolver,
) MedicationUsecase {
	return &medicationUsecase{
		db:             db,
		log:            log,
		medicationRepo: medicationRepo,
		auditService:   auditService,
		days:           days,
	}
}

func (u *medicationUsecase) CreateMedication(ctx context.Context, userID uint, req *dto.CreateMedicationRequest) (*dto.MedicationResponse, error) {
	name := strings.TrimSpace(req.Name)
	dosage := strings.TrimSpace(req.Dosage)
	frequency := strings.TrimSpace(req.Frequency)
	if name == "" || dosage == "" || frequency == "" {
		return nil, ErrInvalidMedication
	}

	startDate, err := timeutil.ParseTimestamp(req.StartDate, u.days.Location())
	if err != nil {
		return nil, ErrInvalidTimestamp
	}

	var endDate *time.Time
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		parsed, err := timeutil.ParseTimestamp(*req.EndDate, u.days.Location())
		if err != nil {
			return nil, ErrInvalidTimestamp
		}
		if parsed.Before(startDate) {
			return nil, ErrInvalidDateRange
		}
		parsed = parsed.UTC()
		endDate = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medication := &entity.Medication{
		UserID:    userID,
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		StartDate: startDate.UTC(),
		EndDate:   endDate,
	}
	if err := u.medicationRepo.Create(tx, medication); err != nil {
		u.log.Warnf("Failed to create medication: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionMedicationCreate, "medication", medication.ID, converter.MedicationToResponse(medication)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicationToResponse(medication), nil
}

func (u *medicationUsecase) ListMedicationsByUser(ctx context.Context, userID uint) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find medications for user %d: %+v", userID, err)
		return nil, err
	}

	return converter.MedicationsToResponses(medications), nil
}

func (u *medicationUsecase) DeleteMedication(ctx context.Context, id uint, userID uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	deleted, err := u.medicationRepo.DeleteByIDForUser(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to delete medication %d: %+v", id, err)
		return err
	}
	if deleted == 0 {
		return ErrMedicationNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionMedicationDelete, "medication", id, nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
