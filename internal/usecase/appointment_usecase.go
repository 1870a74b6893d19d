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
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidAppointmentType = errors.New("type must be one of CONSULTATION, EXAM, TREATMENT")
	ErrInvalidTimestamp       = errors.New("invalid date, use RFC 3339 or YYYY-MM-DDTHH:MM:SS")
	ErrInvalidTitle           = errors.New("title must not be blank")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListAppointmentsByUser(ctx context.Context, userID uint) ([]dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uint, userID uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uint, userID uint) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	days            *timeutil.DayResolver
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	days *timeutil.DayResolver,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		days:            days,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointmentType := entity.AppointmentType(req.Type)
	if !appointmentType.IsValid() {
		return nil, ErrInvalidAppointmentType
	}
	date, err := timeutil.ParseTimestamp(req.Date, u.days.Location())
	if err != nil {
		return nil, ErrInvalidTimestamp
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		UserID:   userID,
		Type:     appointmentType,
		Date:     date.UTC(),
		Title:    title,
		Location: req.Location,
		Note:     req.Note,
		Doctor:   req.Doctor,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointmentsByUser(ctx context.Context, userID uint) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for user %d: %+v", userID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uint, userID uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUser(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	previous := converter.AppointmentToResponse(appointment)

	if req.Type != nil {
		appointmentType := entity.AppointmentType(*req.Type)
		if !appointmentType.IsValid() {
			return nil, ErrInvalidAppointmentType
		}
		appointment.Type = appointmentType
	}
	if req.Date != nil {
		date, err := timeutil.ParseTimestamp(*req.Date, u.days.Location())
		if err != nil {
			return nil, ErrInvalidTimestamp
		}
		appointment.Date = date.UTC()
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrInvalidTitle
		}
		appointment.Title = title
	}
	if req.Location != nil {
		appointment.Location = *req.Location
	}
	if req.Note != nil {
		appointment.Note = *req.Note
	}
	if req.Doctor != nil {
		appointment.Doctor = *req.Doctor
	}

	updated, err := u.appointmentRepo.Update(tx, appointment)
	if err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", id, err)
		return nil, err
	}
	if updated == 0 {
		return nil, ErrAppointmentNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentUpdate, "appointment", id, previous, converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// DeleteAppointment removes the row only when both id and userID match.
func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uint, userID uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByIDForUser(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	deleted, err := u.appointmentRepo.DeleteByIDForUser(tx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}
	if deleted == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionAppointmentDelete, "appointment", id, converter.AppointmentToResponse(appointment)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
