package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AppointmentUsecase は来店予約リクエストの受付。
type AppointmentUsecase struct {
	appointmentRepo repo.AppointmentRepository
	notifier        Notifier
	log             *zap.Logger
	adminEmail      string
}

func NewAppointmentUsecase(appointmentRepo repo.AppointmentRepository, notifier Notifier, log *zap.Logger, adminEmail string) *AppointmentUsecase {
	return &AppointmentUsecase{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		log:             log,
		adminEmail:      adminEmail,
	}
}

type RequestAppointmentInput struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PreferredDate *time.Time `json:"preferred_date"`
	Message       string     `json:"message"`
}

type AppointmentResponse struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Phone         string                  `json:"phone,omitempty"`
	PreferredDate *time.Time              `json:"preferred_date,omitempty"`
	Message       string                  `json:"message,omitempty"`
	Status        model.AppointmentStatus `json:"status"`
}

// Request は予約リクエストを保存し、申込者と管理者に通知する。
// メール失敗で受付自体は巻き戻さない。
func (u *AppointmentUsecase) Request(ctx context.Context, in RequestAppointmentInput) (AppointmentResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Name == "" {
		return AppointmentResponse{}, apperr.Validation("name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return AppointmentResponse{}, apperr.Validation("a valid email is required")
	}

	appt := model.Appointment{
		Name:          in.Name,
		Email:         in.Email,
		Phone:         strings.TrimSpace(in.Phone),
		PreferredDate: in.PreferredDate,
		Message:       in.Message,
		Status:        model.AppointmentStatusPending,
	}
	if err := u.appointmentRepo.Create(ctx, &appt); err != nil {
		return AppointmentResponse{}, apperr.Dependency("failed to save appointment", err)
	}

	if err := u.notifier.AppointmentConfirmation(ctx, appt); err != nil {
		u.log.Warn("failed to send appointment confirmation",
			zap.Int64("appointment_id", appt.ID), zap.Error(err))
	}
	if u.adminEmail != "" {
		if err := u.notifier.AppointmentRequested(ctx, u.adminEmail, appt); err != nil {
			u.log.Warn("failed to notify admin of appointment",
				zap.Int64("appointment_id", appt.ID), zap.Error(err))
		}
	}

	return AppointmentResponse{
		ID:            appt.ID,
		Name:          appt.Name,
		Email:         appt.Email,
		Phone:         appt.Phone,
		PreferredDate: appt.PreferredDate,
		Message:       appt.Message,
		Status:        appt.Status,
	}, nil
}
