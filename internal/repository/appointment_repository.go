package repository

import (
	"context"

	"app/internal/domain/model"
)

// 来店予約の受付。確定・完了への更新は管理側プロセスが行う。
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
}
