package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

// DI
func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// 予約リクエストを保存する
func (r *AppointmentGormRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}
