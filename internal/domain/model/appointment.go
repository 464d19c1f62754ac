package model

import "time"

// 来店予約のステータス
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// 来店予約リクエスト。受付後の確定・完了処理は管理側プロセスが行う。
type Appointment struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string            `gorm:"type:varchar(100);not null" json:"name"`
	Email         string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone         string            `gorm:"type:varchar(30)" json:"phone"`
	PreferredDate *time.Time        `json:"preferred_date,omitempty"`
	Message       string            `gorm:"type:text" json:"message"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
}
