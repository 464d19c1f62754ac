package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"app/internal/apperr"
	"app/internal/domain/model"
)

func newTestAppointmentUsecase() (*AppointmentUsecase, *fakeAppointmentRepo, *fakeNotifier) {
	apptRepo := &fakeAppointmentRepo{}
	notifier := newFakeNotifier()
	uc := NewAppointmentUsecase(apptRepo, notifier, zap.NewNop(), "admin@example.com")
	return uc, apptRepo, notifier
}

func TestAppointmentRequestSavesAndNotifies(t *testing.T) {
	uc, apptRepo, notifier := newTestAppointmentUsecase()
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	out, err := uc.Request(context.Background(), RequestAppointmentInput{
		Name:          "Nana Tanaka",
		Email:         "Nana@Example.com",
		Phone:         "090-0000-0000",
		PreferredDate: &date,
		Message:       "engagement ring consultation",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, out.Status)
	assert.Equal(t, "nana@example.com", out.Email)
	assert.Len(t, apptRepo.appts, 1)

	//申込者と管理者の両方に通知
	assert.Equal(t, []string{"nana@example.com", "admin@example.com"}, notifier.apptMails)
}

func TestAppointmentRequestValidation(t *testing.T) {
	uc, apptRepo, _ := newTestAppointmentUsecase()

	_, err := uc.Request(context.Background(), RequestAppointmentInput{Email: "a@example.com"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = uc.Request(context.Background(), RequestAppointmentInput{Name: "Nana", Email: "not-an-email"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	assert.Empty(t, apptRepo.appts)
}

func TestAppointmentRequestSucceedsWhenMailFails(t *testing.T) {
	uc, apptRepo, notifier := newTestAppointmentUsecase()
	notifier.fail = true

	out, err := uc.Request(context.Background(), RequestAppointmentInput{
		Name:  "Nana Tanaka",
		Email: "nana@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, out.Status)
	assert.Len(t, apptRepo.appts, 1)
}
