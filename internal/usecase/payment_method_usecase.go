package usecase

import (
	"context"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// PaymentMethodUsecase は利用可能な支払い方法の一覧。
type PaymentMethodUsecase struct {
	paymentMethodRepo repo.PaymentMethodRepository
}

func NewPaymentMethodUsecase(paymentMethodRepo repo.PaymentMethodRepository) *PaymentMethodUsecase {
	return &PaymentMethodUsecase{paymentMethodRepo: paymentMethodRepo}
}

func (u *PaymentMethodUsecase) ListActive(ctx context.Context) ([]model.PaymentMethod, error) {
	methods, err := u.paymentMethodRepo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Dependency("failed to list payment methods", err)
	}
	return methods, nil
}
