package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

// DI
func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: db}
}

func (r *AddressGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	var list []model.Address

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default desc").Order("id asc").
		Find(&list).Error
	if err != nil {
		return []model.Address{}, err
	}
	return list, nil
}

func (r *AddressGormRepository) FindByID(ctx context.Context, id int64) (model.Address, error) {
	var a model.Address

	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

// デフォルト指定なら既存のデフォルトを外してから保存
func (r *AddressGormRepository) Create(ctx context.Context, a model.Address) (model.Address, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefault(tx, a.UserID); err != nil {
				return err
			}
		}
		return tx.Create(&a).Error
	})

	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

func (r *AddressGormRepository) Update(ctx context.Context, a model.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefault(tx, a.UserID); err != nil {
				return err
			}
		}

		res := tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", a.ID, a.UserID).
			Updates(map[string]interface{}{
				"full_name":     a.FullName,
				"phone":         a.Phone,
				"address_line1": a.AddressLine1,
				"address_line2": a.AddressLine2,
				"city":          a.City,
				"state":         a.State,
				"country":       a.Country,
				"postal_code":   a.PostalCode,
				"is_default":    a.IsDefault,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

func (r *AddressGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Address{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func clearDefault(tx *gorm.DB, userID int64) error {
	return tx.Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
