package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/server/models"
)

type Products struct {
	DB *gorm.DB
}

func (r *Products) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Active returns the catalog shown to employees.
func (r *Products) Active(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("status = ?", "active").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Products) List(ctx context.Context, status *string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Products) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
