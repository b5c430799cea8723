package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/server/models"
)

type Orders struct {
	DB *gorm.DB
}

func (r *Orders) GetByID(ctx context.Context, id uint) (*models.RedemptionOrder, error) {
	var o models.RedemptionOrder
	err := r.DB.WithContext(ctx).Preload("User").Preload("Product").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Orders) GetByUserID(ctx context.Context, userID uint) ([]models.RedemptionOrder, error) {
	var orders []models.RedemptionOrder
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Orders) List(ctx context.Context, status *string, userID *uint) ([]models.RedemptionOrder, error) {
	q := r.DB.WithContext(ctx).Preload("User").Preload("Product").Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var orders []models.RedemptionOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Orders) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RedemptionOrder{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *Orders) BatchUpdateStatus(ctx context.Context, orderNumbers []string, status string) error {
	return r.DB.WithContext(ctx).Model(&models.RedemptionOrder{}).
		Where("order_number IN ?", orderNumbers).
		Update("status", status).Error
}

// OrderStats is one row of the redemptions report.
type OrderStats struct {
	ProductName string `json:"product_name"`
	ProductID   uint   `json:"product_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	PointsCost  int    `json:"points_cost"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func (r *Orders) Stats(ctx context.Context) ([]OrderStats, error) {
	var stats []OrderStats
	err := r.DB.WithContext(ctx).Table("redemption_orders").
		Select("redemption_orders.product_name, redemption_orders.product_id, users.full_name as user_name, users.email as user_email, redemption_orders.points_cost, redemption_orders.status, redemption_orders.created_at").
		Joins("LEFT JOIN users ON users.id = redemption_orders.user_id").
		Order("redemption_orders.created_at DESC").
		Scan(&stats).Error
	return stats, err
}
