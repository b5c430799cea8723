package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
)

var orderStatuses = map[string]bool{
	"preparing": true,
	"delivered": true,
}

type RedemptionService struct {
	Repos  *repo.Repos
	DB     *gorm.DB
	Events EventPublisher
}

type redemptionEvent struct {
	OrderNumber string `json:"order_number"`
	UserID      uint   `json:"user_id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	PointsCost  int    `json:"points_cost"`
	Status      string `json:"status"`
}

func orderNumber(userID, productID uint, now time.Time) string {
	return fmt.Sprintf("RD%s%d%d", now.Format("20060102150405"), userID, productID)
}

// Redeem exchanges points for a product. Balance deduction, stock decrement,
// order creation and the ledger entry happen in one transaction.
func (s *RedemptionService) Redeem(ctx context.Context, userID, productID uint) (*models.RedemptionOrder, error) {
	l := logging.FromContext(ctx).With("svc", "redemptions.redeem")

	var order *models.RedemptionOrder
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if !user.IsActive {
			return ErrInactiveUser
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		if product.Status != "active" {
			return fmt.Errorf("%w: product %s is not available", ErrUnavailable, product.Name)
		}
		if product.StockQuantity <= 0 {
			return fmt.Errorf("%w: product %s", ErrOutOfStock, product.Name)
		}
		if user.PointsBalance < product.PointsRequired {
			return fmt.Errorf("%w: balance %d, required %d", ErrInsufficientPoints, user.PointsBalance, product.PointsRequired)
		}

		newBalance := user.PointsBalance - product.PointsRequired

		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points_balance", newBalance).Error
		if err != nil {
			return err
		}

		err = tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Update("stock_quantity", product.StockQuantity-1).Error
		if err != nil {
			return err
		}

		order = &models.RedemptionOrder{
			OrderNumber:        orderNumber(userID, productID, time.Now()),
			UserID:             userID,
			ProductID:          productID,
			ProductName:        product.Name,
			PointsCost:         product.PointsRequired,
			PointsBalanceAfter: newBalance,
			Status:             "preparing",
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Create(&models.PointsTransaction{
			UserID:          userID,
			TransactionType: "redemption",
			Amount:          -product.PointsRequired,
			BalanceAfter:    newBalance,
			Reason:          fmt.Sprintf("兑换商品: %s / Redeem product: %s", product.Name, product.Name),
			RelatedOrderID:  &order.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	l.Info("order_created", "order_number", order.OrderNumber, "user_id", userID, "product_id", productID)
	if s.Events != nil {
		s.Events.Publish(ctx, TopicRedemptionEvents, order.OrderNumber, redemptionEvent{
			OrderNumber: order.OrderNumber,
			UserID:      userID,
			ProductID:   productID,
			ProductName: order.ProductName,
			PointsCost:  order.PointsCost,
			Status:      order.Status,
		})
	}
	return order, nil
}

func (s *RedemptionService) History(ctx context.Context, userID uint) ([]models.RedemptionOrder, error) {
	return s.Repos.Orders.GetByUserID(ctx, userID)
}

func (s *RedemptionService) GetByID(ctx context.Context, orderID uint) (*models.RedemptionOrder, error) {
	return s.Repos.Orders.GetByID(ctx, orderID)
}

func (s *RedemptionService) ListOrders(ctx context.Context, status *string, userID *uint) ([]models.RedemptionOrder, error) {
	if status != nil && !orderStatuses[*status] {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, *status)
	}
	return s.Repos.Orders.List(ctx, status, userID)
}

// BatchUpdateStatus moves every listed order to the given status. Any
// unknown order number fails the whole batch.
func (s *RedemptionService) BatchUpdateStatus(ctx context.Context, orderNumbers []string, status string) (int, error) {
	l := logging.FromContext(ctx).With("svc", "redemptions.batch_status")

	if len(orderNumbers) == 0 {
		return 0, fmt.Errorf("%w: no order numbers provided", ErrValidation)
	}
	if !orderStatuses[status] {
		return 0, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	for _, number := range orderNumbers {
		exists, err := s.Repos.Orders.ExistsByOrderNumber(ctx, number)
		if err != nil {
			return 0, err
		}
		if !exists {
			return 0, fmt.Errorf("%w: order %s not found", ErrValidation, number)
		}
	}

	if err := s.Repos.Orders.BatchUpdateStatus(ctx, orderNumbers, status); err != nil {
		return 0, err
	}

	l.Info("orders_status_updated", "count", len(orderNumbers), "status", status)
	return len(orderNumbers), nil
}

func (s *RedemptionService) Report(ctx context.Context) ([]repo.OrderStats, error) {
	return s.Repos.Orders.Stats(ctx)
}
