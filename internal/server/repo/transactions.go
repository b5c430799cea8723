package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/server/models"
)

type Transactions struct {
	DB *gorm.DB
}

func (r *Transactions) PageByUserID(ctx context.Context, userID uint, page, pageSize int) ([]models.PointsTransaction, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.PointsTransaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var txs []models.PointsTransaction
	err = r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txs).Error
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// GrantStats is one row of the points-grants report.
type GrantStats struct {
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	Amount       int    `json:"amount"`
	Reason       string `json:"reason"`
	OperatorName string `json:"operator_name"`
	CreatedAt    string `json:"created_at"`
}

func (r *Transactions) GrantStats(ctx context.Context) ([]GrantStats, error) {
	var stats []GrantStats
	err := r.DB.WithContext(ctx).Table("points_transactions").
		Select("users.full_name as user_name, users.email as user_email, points_transactions.amount, points_transactions.reason, operators.full_name as operator_name, points_transactions.created_at").
		Joins("LEFT JOIN users ON users.id = points_transactions.user_id").
		Joins("LEFT JOIN users as operators ON operators.id = points_transactions.operator_id").
		Where("points_transactions.transaction_type = ?", "grant").
		Order("points_transactions.created_at DESC").
		Scan(&stats).Error
	return stats, err
}

// BalanceStats is one row of the points-balances report.
type BalanceStats struct {
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	PointsBalance int    `json:"points_balance"`
}

func (r *Transactions) BalanceStats(ctx context.Context) ([]BalanceStats, error) {
	var stats []BalanceStats
	err := r.DB.WithContext(ctx).Table("users").
		Select("users.full_name as user_name, users.email as user_email, users.points_balance").
		Where("users.is_active = ?", true).
		Order("users.points_balance DESC").
		Scan(&stats).Error
	return stats, err
}
