package service

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
)

type PointsService struct {
	Repos  *repo.Repos
	DB     *gorm.DB
	Events EventPublisher
}

type pointsEvent struct {
	UserID          uint   `json:"user_id"`
	TransactionType string `json:"transaction_type"`
	Amount          int    `json:"amount"`
	BalanceAfter    int    `json:"balance_after"`
	Reason          string `json:"reason"`
}

func (s *PointsService) publish(ctx context.Context, userID uint, txType string, amount, balance int, reason string) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(ctx, TopicPointsEvents, strconv.FormatUint(uint64(userID), 10), pointsEvent{
		UserID:          userID,
		TransactionType: txType,
		Amount:          amount,
		BalanceAfter:    balance,
		Reason:          reason,
	})
}

func (s *PointsService) Grant(ctx context.Context, userID uint, amount int, reason string, operatorID uint) error {
	l := logging.FromContext(ctx).With("svc", "points.grant")

	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}

	user, err := s.Repos.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return fmt.Errorf("%w: cannot grant points to inactive user", ErrValidation)
	}

	newBalance := user.PointsBalance + amount
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points_balance", newBalance).Error
		if err != nil {
			return err
		}
		return tx.Create(&models.PointsTransaction{
			UserID:          userID,
			TransactionType: "grant",
			Amount:          amount,
			BalanceAfter:    newBalance,
			Reason:          reason,
			OperatorID:      &operatorID,
		}).Error
	})
	if err != nil {
		return err
	}

	l.Info("points_granted", "user_id", userID, "amount", amount, "operator_id", operatorID)
	s.publish(ctx, userID, "grant", amount, newBalance, reason)
	return nil
}

func (s *PointsService) Deduct(ctx context.Context, userID uint, amount int, reason string, operatorID uint) error {
	l := logging.FromContext(ctx).With("svc", "points.deduct")

	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", ErrValidation)
	}
	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}

	user, err := s.Repos.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PointsBalance < amount {
		return fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientPoints, user.PointsBalance, amount)
	}

	newBalance := user.PointsBalance - amount
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points_balance", newBalance).Error
		if err != nil {
			return err
		}
		return tx.Create(&models.PointsTransaction{
			UserID:          userID,
			TransactionType: "deduct",
			Amount:          -amount,
			BalanceAfter:    newBalance,
			Reason:          reason,
			OperatorID:      &operatorID,
		}).Error
	})
	if err != nil {
		return err
	}

	l.Info("points_deducted", "user_id", userID, "amount", amount, "operator_id", operatorID)
	s.publish(ctx, userID, "deduct", -amount, newBalance, reason)
	return nil
}

func (s *PointsService) Balance(ctx context.Context, userID uint) (int, error) {
	user, err := s.Repos.Users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.PointsBalance, nil
}

func (s *PointsService) History(ctx context.Context, userID uint, page, pageSize int) ([]models.PointsTransaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.Repos.Transactions.PageByUserID(ctx, userID, page, pageSize)
}

// batchGrantRow is one parsed row of the grant table:
// | email | name | points | note |
type batchGrantRow struct {
	Email  string
	Name   string
	Amount int
	Reason string
}

func parseBatchGrantTable(markdown string) ([]batchGrantRow, error) {
	rows, err := parseTableRows(markdown, 4)
	if err != nil {
		return nil, err
	}

	entries := make([]batchGrantRow, 0, len(rows))
	for i, fields := range rows {
		amount, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid amount in row %d: %s", ErrValidation, i+1, fields[2])
		}
		entries = append(entries, batchGrantRow{
			Email:  fields[0],
			Name:   fields[1],
			Amount: amount,
			Reason: fields[3],
		})
	}
	return entries, nil
}

// BatchGrant validates every row, then applies all grants in one
// transaction. A name column that does not match the account is an error.
func (s *PointsService) BatchGrant(ctx context.Context, markdown string, operatorID uint) error {
	l := logging.FromContext(ctx).With("svc", "points.batch_grant")

	entries, err := parseBatchGrantTable(markdown)
	if err != nil {
		return err
	}

	users := make(map[string]*models.User, len(entries))
	for i, entry := range entries {
		if entry.Email == "" {
			return fmt.Errorf("%w: entry %d: email is required", ErrValidation, i+1)
		}
		if entry.Amount <= 0 {
			return fmt.Errorf("%w: entry %d: amount must be greater than 0", ErrValidation, i+1)
		}
		if entry.Reason == "" {
			return fmt.Errorf("%w: entry %d: reason is required", ErrValidation, i+1)
		}

		user, err := s.Repos.Users.GetByEmail(ctx, entry.Email)
		if err != nil {
			return fmt.Errorf("%w: entry %d: user %s not found", ErrValidation, i+1, entry.Email)
		}
		if !user.IsActive {
			return fmt.Errorf("%w: entry %d: user %s is inactive", ErrValidation, i+1, entry.Email)
		}
		if entry.Name != "" && entry.Name != user.FullName {
			return fmt.Errorf("%w: entry %d: name mismatch for %s (expected %s, got %s)",
				ErrValidation, i+1, entry.Email, user.FullName, entry.Name)
		}
		users[entry.Email] = user
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			user := users[entry.Email]
			newBalance := user.PointsBalance + entry.Amount

			err := tx.Model(&models.User{}).
				Where("id = ?", user.ID).
				Update("points_balance", newBalance).Error
			if err != nil {
				return err
			}
			err = tx.Create(&models.PointsTransaction{
				UserID:          user.ID,
				TransactionType: "grant",
				Amount:          entry.Amount,
				BalanceAfter:    newBalance,
				Reason:          entry.Reason,
				OperatorID:      &operatorID,
			}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.Info("points_batch_granted", "entries", len(entries), "operator_id", operatorID)
	for _, entry := range entries {
		user := users[entry.Email]
		s.publish(ctx, user.ID, "grant", entry.Amount, user.PointsBalance+entry.Amount, entry.Reason)
	}
	return nil
}

func (s *PointsService) GrantsReport(ctx context.Context) ([]repo.GrantStats, error) {
	return s.Repos.Transactions.GrantStats(ctx)
}

func (s *PointsService) BalancesReport(ctx context.Context) ([]repo.BalanceStats, error) {
	return s.Repos.Transactions.BalanceStats(ctx)
}
