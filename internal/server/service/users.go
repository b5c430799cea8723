package service

import (
	"context"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

type UserService struct {
	Repos *repo.Repos
	DB    *gorm.DB
}

type CreateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// CreateEmployee opens an account with the last 6 digits of the phone number
// as the initial password; the welcome bonus is granted on first login.
func (s *UserService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.create_employee")

	if req.FullName == "" || req.Email == "" {
		return nil, fmt.Errorf("%w: full_name and email are required", ErrValidation)
	}
	if len(req.Phone) < 6 {
		return nil, fmt.Errorf("%w: phone number must be at least 6 digits", ErrValidation)
	}

	exists, err := s.Repos.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %s", ErrConflict, req.Email)
	}

	initialPassword := req.Phone[len(req.Phone)-6:]
	hash, err := HashPassword(initialPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		PasswordHash:      hash,
		Role:              "employee",
		PointsBalance:     0,
		IsFirstLogin:      true,
		IsActive:          true,
		PreferredLanguage: "zh",
	}
	if err := s.Repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	l.Info("employee_created", "user_id", user.ID, "email", user.Email)
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) UpdatePhone(ctx context.Context, userID uint, phone string) error {
	if len(phone) < 6 {
		return fmt.Errorf("%w: phone number must be at least 6 digits", ErrValidation)
	}
	if !digitsOnly.MatchString(phone) {
		return fmt.Errorf("%w: phone number must contain only digits", ErrValidation)
	}
	return s.Repos.Users.UpdatePhone(ctx, userID, phone)
}

// SetDeparture deactivates an employee and invalidates any remaining points
// with a deduct ledger entry.
func (s *UserService) SetDeparture(ctx context.Context, userID, operatorID uint) error {
	l := logging.FromContext(ctx).With("svc", "users.set_departure")

	user, err := s.Repos.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return fmt.Errorf("%w: user is already inactive", ErrValidation)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		if user.PointsBalance == 0 {
			return nil
		}

		err = tx.Create(&models.PointsTransaction{
			UserID:          userID,
			TransactionType: "deduct",
			Amount:          -user.PointsBalance,
			BalanceAfter:    0,
			Reason:          "员工离职，积分失效 / Employee departure, points invalidated",
			OperatorID:      &operatorID,
		}).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points_balance", 0).Error
	})
	if err != nil {
		return err
	}

	l.Info("employee_departed", "user_id", userID, "operator_id", operatorID)
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repos.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) List(ctx context.Context, isActive *bool) ([]models.User, error) {
	users, err := s.Repos.Users.List(ctx, isActive)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
