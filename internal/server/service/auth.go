package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
)

const firstLoginBonus = 1000

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Repos           *repo.Repos
	DB              *gorm.DB
	JWTSecret       []byte
	ExpirationHours int
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.ExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

// Login authenticates by email and password. The first successful login of
// an account grants the welcome bonus and clears the first-login flag.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repos.Users.GetByEmail(ctx, email)
	if err != nil {
		l.Warn("login_failed", "status", 401, "reason", "unknown email")
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		l.Warn("login_failed", "status", 401, "reason", "inactive account", "user_id", user.ID)
		return "", nil, ErrInactiveUser
	}

	if !CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password", "user_id", user.ID)
		return "", nil, ErrInvalidCredentials
	}

	if user.IsFirstLogin {
		if err := s.grantFirstLoginBonus(ctx, user); err != nil {
			l.Error("first_login_bonus_failed", "user_id", user.ID, "error", err)
			return "", nil, err
		}
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		l.Error("token_sign_failed", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	user.PasswordHash = ""
	l.Info("login_successful", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}

func (s *AuthService) grantFirstLoginBonus(ctx context.Context, user *models.User) error {
	newBalance := user.PointsBalance + firstLoginBonus

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"points_balance": newBalance,
				"is_first_login": false,
			}).Error
		if err != nil {
			return err
		}

		return tx.Create(&models.PointsTransaction{
			UserID:          user.ID,
			TransactionType: "grant",
			Amount:          firstLoginBonus,
			BalanceAfter:    newBalance,
			Reason:          "首次登录奖励 / First login bonus",
		}).Error
	})
	if err != nil {
		return err
	}

	user.PointsBalance = newBalance
	user.IsFirstLogin = false
	return nil
}

// UserFromToken resolves the account behind a bearer token; a deactivated
// account invalidates its outstanding tokens.
func (s *AuthService) UserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.Repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	user.PasswordHash = ""
	return user, nil
}
