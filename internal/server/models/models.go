package models

import "time"

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FullName          string    `gorm:"size:100;not null" json:"full_name"`
	Email             string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone             string    `gorm:"size:20;not null" json:"phone"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	Role              string    `gorm:"size:20;default:employee" json:"role"`
	PointsBalance     int       `gorm:"default:0" json:"points_balance"`
	// No gorm defaults on the flags: a default would swallow explicit
	// false values on insert. Creation code sets them.
	IsFirstLogin      bool      `gorm:"not null" json:"is_first_login"`
	IsActive          bool      `gorm:"not null" json:"is_active"`
	PreferredLanguage string    `gorm:"size:10;default:zh" json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Product struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	ImageURL       string    `gorm:"size:500" json:"image_url"`
	PointsRequired int       `gorm:"not null" json:"points_required"`
	StockQuantity  int       `gorm:"default:0" json:"stock_quantity"`
	Status         string    `gorm:"size:20;default:active" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductPriceHistory records every change to a product's point price.
type ProductPriceHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"not null" json:"product_id"`
	OldPoints  *int      `json:"old_points"`
	NewPoints  int       `gorm:"not null" json:"new_points"`
	OperatorID *uint     `json:"operator_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type RedemptionOrder struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	OrderNumber        string    `gorm:"uniqueIndex;size:50;not null" json:"order_number"`
	UserID             uint      `gorm:"not null" json:"user_id"`
	User               *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ProductID          uint      `gorm:"not null" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName        string    `gorm:"size:200;not null" json:"product_name"`
	PointsCost         int       `gorm:"not null" json:"points_cost"`
	PointsBalanceAfter int       `gorm:"not null" json:"points_balance_after"`
	Status             string    `gorm:"size:20;default:preparing" json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PointsTransaction is an append-only ledger entry; rows are never updated.
type PointsTransaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	TransactionType string    `gorm:"size:20;not null" json:"transaction_type"`
	Amount          int       `gorm:"not null" json:"amount"`
	BalanceAfter    int       `gorm:"not null" json:"balance_after"`
	Reason          string    `gorm:"size:500" json:"reason"`
	OperatorID      *uint     `json:"operator_id"`
	RelatedOrderID  *uint     `json:"related_order_id"`
	CreatedAt       time.Time `json:"created_at"`
}
