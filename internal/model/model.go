// Package model defines the wire types exchanged with the rewards API.
package model

import "time"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

const (
	OrderPreparing = "preparing"
	OrderDelivered = "delivered"
)

const (
	TxGrant      = "grant"
	TxDeduct     = "deduct"
	TxRedemption = "redemption"
)

type User struct {
	ID                uint      `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Role              string    `json:"role"`
	PointsBalance     int       `json:"points_balance"`
	IsFirstLogin      bool      `json:"is_first_login"`
	IsActive          bool      `json:"is_active"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UserPatch carries the profile fields the client may rewrite locally after a
// server-side change has already been persisted.
type UserPatch struct {
	Phone             *string
	PointsBalance     *int
	PreferredLanguage *string
}

// Apply merges the non-nil fields of p into u and returns the result.
// Unspecified fields are kept as-is.
func (p UserPatch) Apply(u User) User {
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.PointsBalance != nil {
		u.PointsBalance = *p.PointsBalance
	}
	if p.PreferredLanguage != nil {
		u.PreferredLanguage = *p.PreferredLanguage
	}
	return u
}

type Product struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"image_url"`
	PointsRequired int       `json:"points_required"`
	StockQuantity  int       `json:"stock_quantity"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RedemptionOrder struct {
	ID                 uint      `json:"id"`
	OrderNumber        string    `json:"order_number"`
	UserID             uint      `json:"user_id"`
	ProductID          uint      `json:"product_id"`
	ProductName        string    `json:"product_name"`
	PointsCost         int       `json:"points_cost"`
	PointsBalanceAfter int       `json:"points_balance_after"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	User               *User     `json:"user,omitempty"`
	Product            *Product  `json:"product,omitempty"`
}

type PointsTransaction struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	TransactionType string    `json:"transaction_type"`
	Amount          int       `json:"amount"`
	BalanceAfter    int       `json:"balance_after"`
	Reason          string    `json:"reason"`
	OperatorID      *uint     `json:"operator_id"`
	RelatedOrderID  *uint     `json:"related_order_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransactionsPage is the paginated transactions listing as returned by the API.
type TransactionsPage struct {
	Transactions []PointsTransaction `json:"transactions"`
	Total        int64               `json:"total"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"page_size"`
}

type GrantReportRow struct {
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	Amount       int    `json:"amount"`
	Reason       string `json:"reason"`
	OperatorName string `json:"operator_name"`
	CreatedAt    string `json:"created_at"`
}

type BalanceReportRow struct {
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	PointsBalance int    `json:"points_balance"`
}

type RedemptionReportRow struct {
	ProductName string `json:"product_name"`
	ProductID   uint   `json:"product_id"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	PointsCost  int    `json:"points_cost"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
