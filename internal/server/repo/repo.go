// Package repo is the gorm data-access layer of the rewards backend.
package repo

import "gorm.io/gorm"

type Repos struct {
	Users        Users
	Products     Products
	Orders       Orders
	Transactions Transactions
}

func New(gdb *gorm.DB) *Repos {
	return &Repos{
		Users:        Users{DB: gdb},
		Products:     Products{DB: gdb},
		Orders:       Orders{DB: gdb},
		Transactions: Transactions{DB: gdb},
	}
}
