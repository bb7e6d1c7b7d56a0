package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrOutOfStock       = errors.New("out of stock")
	ErrForbidden        = errors.New("forbidden")
)

// InsufficientFundsError carries the amounts so the reply can tell the user
// how many coins the purchase needs and how many they hold.
type InsufficientFundsError struct {
	Required int
	Held     int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d coins, have %d", e.Required, e.Held)
}
