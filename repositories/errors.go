package repositories

import "errors"

// Common errors returned by the stores. Services check these with
// errors.Is and controllers map them onto HTTP statuses.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrOrderNotFound    = errors.New("order not found")
)
