package orderbook

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrAlreadyTerminal   = errors.New("order already terminal")
	ErrInvalidOrderPrice = errors.New("invalid order price")
	ErrInvalidOrderQty   = errors.New("invalid order quantity")
	ErrBelowMinOrderSize = errors.New("quantity below minimum order size")
)
