package book

import "errors"

var (
	errInvalidOrderQty   = errors.New("invalid order quantity")
	errInvalidOrderPrice = errors.New("invalid order price")
)
