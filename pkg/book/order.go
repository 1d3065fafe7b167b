package book

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

type OrderType string

const (
	LIMIT  OrderType = "LIMIT"
	MARKET OrderType = "MARKET"
)

// Market orders carry the most aggressive price for their side so the
// matching predicate accepts every resting level.
var (
	marketBuyPrice  = decimal.NewFromInt(math.MaxInt64)
	marketSellPrice = decimal.Zero
)

// Order is a buy/sell intention. Quantity is decremented in place as the
// order fills; an order with zero quantity is fully filled and never stored
// on a book.
type Order struct {
	ID       string
	Symbol   string
	Side     Side
	Type     OrderType
	Price    decimal.Decimal
	Quantity decimal.Decimal
	TraderID string
}

func newOrder(symbol string, side Side, typ OrderType, qty, price decimal.Decimal, traderID string) *Order {
	return &Order{
		ID:       uuid.New().String(),
		Symbol:   symbol,
		Side:     side,
		Type:     typ,
		Price:    price,
		Quantity: qty,
		TraderID: traderID,
	}
}

// NewLimitBuy returns a buy order that executes at price or better and may
// rest on the book while unfilled.
func NewLimitBuy(symbol string, qty, price decimal.Decimal, traderID string) (*Order, error) {
	if !qty.IsPositive() {
		return nil, errInvalidOrderQty
	}
	if !price.IsPositive() {
		return nil, errInvalidOrderPrice
	}
	return newOrder(symbol, BUY, LIMIT, qty, price, traderID), nil
}

// NewLimitSell returns a sell order that executes at price or better and may
// rest on the book while unfilled.
func NewLimitSell(symbol string, qty, price decimal.Decimal, traderID string) (*Order, error) {
	if !qty.IsPositive() {
		return nil, errInvalidOrderQty
	}
	if !price.IsPositive() {
		return nil, errInvalidOrderPrice
	}
	return newOrder(symbol, SELL, LIMIT, qty, price, traderID), nil
}

// NewMarketBuy returns a buy order that executes immediately against the best
// available asks and never rests.
func NewMarketBuy(symbol string, qty decimal.Decimal, traderID string) (*Order, error) {
	if !qty.IsPositive() {
		return nil, errInvalidOrderQty
	}
	return newOrder(symbol, BUY, MARKET, qty, marketBuyPrice, traderID), nil
}

// NewMarketSell returns a sell order that executes immediately against the
// best available bids and never rests.
func NewMarketSell(symbol string, qty decimal.Decimal, traderID string) (*Order, error) {
	if !qty.IsPositive() {
		return nil, errInvalidOrderQty
	}
	return newOrder(symbol, SELL, MARKET, qty, marketSellPrice, traderID), nil
}
