package book

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is the immutable record of one match. Never mutated after creation.
type Trade struct {
	ID         string
	Symbol     string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	BuyerID    string
	SellerID   string
	ExecutedAt time.Time
}

func newTrade(symbol string, qty, price decimal.Decimal, buyerID, sellerID string) *Trade {
	return &Trade{
		ID:         uuid.New().String(),
		Symbol:     symbol,
		Quantity:   qty,
		Price:      price,
		BuyerID:    buyerID,
		SellerID:   sellerID,
		ExecutedAt: time.Now(),
	}
}

func (t *Trade) String() string {
	return fmt.Sprintf("trade %s %s@%s buyer=%s seller=%s",
		t.Symbol, t.Quantity, t.Price, t.BuyerID, t.SellerID)
}

// TradeSink receives every completed trade, invoked synchronously once per
// match. A sink shared across books must be safe for concurrent invocation.
type TradeSink func(*Trade)
