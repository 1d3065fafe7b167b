package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/multimatch/pkg/book"
)

// TradeRecord is the persisted form of a matched trade.
type TradeRecord struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	TradeID    string          `gorm:"column:trade_id;uniqueIndex"`
	Symbol     string          `gorm:"column:symbol;index"`
	Quantity   decimal.Decimal `gorm:"column:quantity;type:numeric"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric"`
	BuyerID    string          `gorm:"column:buyer_id"`
	SellerID   string          `gorm:"column:seller_id"`
	ExecutedAt time.Time       `gorm:"column:executed_at"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (TradeRecord) TableName() string {
	return "trades"
}

func NewTradeRecord(t *book.Trade) *TradeRecord {
	return &TradeRecord{
		TradeID:    t.ID,
		Symbol:     t.Symbol,
		Quantity:   t.Quantity,
		Price:      t.Price,
		BuyerID:    t.BuyerID,
		SellerID:   t.SellerID,
		ExecutedAt: t.ExecutedAt,
	}
}
