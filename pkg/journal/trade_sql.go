package journal

import (
	"context"

	"gorm.io/gorm"
)

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (s *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (r *TradeSQLRepo) Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error) {
	return record, r.dbWithContext(ctx).Create(record).Error
}

func (r *TradeSQLRepo) BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error) {
	return records, r.dbWithContext(ctx).Create(records).Error
}

func (r *TradeSQLRepo) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*TradeRecord, error) {
	var records []*TradeRecord
	err := r.dbWithContext(ctx).
		Where("symbol = ?", symbol).
		Order("executed_at desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}
