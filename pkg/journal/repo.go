package journal

import (
	"context"

	"gorm.io/gorm"
)

type ITrade interface {
	Create(ctx context.Context, record *TradeRecord) (*TradeRecord, error)
	BulkCreate(ctx context.Context, records []*TradeRecord) ([]*TradeRecord, error)
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*TradeRecord, error)
}

type IRepo interface {
	Trade() ITrade
}

type Repo struct {
	journalDB *gorm.DB
}

func NewRepo(journalDB *gorm.DB) IRepo {
	return &Repo{
		journalDB: journalDB,
	}
}

func (r *Repo) Trade() ITrade {
	return NewTradeSQLRepo(r.journalDB)
}
