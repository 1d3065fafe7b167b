package main

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/multimatch/pkg/asset"
	"github.com/joripage/multimatch/pkg/book"
	"github.com/joripage/multimatch/pkg/engine"
	"github.com/joripage/multimatch/pkg/journal"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync() // nolint
	sugar := logger.Sugar()

	eng := engine.New()
	tradeLog := journal.NewInMemoryTradeLog()
	eng.RegisterTradeSink(tradeLog.Append)
	eng.RegisterTradeSink(func(t *book.Trade) { sugar.Infof("%s", t) })

	ctx := context.Background()
	btcusd := asset.MakeSymbol("BTC", "USD")
	sugar.Infof("running orders on %s", btcusd)

	submit := func(o *book.Order, err error) {
		if err != nil {
			sugar.Fatalf("bad order: %v", err)
		}
		eng.Submit(ctx, o)
	}

	submit(book.NewLimitSell(btcusd, decimal.RequireFromString("5"), decimal.RequireFromString("100"), "bill"))
	submit(book.NewLimitSell(btcusd, decimal.RequireFromString("0.5"), decimal.RequireFromString("101"), "ted"))
	submit(book.NewLimitBuy(btcusd, decimal.RequireFromString("10"), decimal.RequireFromString("99"), "chris"))
	submit(book.NewLimitBuy(btcusd, decimal.RequireFromString("20"), decimal.RequireFromString("98"), "susan"))

	sugar.Info(eng.Quote(btcusd))

	mkt, err := book.NewMarketBuy(btcusd, decimal.RequireFromString("5.3"), "dogge")
	if err != nil {
		sugar.Fatalf("bad order: %v", err)
	}
	res := eng.Submit(ctx, mkt)
	sugar.Infof("market buy filled=%s unfilled=%s", res.Filled, res.Unfilled)

	sugar.Info(eng.Quote(btcusd))
	sugar.Infof("total trades: %d", eng.TradeCount())
}
