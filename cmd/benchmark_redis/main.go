package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/multimatch/config"
	"github.com/joripage/multimatch/pkg/book"
	"github.com/joripage/multimatch/pkg/engine"
	redis_wrapper "github.com/joripage/multimatch/pkg/infra/redis"
	"github.com/joripage/multimatch/pkg/quotecache"
)

const (
	numOrders     = 100_000
	quoteInterval = 1_000
	symbol        = "BTC/USD"
)

func randomOrder(rnd *rand.Rand, id int) *book.Order {
	price := decimal.NewFromInt(int64(100 + rnd.Intn(101)))
	qty := decimal.NewFromInt(int64(1 + rnd.Intn(100)))
	trader := fmt.Sprintf("T-%06d", id)

	var o *book.Order
	if rnd.Intn(2) == 0 {
		o, _ = book.NewLimitSell(symbol, qty, price, trader)
	} else {
		o, _ = book.NewLimitBuy(symbol, qty, price, trader)
	}
	return o
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	client, err := redis_wrapper.InitRedis(cfg.QuoteCache)
	if err != nil {
		zap.S().Errorf("init redis fail with err: %v", err)
		panic(err)
	}
	cache := quotecache.New(client)

	ctx := context.Background()
	eng := engine.New()
	eng.RegisterTradeSink(func(t *book.Trade) {
		if err := cache.SetLastTrade(ctx, t); err != nil {
			zap.S().Warnf("set last trade fail: %v", err)
		}
	})

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	for i := 0; i < numOrders; i++ {
		eng.Submit(ctx, randomOrder(rnd, i+1))
		if i%quoteInterval == 0 {
			if err := cache.SetQuote(ctx, symbol, eng.Book(symbol).Quote()); err != nil {
				zap.S().Warnf("set quote fail: %v", err)
			}
		}
	}
	elapsed := time.Since(start)

	if err := cache.SetQuote(ctx, symbol, eng.Book(symbol).Quote()); err != nil {
		zap.S().Warnf("set quote fail: %v", err)
	}

	last, err := cache.LastPrice(ctx, symbol)
	if err != nil {
		zap.S().Warnf("read back last price fail: %v", err)
	}

	quote, err := cache.GetQuote(ctx, symbol)
	if err != nil {
		zap.S().Warnf("read back quote fail: %v", err)
	}

	fmt.Println("--------")
	fmt.Printf("Total Orders : %d\n", numOrders)
	fmt.Printf("Total Trades : %d\n", eng.TradeCount())
	fmt.Printf("Last Price   : %s\n", last)
	fmt.Printf("Quote        : bid %s / ask %s\n", quote["bid"], quote["ask"])
	fmt.Printf("Time Taken   : %s\n", elapsed)
}
