package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/multimatch/config"
	"github.com/joripage/multimatch/pkg/book"
	"github.com/joripage/multimatch/pkg/engine"
	"github.com/joripage/multimatch/pkg/feed"
)

const (
	numOrders = 100_000
	symbol    = "BTC/USD"
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

	natsFeed, err := feed.NewNatsFeed(feed.NatsFeedConfig{
		URL:     cfg.TradeStream.URL,
		Stream:  cfg.TradeStream.Stream,
		Subject: cfg.TradeStream.Subject,
	})
	if err != nil {
		panic(err)
	}
	defer natsFeed.Close()

	eng := engine.New()
	eng.RegisterTradeSink(natsFeed.Sink())

	ctx := context.Background()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		eng.Submit(ctx, randomOrder(rnd, i+1))
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Orders : %d\n", numOrders)
	fmt.Printf("Total Trades : %d\n", eng.TradeCount())
	fmt.Printf("Time Taken   : %s\n", elapsed)
}
