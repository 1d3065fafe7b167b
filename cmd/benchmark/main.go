package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joripage/multimatch/pkg/book"
)

const (
	numOrders = 1_000_000
	minPrice  = 100
	maxPrice  = 200
	minQty    = 1
	maxQty    = 100
)

func randomOrder(rnd *rand.Rand, symbol string, id int) *book.Order {
	price := decimal.NewFromInt(int64(minPrice + rnd.Intn(maxPrice-minPrice+1)))
	qty := decimal.NewFromInt(int64(rnd.Intn(maxQty-minQty+1) + minQty))
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
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	totalMatched := 0
	totalQty := decimal.Zero
	mb := book.NewMultiBook(func(t *book.Trade) {
		totalMatched++
		totalQty = totalQty.Add(t.Quantity)
		if totalMatched <= 5 {
			fmt.Println(t)
		}
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		mb.Execute(randomOrder(rnd, "BTC/USD", i+1))
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Matches    : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty: %s\n", totalQty)
	fmt.Printf("Time Taken       : %s\n", elapsed)
	fmt.Printf("Orders/sec       : %.0f\n", float64(numOrders)/elapsed.Seconds())
}
