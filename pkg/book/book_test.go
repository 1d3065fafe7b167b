package book

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func collector() (*[]*Trade, TradeSink) {
	trades := &[]*Trade{}
	return trades, func(t *Trade) { *trades = append(*trades, t) }
}

func mustLimitBuy(t *testing.T, symbol, qty, price, trader string) *Order {
	t.Helper()
	o, err := NewLimitBuy(symbol, d(qty), d(price), trader)
	if err != nil {
		t.Fatalf("NewLimitBuy: %v", err)
	}
	return o
}

func mustLimitSell(t *testing.T, symbol, qty, price, trader string) *Order {
	t.Helper()
	o, err := NewLimitSell(symbol, d(qty), d(price), trader)
	if err != nil {
		t.Fatalf("NewLimitSell: %v", err)
	}
	return o
}

func TestExactMatch(t *testing.T) {
	for _, sellFirst := range []bool{true, false} {
		trades, sink := collector()
		ob := NewOrderBook("BTC/USD", sink)

		buy := mustLimitBuy(t, "BTC/USD", "1", "100", "ted")
		sell := mustLimitSell(t, "BTC/USD", "1", "100", "bill")

		if sellFirst {
			ob.Execute(sell)
			ob.Execute(buy)
		} else {
			ob.Execute(buy)
			ob.Execute(sell)
		}

		if len(*trades) != 1 {
			t.Fatalf("sellFirst=%v: expected 1 trade, got %d", sellFirst, len(*trades))
		}
		tr := (*trades)[0]
		if !tr.Quantity.Equal(d("1")) || !tr.Price.Equal(d("100")) {
			t.Errorf("sellFirst=%v: incorrect qty/price: %v", sellFirst, tr)
		}
		if tr.BuyerID != "ted" || tr.SellerID != "bill" {
			t.Errorf("sellFirst=%v: incorrect buyer/seller: %v", sellFirst, tr)
		}
		if ob.HasBids() || ob.HasAsks() {
			t.Errorf("sellFirst=%v: expected empty book after exact match", sellFirst)
		}
	}
}

func TestFIFOPartialFill(t *testing.T) {
	trades, sink := collector()
	ob := NewOrderBook("BTC/USD", sink)

	ob.Execute(mustLimitBuy(t, "BTC/USD", "0.5", "100", "chris"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "0.25", "100", "susan"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "0.25", "100", "bill"))
	ob.Execute(mustLimitSell(t, "BTC/USD", "1", "100", "ted"))

	if len(*trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(*trades))
	}
	wantBuyers := []string{"chris", "susan", "bill"}
	wantQtys := []string{"0.5", "0.25", "0.25"}
	for i, tr := range *trades {
		if tr.BuyerID != wantBuyers[i] {
			t.Errorf("trade %d: expected buyer %s, got %s", i, wantBuyers[i], tr.BuyerID)
		}
		if !tr.Quantity.Equal(d(wantQtys[i])) {
			t.Errorf("trade %d: expected qty %s, got %s", i, wantQtys[i], tr.Quantity)
		}
		if tr.SellerID != "ted" {
			t.Errorf("trade %d: expected seller ted, got %s", i, tr.SellerID)
		}
	}
	if ob.HasBids() || ob.HasAsks() {
		t.Error("expected empty book after full fill")
	}
}

func TestPricePriorityRestingPriceWins(t *testing.T) {
	trades, sink := collector()
	ob := NewOrderBook("BTC/USD", sink)

	ob.Execute(mustLimitSell(t, "BTC/USD", "5", "100", "bill"))
	ob.Execute(mustLimitSell(t, "BTC/USD", "10", "99", "ted"))
	ob.Execute(mustLimitSell(t, "BTC/USD", "20", "50", "susan"))

	res := ob.Execute(mustLimitBuy(t, "BTC/USD", "100", "150", "chris"))

	if len(*trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(*trades))
	}
	// ascending resting price order, each at the resting price
	wantPrices := []string{"50", "99", "100"}
	wantQtys := []string{"20", "10", "5"}
	for i, tr := range *trades {
		if !tr.Price.Equal(d(wantPrices[i])) {
			t.Errorf("trade %d: expected price %s, got %s", i, wantPrices[i], tr.Price)
		}
		if !tr.Quantity.Equal(d(wantQtys[i])) {
			t.Errorf("trade %d: expected qty %s, got %s", i, wantQtys[i], tr.Quantity)
		}
	}

	if ob.HasAsks() {
		t.Error("expected ask side empty after sweep")
	}
	if !res.Rested || !res.Filled.Equal(d("35")) {
		t.Errorf("expected 35 filled and remainder rested, got %+v", res)
	}
	bid, ok := ob.MaxBid()
	if !ok || !bid.Equal(d("150")) {
		t.Errorf("expected remainder resting at 150, got %s ok=%v", bid, ok)
	}
}

func TestPartialRestingKeepsPriority(t *testing.T) {
	trades, sink := collector()
	ob := NewOrderBook("BTC/USD", sink)

	ob.Execute(mustLimitSell(t, "BTC/USD", "5", "100", "bill"))
	ob.Execute(mustLimitSell(t, "BTC/USD", "5", "100", "ted"))

	ob.Execute(mustLimitBuy(t, "BTC/USD", "3", "100", "chris"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "4", "100", "susan"))

	if len(*trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(*trades))
	}
	// bill's partially filled order must stay at the front of the level
	wantSellers := []string{"bill", "bill", "ted"}
	wantQtys := []string{"3", "2", "2"}
	for i, tr := range *trades {
		if tr.SellerID != wantSellers[i] || !tr.Quantity.Equal(d(wantQtys[i])) {
			t.Errorf("trade %d: expected %s qty %s, got %s qty %s",
				i, wantSellers[i], wantQtys[i], tr.SellerID, tr.Quantity)
		}
	}
}

func TestNoMatchDueToPrice(t *testing.T) {
	ob := NewOrderBook("BTC/USD", func(*Trade) {
		t.Fatal("expected no match")
	})

	ob.Execute(mustLimitSell(t, "BTC/USD", "10", "100", "bill"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "10", "98", "ted"))

	bid, _ := ob.MaxBid()
	ask, _ := ob.MinAsk()
	if !bid.Equal(d("98")) || !ask.Equal(d("100")) {
		t.Errorf("expected 98/100 resting, got %s/%s", bid, ask)
	}
}

func TestQuantityConservation(t *testing.T) {
	trades, sink := collector()
	ob := NewOrderBook("BTC/USD", sink)

	ob.Execute(mustLimitSell(t, "BTC/USD", "10", "100", "bill"))

	ob.Execute(mustLimitBuy(t, "BTC/USD", "4", "100", "ted"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "4", "100", "chris"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "4", "100", "susan"))

	total := decimal.Zero
	for _, tr := range *trades {
		total = total.Add(tr.Quantity)
	}
	if !total.Equal(d("10")) {
		t.Errorf("expected trade quantities to sum to the resting order's 10, got %s", total)
	}
	if ob.HasAsks() {
		t.Error("resting sell should be removed exactly when its quantity hits zero")
	}
	// susan's 2 unfilled units rest
	bid, ok := ob.MaxBid()
	if !ok || !bid.Equal(d("100")) {
		t.Errorf("expected susan's remainder resting at 100, got %s ok=%v", bid, ok)
	}
}

func TestMarketBuyReportsUnfilled(t *testing.T) {
	trades, sink := collector()
	ob := NewOrderBook("BTC/USD", sink)

	ob.Execute(mustLimitSell(t, "BTC/USD", "5", "100", "bill"))

	mkt, err := NewMarketBuy("BTC/USD", d("8"), "dogge")
	if err != nil {
		t.Fatalf("NewMarketBuy: %v", err)
	}
	res := ob.Execute(mkt)

	if len(*trades) != 1 || !(*trades)[0].Quantity.Equal(d("5")) {
		t.Fatalf("expected one trade of 5, got %v", *trades)
	}
	if !res.Filled.Equal(d("5")) || !res.Unfilled.Equal(d("3")) || res.Rested {
		t.Errorf("expected filled=5 unfilled=3 rested=false, got %+v", res)
	}
	if ob.HasBids() || ob.HasAsks() {
		t.Error("market remainder must never rest")
	}
}

func TestMarketSellSweepsBids(t *testing.T) {
	trades, sink := collector()
	ob := NewOrderBook("BTC/USD", sink)

	ob.Execute(mustLimitBuy(t, "BTC/USD", "5", "100", "bill"))
	ob.Execute(mustLimitBuy(t, "BTC/USD", "3", "99", "ted"))

	mkt, err := NewMarketSell("BTC/USD", d("10"), "dogge")
	if err != nil {
		t.Fatalf("NewMarketSell: %v", err)
	}
	res := ob.Execute(mkt)

	if len(*trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(*trades))
	}
	if !(*trades)[0].Price.Equal(d("100")) || !(*trades)[1].Price.Equal(d("99")) {
		t.Errorf("expected best bid matched first, got %v", *trades)
	}
	if !res.Unfilled.Equal(d("2")) {
		t.Errorf("expected unfilled=2, got %s", res.Unfilled)
	}
	if ob.HasBids() {
		t.Error("expected bid side swept empty")
	}
}

func TestNeverCrossedInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	ob := NewOrderBook("BTC/USD", func(*Trade) {})

	for i := 0; i < 5_000; i++ {
		price := fmt.Sprintf("%d", 90+rnd.Intn(21))
		qty := fmt.Sprintf("%d", 1+rnd.Intn(10))
		var o *Order
		if rnd.Intn(2) == 0 {
			o = mustLimitBuy(t, "BTC/USD", qty, price, "trader")
		} else {
			o = mustLimitSell(t, "BTC/USD", qty, price, "trader")
		}
		ob.Execute(o)

		bid, hasBid := ob.MaxBid()
		ask, hasAsk := ob.MinAsk()
		if hasBid && hasAsk && bid.GreaterThanOrEqual(ask) {
			t.Fatalf("order %d: crossed book, bid %s >= ask %s", i, bid, ask)
		}
	}
}

func TestQuoteSnapshot(t *testing.T) {
	ob := NewOrderBook("BTC/USD", nil)

	q := ob.Quote()
	if q.HasBid || q.HasAsk || q.String() != "bid - / ask -" {
		t.Errorf("expected empty quote, got %q", q)
	}

	ob.Execute(mustLimitBuy(t, "BTC/USD", "10", "99", "chris"))
	ob.Execute(mustLimitSell(t, "BTC/USD", "5", "100", "bill"))

	q = ob.Quote()
	if !q.HasBid || !q.HasAsk || !q.Bid.Equal(d("99")) || !q.Ask.Equal(d("100")) {
		t.Errorf("expected 99/100, got %+v", q)
	}
	if q.String() != "bid 99 / ask 100" {
		t.Errorf("unexpected quote format %q", q)
	}
}

func TestRejectInvalidOrders(t *testing.T) {
	if _, err := NewLimitBuy("BTC/USD", d("-1"), d("100"), "x"); err == nil {
		t.Error("expected error for negative quantity")
	}
	if _, err := NewLimitSell("BTC/USD", d("0"), d("100"), "x"); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := NewLimitBuy("BTC/USD", d("1"), d("0"), "x"); err == nil {
		t.Error("expected error for zero price")
	}
	if _, err := NewMarketBuy("BTC/USD", d("-0.5"), "x"); err == nil {
		t.Error("expected error for negative market quantity")
	}
}

func BenchmarkOrderBookMatch(b *testing.B) {
	ob := NewOrderBook("BTC/USD", func(*Trade) {})

	for i := 0; i < 10_000; i++ {
		o, _ := NewLimitSell("BTC/USD", decimal.NewFromInt(10), decimal.NewFromInt(int64(100+i%5)), "seller")
		ob.Execute(o)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o, _ := NewLimitBuy("BTC/USD", decimal.NewFromInt(10), decimal.NewFromInt(101), "buyer")
		ob.Execute(o)
	}
}
