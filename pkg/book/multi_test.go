package book

import (
	"sync"
	"testing"
)

func TestMultiSymbolIsolation(t *testing.T) {
	trades, sink := collector()
	mb := NewMultiBook(sink)

	mb.Execute(mustLimitSell(t, "BTC/USD", "1", "100", "bill"))
	mb.Execute(mustLimitBuy(t, "ETH/USD", "1", "100", "ted"))

	if len(*trades) != 0 {
		t.Fatalf("orders on different symbols must never match, got %d trades", len(*trades))
	}
	if !mb.GetBook("BTC/USD").HasAsks() || mb.GetBook("BTC/USD").HasBids() {
		t.Error("BTC/USD book should hold only the resting sell")
	}
	if !mb.GetBook("ETH/USD").HasBids() || mb.GetBook("ETH/USD").HasAsks() {
		t.Error("ETH/USD book should hold only the resting buy")
	}
}

func TestMultiBookSharedSink(t *testing.T) {
	trades, sink := collector()
	mb := NewMultiBook(sink)

	mb.Execute(mustLimitSell(t, "BTC/USD", "1", "100", "bill"))
	mb.Execute(mustLimitBuy(t, "BTC/USD", "1", "100", "ted"))
	mb.Execute(mustLimitSell(t, "ETH/USD", "2", "50", "susan"))
	mb.Execute(mustLimitBuy(t, "ETH/USD", "2", "50", "chris"))

	if len(*trades) != 2 {
		t.Fatalf("expected both books to report to the shared sink, got %d trades", len(*trades))
	}
	if (*trades)[0].Symbol != "BTC/USD" || (*trades)[1].Symbol != "ETH/USD" {
		t.Errorf("unexpected trade symbols: %v", *trades)
	}
}

func TestMultiBookLazyCreation(t *testing.T) {
	mb := NewMultiBook(nil)

	b1 := mb.GetBook("BTC/USD")
	b2 := mb.GetBook("BTC/USD")
	if b1 != b2 {
		t.Error("expected one book instance per symbol")
	}
	if b1.Symbol() != "BTC/USD" {
		t.Errorf("unexpected symbol %s", b1.Symbol())
	}
}

func TestMultiBookQuoteFormat(t *testing.T) {
	mb := NewMultiBook(nil)

	mb.Execute(mustLimitBuy(t, "BTC/USD", "10", "99", "chris"))
	mb.Execute(mustLimitSell(t, "BTC/USD", "5", "100", "bill"))

	if got := mb.Quote("BTC/USD"); got != "BTC/USD: bid 99 / ask 100" {
		t.Errorf("unexpected quote %q", got)
	}
	// unknown symbol gets an empty book, not an error
	if got := mb.Quote("DOGE/USD"); got != "DOGE/USD: bid - / ask -" {
		t.Errorf("unexpected quote %q", got)
	}
}

func TestMultiBookConcurrentSymbols(t *testing.T) {
	var mu sync.Mutex
	count := 0
	mb := NewMultiBook(func(*Trade) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	symbols := []string{"BTC/USD", "ETH/USD", "DOGE/USD", "SOL/USD"}
	var wg sync.WaitGroup
	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				sell, _ := NewLimitSell(sym, d("1"), d("100"), "maker")
				buy, _ := NewLimitBuy(sym, d("1"), d("100"), "taker")
				mb.Execute(sell)
				mb.Execute(buy)
			}
		}(sym)
	}
	wg.Wait()

	if count != len(symbols)*500 {
		t.Errorf("expected %d trades, got %d", len(symbols)*500, count)
	}
}
