package book

import "testing"

func TestSidePriorityOrder(t *testing.T) {
	bids := newBidSide()
	asks := newAskSide()

	for _, price := range []string{"101", "99", "100"} {
		b, _ := NewLimitBuy("BTC/USD", d("1"), d(price), "x")
		s, _ := NewLimitSell("BTC/USD", d("1"), d(price), "x")
		bids.add(b)
		asks.add(s)
	}

	if best, _ := bids.best(); !best.Equal(d("101")) {
		t.Errorf("expected best bid 101, got %s", best)
	}
	if best, _ := asks.best(); !best.Equal(d("99")) {
		t.Errorf("expected best ask 99, got %s", best)
	}

	asks.dropBest()
	if best, _ := asks.best(); !best.Equal(d("100")) {
		t.Errorf("expected best ask 100 after drop, got %s", best)
	}
	if asks.depth() != 2 {
		t.Errorf("expected 2 ask levels, got %d", asks.depth())
	}
}

func TestSideLevelFIFO(t *testing.T) {
	asks := newAskSide()
	for _, trader := range []string{"bill", "ted", "chris"} {
		o, _ := NewLimitSell("BTC/USD", d("1"), d("100"), trader)
		asks.add(o)
	}

	q := asks.level(d("100"))
	if q == nil || q.Len() != 3 {
		t.Fatalf("expected one level with 3 orders")
	}
	for _, want := range []string{"bill", "ted", "chris"} {
		if got := q.PopFront().TraderID; got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestSideDedupesLevelPrice(t *testing.T) {
	bids := newBidSide()
	for i := 0; i < 3; i++ {
		o, _ := NewLimitBuy("BTC/USD", d("1"), d("100"), "x")
		bids.add(o)
	}
	if bids.depth() != 1 {
		t.Errorf("expected a single level, got %d", bids.depth())
	}
	if bids.prices.Len() != 1 {
		t.Errorf("expected a single heap entry, got %d", bids.prices.Len())
	}
}
