package book

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// OrderBook matches orders for a single symbol under price-time priority.
//
// Invariant: after every Execute, either one side is empty or the best bid is
// strictly below the best ask. A violation is a bug in the matching algorithm
// and panics rather than surfacing as a recoverable error.
type OrderBook struct {
	symbol string

	bids *bookSide
	asks *bookSide

	sink TradeSink

	mu sync.Mutex
}

// ExecResult reports what Execute did with an order. Unfilled is non-zero
// only for a market order that ran out of counter-side liquidity; a limit
// remainder rests instead.
type ExecResult struct {
	Filled   decimal.Decimal
	Unfilled decimal.Decimal
	Rested   bool
}

// NewOrderBook returns an empty book for symbol. Every match is handed to
// sink synchronously; a nil sink drops trades.
func NewOrderBook(symbol string, sink TradeSink) *OrderBook {
	if sink == nil {
		sink = func(*Trade) {}
	}
	return &OrderBook{
		symbol: symbol,
		bids:   newBidSide(),
		asks:   newAskSide(),
		sink:   sink,
	}
}

// Execute matches the order against the opposite side, then rests any limit
// remainder. Runs to completion before returning; all triggered trades reach
// the sink first.
func (b *OrderBook) Execute(o *Order) *ExecResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !o.Quantity.IsPositive() {
		return &ExecResult{Filled: decimal.Zero, Unfilled: decimal.Zero}
	}

	initial := o.Quantity

	var remainder *Order
	switch o.Side {
	case BUY:
		remainder = b.fillBid(o)
	case SELL:
		remainder = b.fillAsk(o)
	}

	res := &ExecResult{Filled: initial, Unfilled: decimal.Zero}
	if remainder == nil {
		return res
	}

	res.Filled = initial.Sub(remainder.Quantity)
	if remainder.Type != LIMIT {
		res.Unfilled = remainder.Quantity
		return res
	}

	b.rest(remainder)
	res.Rested = true
	return res
}

// rest puts a limit remainder on its side. The fill pass must already have
// consumed everything it could cross with.
func (b *OrderBook) rest(o *Order) {
	switch o.Side {
	case BUY:
		if ask, ok := b.asks.best(); ok && ask.LessThanOrEqual(o.Price) {
			panic(fmt.Sprintf("book %s: resting bid %s would cross ask %s", b.symbol, o.Price, ask))
		}
		b.bids.add(o)
	case SELL:
		if bid, ok := b.bids.best(); ok && bid.GreaterThanOrEqual(o.Price) {
			panic(fmt.Sprintf("book %s: resting ask %s would cross bid %s", b.symbol, o.Price, bid))
		}
		b.asks.add(o)
	}
}

// fillBid satisfies a buy against the ask side, best price first. Returns the
// order with its remaining quantity, or nil if fully filled.
func (b *OrderBook) fillBid(bid *Order) *Order {
	return b.fill(bid, b.asks, func(level decimal.Decimal) bool {
		return level.LessThanOrEqual(bid.Price)
	})
}

// fillAsk is the mirror of fillBid over the bid side.
func (b *OrderBook) fillAsk(ask *Order) *Order {
	return b.fill(ask, b.bids, func(level decimal.Decimal) bool {
		return level.GreaterThanOrEqual(ask.Price)
	})
}

func (b *OrderBook) fill(o *Order, counter *bookSide, accepts func(level decimal.Decimal) bool) *Order {
	for {
		level, ok := counter.best()
		if !ok || !accepts(level) {
			break
		}

		q := counter.level(level)
		if q == nil || q.Len() == 0 {
			counter.dropBest()
			continue
		}

		for q.Len() > 0 {
			resting := q.PopFront()
			b.makeTrade(o, resting, level)
			if resting.Quantity.IsPositive() {
				// incoming order exhausted by this resting order alone;
				// the remainder keeps its time priority
				q.PushFront(resting)
				break
			}
			if o.Quantity.IsZero() {
				break
			}
		}

		if q.Len() == 0 {
			counter.dropBest()
		}

		if o.Quantity.IsZero() {
			return nil
		}
	}

	return o
}

// makeTrade trades the incoming order against a resting one at the resting
// level's price, decrements both remainders and hands the trade to the sink.
func (b *OrderBook) makeTrade(incoming, resting *Order, price decimal.Decimal) {
	var bid, ask *Order
	if incoming.Side == BUY {
		bid, ask = incoming, resting
	} else {
		bid, ask = resting, incoming
	}

	if ask.Symbol != bid.Symbol {
		panic(fmt.Sprintf("book %s: trade legs name different symbols %s / %s", b.symbol, ask.Symbol, bid.Symbol))
	}
	if price.LessThan(ask.Price) || price.GreaterThan(bid.Price) {
		panic(fmt.Sprintf("book %s: trade price %s outside [%s, %s]", b.symbol, price, ask.Price, bid.Price))
	}

	qty := decimal.Min(ask.Quantity, bid.Quantity)
	ask.Quantity = ask.Quantity.Sub(qty)
	bid.Quantity = bid.Quantity.Sub(qty)

	b.sink(newTrade(bid.Symbol, qty, price, bid.TraderID, ask.TraderID))
}

// Quote is a best bid/ask snapshot.
type Quote struct {
	Bid    decimal.Decimal
	Ask    decimal.Decimal
	HasBid bool
	HasAsk bool
}

func (q Quote) String() string {
	bid, ask := "-", "-"
	if q.HasBid {
		bid = q.Bid.String()
	}
	if q.HasAsk {
		ask = q.Ask.String()
	}
	return fmt.Sprintf("bid %s / ask %s", bid, ask)
}

// Quote returns the current best bid and ask without mutating the book.
func (b *OrderBook) Quote() Quote {
	b.mu.Lock()
	defer b.mu.Unlock()

	var q Quote
	if bid, ok := b.bids.best(); ok {
		q.Bid, q.HasBid = bid, true
	}
	if ask, ok := b.asks.best(); ok {
		q.Ask, q.HasAsk = ask, true
	}
	return q
}

func (b *OrderBook) Symbol() string {
	return b.symbol
}

func (b *OrderBook) HasBids() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.hasOrders()
}

func (b *OrderBook) HasAsks() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.hasOrders()
}

// MaxBid returns the best bid price; ok is false on an empty bid side.
func (b *OrderBook) MaxBid() (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.best()
}

// MinAsk returns the best ask price; ok is false on an empty ask side.
func (b *OrderBook) MinAsk() (decimal.Decimal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.best()
}
