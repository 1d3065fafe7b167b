package book

import (
	"container/heap"

	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// priceHeap implements heap.Interface over level prices, comparison injected
// so one type serves both sides (max-heap for bids, min-heap for asks).
type priceHeap struct {
	prices []decimal.Decimal
	less   func(a, b decimal.Decimal) bool
	index  map[string]bool
}

func newPriceHeap(less func(a, b decimal.Decimal) bool) *priceHeap {
	return &priceHeap{
		prices: []decimal.Decimal{},
		less:   less,
		index:  make(map[string]bool),
	}
}

func (h priceHeap) Len() int {
	return len(h.prices)
}

func (h priceHeap) Less(i, j int) bool {
	return h.less(h.prices[i], h.prices[j])
}

func (h priceHeap) Swap(i, j int) {
	h.prices[i], h.prices[j] = h.prices[j], h.prices[i]
}

func (h *priceHeap) Push(x any) {
	price := x.(decimal.Decimal)
	key := price.String()
	if !h.index[key] {
		h.index[key] = true
		h.prices = append(h.prices, price)
	}
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.index, price.String())
	return price
}

func (h *priceHeap) Peek() (decimal.Decimal, bool) {
	if len(h.prices) == 0 {
		return decimal.Zero, false
	}
	return h.prices[0], true
}

// bookSide holds one direction of a book: price levels keyed by canonical
// price string, each a FIFO queue in arrival order, plus a heap yielding
// levels in priority order. A drained level is removed immediately; the heap
// and the level map always name the same set of prices.
type bookSide struct {
	levels map[string]*deque.Deque[*Order]
	prices *priceHeap
}

func newBidSide() *bookSide {
	return &bookSide{
		levels: make(map[string]*deque.Deque[*Order]),
		prices: newPriceHeap(func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }),
	}
}

func newAskSide() *bookSide {
	return &bookSide{
		levels: make(map[string]*deque.Deque[*Order]),
		prices: newPriceHeap(func(a, b decimal.Decimal) bool { return a.LessThan(b) }),
	}
}

func (s *bookSide) hasOrders() bool {
	return len(s.levels) > 0
}

// best returns the priority-first level price: highest for bids, lowest for asks.
func (s *bookSide) best() (decimal.Decimal, bool) {
	return s.prices.Peek()
}

func (s *bookSide) level(price decimal.Decimal) *deque.Deque[*Order] {
	return s.levels[price.String()]
}

// add appends an order to the FIFO at its price, creating the level if absent.
func (s *bookSide) add(o *Order) {
	key := o.Price.String()
	q := s.levels[key]
	if q == nil {
		q = &deque.Deque[*Order]{}
		s.levels[key] = q
		heap.Push(s.prices, o.Price)
	}
	q.PushBack(o)
}

// dropBest removes the current best level. Matching only ever drains the best
// level, so removal always happens at the top of the heap.
func (s *bookSide) dropBest() {
	price := heap.Pop(s.prices).(decimal.Decimal)
	delete(s.levels, price.String())
}

func (s *bookSide) depth() int {
	return len(s.levels)
}
