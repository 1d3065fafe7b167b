package book

import (
	"fmt"
	"sync"
)

// MultiBook routes orders to per-symbol books, creating a book on first
// reference. All books share one trade sink. Books for different symbols are
// independent and may be driven concurrently.
type MultiBook struct {
	books sync.Map
	sink  TradeSink
}

func NewMultiBook(sink TradeSink) *MultiBook {
	return &MultiBook{sink: sink}
}

// GetBook returns the book for symbol, creating it lazily.
func (m *MultiBook) GetBook(symbol string) *OrderBook {
	if v, ok := m.books.Load(symbol); ok {
		return v.(*OrderBook)
	}
	actual, _ := m.books.LoadOrStore(symbol, NewOrderBook(symbol, m.sink))
	return actual.(*OrderBook)
}

func (m *MultiBook) Execute(o *Order) *ExecResult {
	return m.GetBook(o.Symbol).Execute(o)
}

func (m *MultiBook) Quote(symbol string) string {
	return fmt.Sprintf("%s: %s", symbol, m.GetBook(symbol).Quote())
}
