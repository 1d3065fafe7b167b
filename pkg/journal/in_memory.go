package journal

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/joripage/multimatch/pkg/book"
)

// InMemoryTradeLog keeps every trade grouped by symbol. Append satisfies
// book.TradeSink and is safe to share across books.
type InMemoryTradeLog struct {
	mu        sync.RWMutex
	trades    map[string][]*book.Trade
	lastPrice map[string]decimal.Decimal
	total     int
}

func NewInMemoryTradeLog() *InMemoryTradeLog {
	return &InMemoryTradeLog{
		trades:    make(map[string][]*book.Trade),
		lastPrice: make(map[string]decimal.Decimal),
	}
}

func (s *InMemoryTradeLog) Append(t *book.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[t.Symbol] = append(s.trades[t.Symbol], t)
	s.lastPrice[t.Symbol] = t.Price
	s.total++
}

// BySymbol returns a copy of the trades recorded for symbol, oldest first.
func (s *InMemoryTradeLog) BySymbol(symbol string) []*book.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*book.Trade, len(s.trades[symbol]))
	copy(out, s.trades[symbol])
	return out
}

func (s *InMemoryTradeLog) LastPrice(symbol string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.lastPrice[symbol]
	return price, ok
}

func (s *InMemoryTradeLog) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.total
}
