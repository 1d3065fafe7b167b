package quotecache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/joripage/multimatch/pkg/book"
)

const (
	quoteKeyPrefix = "quote:"
	lastKeyPrefix  = "last:"
)

// QuoteCache mirrors each book's best bid/ask and last trade price into
// redis so read traffic stays off the matching path.
type QuoteCache struct {
	client *redis.Client
}

func New(client *redis.Client) *QuoteCache {
	return &QuoteCache{client: client}
}

func (c *QuoteCache) SetQuote(ctx context.Context, symbol string, q book.Quote) error {
	fields := map[string]interface{}{"bid": "", "ask": ""}
	if q.HasBid {
		fields["bid"] = q.Bid.String()
	}
	if q.HasAsk {
		fields["ask"] = q.Ask.String()
	}
	return c.client.HSet(ctx, quoteKeyPrefix+symbol, fields).Err()
}

func (c *QuoteCache) GetQuote(ctx context.Context, symbol string) (map[string]string, error) {
	return c.client.HGetAll(ctx, quoteKeyPrefix+symbol).Result()
}

func (c *QuoteCache) SetLastTrade(ctx context.Context, t *book.Trade) error {
	return c.client.Set(ctx, lastKeyPrefix+t.Symbol, t.Price.String(), 0).Err()
}

func (c *QuoteCache) LastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	val, err := c.client.Get(ctx, lastKeyPrefix+symbol).Result()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(val)
}
