package client

import (
	"context"
	"sync"

	"github.com/maheshrc27/tripnest-api/internal/models"
	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

// PageFunc fetches one page, numbered from 1.
type PageFunc[T any] func(ctx context.Context, page int) (items []T, hasMore bool, err error)

// Pager accumulates pages of a feed. At most one request is in flight.
type Pager[T any] struct {
	fetch PageFunc[T]

	mu          sync.Mutex
	items       []T
	page        int
	hasMore     bool
	loading     bool
	loadingMore bool
}

func NewPager[T any](fetch PageFunc[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, hasMore: true}
}

// Load resets the pager and fetches the first page. It returns false when a
// request is already running.
func (p *Pager[T]) Load(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loading || p.loadingMore {
		p.mu.Unlock()
		return false, nil
	}
	p.loading = true
	p.mu.Unlock()

	items, hasMore, err := p.fetch(ctx, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return true, err
	}
	p.items = items
	p.page = 1
	p.hasMore = hasMore
	return true, nil
}

// LoadMore fetches the next page. It returns false without a request while
// another load runs or when the feed is exhausted.
func (p *Pager[T]) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.loadingMore || !p.hasMore || p.loading {
		p.mu.Unlock()
		return false, nil
	}
	p.loadingMore = true
	next := p.page + 1
	p.mu.Unlock()

	items, hasMore, err := p.fetch(ctx, next)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadingMore = false
	if err != nil {
		return true, err
	}
	p.items = append(p.items, items...)
	p.page = next
	p.hasMore = hasMore
	return true, nil
}

func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// PostPager pages through the blog feed.
func PostPager(c *Client, q transfer.PostQuery) *Pager[*models.Post] {
	return NewPager(func(ctx context.Context, page int) ([]*models.Post, bool, error) {
		q.Page = page
		res, err := c.ListPosts(ctx, q)
		if err != nil {
			return nil, false, err
		}
		return res.Posts, res.HasMore, nil
	})
}

// PublicTripPager pages through public trips.
func PublicTripPager(c *Client, limit int) *Pager[*models.Trip] {
	return NewPager(func(ctx context.Context, page int) ([]*models.Trip, bool, error) {
		res, err := c.ListPublicTrips(ctx, page, limit)
		if err != nil {
			return nil, false, err
		}
		return res.Trips, res.HasMore, nil
	})
}
