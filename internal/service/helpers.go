package service

import (
	"context"

	"github.com/maheshrc27/tripnest-api/internal/transfer"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// TaskEnqueuer hands slow side effects to the background worker.
type TaskEnqueuer interface {
	SendOTP(ctx context.Context, email, code, purpose string) error
	DeleteObject(ctx context.Context, key string) error
}

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// trimPage drops the look-ahead row fetched to compute has_more.
func trimPage[T any](rows []T, page, limit int) ([]T, transfer.Pagination) {
	p := transfer.Pagination{Page: page, Limit: limit}
	if len(rows) > limit {
		p.HasMore = true
		rows = rows[:limit]
	}
	return rows, p
}

func fieldError(fe *transfer.FieldError) error {
	return NewValidationError(fe.Field, fe.Message)
}
