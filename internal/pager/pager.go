// Package pager accumulates results from page-numbered upstream searches.
package pager

import (
	"context"
)

// MaxPageSize is the largest page the upstream APIs accept.
const MaxPageSize = 50

// Page is one upstream response.
type Page[T any] struct {
	Items []T
	// TotalPages as reported by upstream; zero when unknown.
	TotalPages int
}

// FetchFunc retrieves a single 1-based page.
type FetchFunc[T any] func(ctx context.Context, page, perPage int) (Page[T], error)

// Options controls a Collect run.
type Options struct {
	Max     int
	PerPage int
	// OnError is invoked when a page after the first fails and the
	// accumulated results are returned instead of the error.
	OnError func(page int, err error)
}

// Collect requests pages until Max items are gathered, a page comes back
// empty, or the last reported page is reached. The result never exceeds Max.
// An error on the first page is returned as-is.
func Collect[T any](ctx context.Context, fetch FetchFunc[T], opts Options) ([]T, error) {
	if opts.Max <= 0 {
		return nil, nil
	}

	perPage := opts.PerPage
	if perPage <= 0 || perPage > opts.Max {
		perPage = opts.Max
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	results := make([]T, 0, opts.Max)
	for page := 1; len(results) < opts.Max; page++ {
		if err := ctx.Err(); err != nil {
			if len(results) == 0 {
				return nil, err
			}
			break
		}

		resp, err := fetch(ctx, page, perPage)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			if opts.OnError != nil {
				opts.OnError(page, err)
			}
			break
		}

		if len(resp.Items) == 0 {
			break
		}
		results = append(results, resp.Items...)

		if resp.TotalPages > 0 && page >= resp.TotalPages {
			break
		}
	}

	if len(results) > opts.Max {
		results = results[:opts.Max]
	}
	return results, nil
}
