// Package observe turns one-shot reads into live query streams.
//
// A stream is a pair of channels in the same shape as connector sync
// streams: values are delivered on the first channel, and at most one
// error on the second. Both close when the stream ends. Callers stop a
// stream by cancelling its context.
package observe

import (
	"context"
	"errors"

	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// ErrStreamClosed is returned when a stream ends without a value.
var ErrStreamClosed = errors.New("stream closed")

// ComputeFunc produces the current value of a live query.
type ComputeFunc[T any] func(ctx context.Context) (T, error)

// Watch emits compute's result immediately and again after every
// committed write to one of tables. A compute error is sent on the error
// channel and ends the stream.
func Watch[T any](
	ctx context.Context,
	feed driven.ChangeFeed,
	tables []string,
	compute ComputeFunc[T],
) (<-chan T, <-chan error) {
	values := make(chan T)
	errs := make(chan error, 1)

	// Subscribe before the first evaluation so no write is missed.
	signals, unsubscribe := feed.Subscribe(tables...)

	go func() {
		defer close(values)
		defer close(errs)
		defer unsubscribe()

		for {
			v, err := compute(ctx)
			if err != nil {
				if ctx.Err() == nil {
					errs <- err
				}
				return
			}

			select {
			case values <- v:
			case <-ctx.Done():
				return
			}

			select {
			case _, ok := <-signals:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return values, errs
}

// First returns the first value of a stream.
func First[T any](ctx context.Context, values <-chan T, errs <-chan error) (T, error) {
	return Until(ctx, values, errs, func(T) bool { return true })
}

// Until returns the first value of a stream that satisfies pred.
func Until[T any](ctx context.Context, values <-chan T, errs <-chan error, pred func(T) bool) (T, error) {
	var zero T
	for {
		select {
		case v, ok := <-values:
			if !ok {
				if errs != nil {
					if err, hasErr := <-errs; hasErr && err != nil {
						return zero, err
					}
				}
				if ctx.Err() != nil {
					return zero, ctx.Err()
				}
				return zero, ErrStreamClosed
			}
			if pred(v) {
				return v, nil
			}
		case err, ok := <-errs:
			if ok && err != nil {
				return zero, err
			}
			errs = nil
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}
