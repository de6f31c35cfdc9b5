package util

import (
	"context"
	"time"

	"github.com/diretoriaja/portal/pkg/logger"
)

// Degrade adapts an optional read for an errgroup. fn runs under its own
// timeout derived from ctx. On failure dst is set to fallback and the error
// is logged at WARN, so the returned func never fails the group.
func Degrade[T any](
	ctx context.Context,
	timeout time.Duration,
	branch string,
	dst *T,
	fallback T,
	fn func(context.Context) (T, error),
) func() error {
	return func() error {
		bctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		res, err := fn(bctx)
		if err != nil {
			logger.Warn("[Degrade] Optional branch failed", "branch", branch, "err", err)
			res = fallback
		}
		*dst = res
		return nil
	}
}

// DegradeSlice is Degrade for list reads. A failed or nil result becomes an
// empty, non-nil slice.
func DegradeSlice[T any](
	ctx context.Context,
	timeout time.Duration,
	branch string,
	dst *[]T,
	fn func(context.Context) ([]T, error),
) func() error {
	return Degrade(ctx, timeout, branch, dst, []T{}, func(ctx context.Context) ([]T, error) {
		res, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if res == nil {
			res = []T{}
		}
		return res, nil
	})
}
