package spreadsheet

import (
	"context"
	"errors"

	"github.com/akeren/friendlyfonts/pkg/circuitbreaker"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
)

// BreakerClient fails fast after repeated remote failures. Credential and
// sharing problems are not remote failures and never open the circuit.
type BreakerClient struct {
	inner   Client
	breaker circuitbreaker.CircuitBreaker
}

func NewBreakerClient(inner Client, cfg *circuitbreaker.Config) *BreakerClient {
	if cfg == nil {
		cfg = circuitbreaker.DefaultConfig()
	}
	own := *cfg
	own.IsFailure = func(err error) bool {
		return apperrors.IsType(err, apperrors.ErrorTypeRemoteService)
	}

	return &BreakerClient{inner: inner, breaker: circuitbreaker.NewCircuitBreaker(&own)}
}

func (b *BreakerClient) State() circuitbreaker.CircuitState {
	return b.breaker.State()
}

func (b *BreakerClient) call(fn func() error) error {
	err := b.breaker.Call(fn)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return apperrors.NewRemoteServiceError("spreadsheet service temporarily unavailable", err)
	}
	return err
}

func (b *BreakerClient) Append(ctx context.Context, row []string) error {
	return b.call(func() error { return b.inner.Append(ctx, row) })
}

func (b *BreakerClient) ReadHeader(ctx context.Context) (headers []string, err error) {
	err = b.call(func() error {
		headers, err = b.inner.ReadHeader(ctx)
		return err
	})
	return headers, err
}

func (b *BreakerClient) WriteHeader(ctx context.Context, values []string) error {
	return b.call(func() error { return b.inner.WriteHeader(ctx, values) })
}

func (b *BreakerClient) Describe(ctx context.Context) (info *Info, err error) {
	err = b.call(func() error {
		info, err = b.inner.Describe(ctx)
		return err
	})
	return info, err
}

func (b *BreakerClient) Permissions(ctx context.Context) ([]Permission, error) {
	lister, ok := b.inner.(PermissionLister)
	if !ok {
		return nil, apperrors.NewInternalServerError("permission listing not supported", nil)
	}

	var perms []Permission
	err := b.call(func() error {
		var err error
		perms, err = lister.Permissions(ctx)
		return err
	})
	return perms, err
}
