package spreadsheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/friendlyfonts/pkg/circuitbreaker"
	apperrors "github.com/akeren/friendlyfonts/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	header      []string
	readErr     error
	writeErr    error
	appendErr   error
	writes      [][]string
	appendCalls int
}

func (s *stubClient) Append(context.Context, []string) error {
	s.appendCalls++
	return s.appendErr
}

func (s *stubClient) ReadHeader(context.Context) ([]string, error) {
	return s.header, s.readErr
}

func (s *stubClient) WriteHeader(_ context.Context, values []string) error {
	s.writes = append(s.writes, values)
	return s.writeErr
}

func (s *stubClient) Describe(context.Context) (*Info, error) {
	return &Info{}, nil
}

func TestEnsureHeader_WritesWhenAbsent(t *testing.T) {
	c := &stubClient{header: []string{}}

	headers, written, err := EnsureHeader(context.Background(), c)

	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, []string{"Email", "Timestamp"}, headers)
	assert.Equal(t, [][]string{{"Email", "Timestamp"}}, c.writes)
}

func TestEnsureHeader_KeepsExistingHeader(t *testing.T) {
	c := &stubClient{header: []string{"E-mail"}}

	headers, written, err := EnsureHeader(context.Background(), c)

	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, []string{"E-mail"}, headers)
	assert.Empty(t, c.writes)
}

func TestEnsureHeader_PropagatesErrors(t *testing.T) {
	readErr := apperrors.NewForbiddenError("nope", nil)
	_, _, err := EnsureHeader(context.Background(), &stubClient{readErr: readErr})
	assert.ErrorIs(t, err, readErr)

	writeErr := apperrors.NewRemoteServiceError("down", nil)
	_, _, err = EnsureHeader(context.Background(), &stubClient{writeErr: writeErr})
	assert.ErrorIs(t, err, writeErr)
}

func TestBreakerClient_OpensOnRemoteFailuresOnly(t *testing.T) {
	inner := &stubClient{appendErr: apperrors.NewForbiddenError("not shared", nil)}
	b := NewBreakerClient(inner, &circuitbreaker.Config{FailureThreshold: 2, RecoveryTimeout: time.Hour, SuccessThreshold: 1})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, apperrors.IsType(b.Append(ctx, nil), apperrors.ErrorTypeForbidden))
	}
	assert.Equal(t, circuitbreaker.Closed, b.State())

	inner.appendErr = apperrors.NewRemoteServiceError("down", nil)
	_ = b.Append(ctx, nil)
	_ = b.Append(ctx, nil)
	assert.Equal(t, circuitbreaker.Open, b.State())

	calls := inner.appendCalls
	err := b.Append(ctx, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRemoteService))
	assert.True(t, errors.Is(err, circuitbreaker.ErrCircuitOpen))
	assert.Equal(t, calls, inner.appendCalls)
}

func TestBreakerClient_PermissionsRequireLister(t *testing.T) {
	b := NewBreakerClient(&stubClient{}, nil)

	_, err := b.Permissions(context.Background())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternalServerError))
}

func TestBreakerClient_LeavesCallerConfigUntouched(t *testing.T) {
	cfg := &circuitbreaker.Config{FailureThreshold: 1, RecoveryTimeout: time.Hour, SuccessThreshold: 1}

	shared := NewBreakerClient(&stubClient{appendErr: apperrors.NewRemoteServiceError("down", nil)}, cfg)
	assert.Nil(t, cfg.IsFailure)

	// a plain breaker built from the same config still counts every error
	plain := circuitbreaker.NewCircuitBreaker(cfg)
	_ = plain.Call(func() error { return apperrors.NewForbiddenError("not shared", nil) })
	assert.Equal(t, circuitbreaker.Open, plain.State())

	_ = shared.Append(context.Background(), nil)
	assert.Equal(t, circuitbreaker.Open, shared.State())
}
