package counter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/portfolio/internal/domain/counter"
	"github.com/rpggio/portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestService_Aggregate(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CounterRepository{}
	repo.On("Aggregate", ctx).Return(counter.Aggregate{Views: 7, Likes: 3}, nil)

	svc := counter.NewService(repo, counter.DefaultPolicies(), nil)
	agg, err := svc.Aggregate(ctx)
	require.NoError(t, err)
	require.Equal(t, counter.Aggregate{Views: 7, Likes: 3}, agg)
	repo.AssertNotCalled(t, "Consume")
}

func TestService_AggregateFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CounterRepository{}
	repo.On("Aggregate", ctx).Return(counter.Aggregate{}, errors.New("locked"))

	svc := counter.NewService(repo, counter.DefaultPolicies(), nil)
	_, err := svc.Aggregate(ctx)
	require.ErrorIs(t, err, counter.ErrStorageUnavailable)
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CounterRepository{}
	repo.On("Reset", ctx).Return(nil)

	svc := counter.NewService(repo, counter.DefaultPolicies(), nil)
	require.NoError(t, svc.Reset(ctx))
	repo.AssertExpectations(t)
}

func TestService_PruneExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	repo := &mocks.CounterRepository{}
	repo.On("PruneBefore", ctx, counter.KindLike, now.Add(-counter.DefaultLikeCooldown)).Return(int64(4), nil)
	repo.On("PruneBefore", ctx, counter.KindView, now.Add(-counter.DefaultViewCooldown)).Return(int64(1), nil)

	svc := counter.NewService(repo, counter.DefaultPolicies(), nil)
	n, err := svc.PruneExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	repo.AssertExpectations(t)
}
