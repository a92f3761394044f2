package reportsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nadiag01/apre/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

func TestExecute_Aggregate(t *testing.T) {
	store := newMemStore()
	store.insert("sales",
		bson.M{"region": "north", "salesperson": "Bob", "amount": 15},
		bson.M{"region": "north", "salesperson": "Alice", "amount": 20},
		bson.M{"region": "south", "salesperson": "Carol", "amount": 99},
	)
	p, err := Build(RegionParams{Region: "north"}, testCols, nil)
	require.NoError(t, err)

	records, err := Execute(context.Background(), store, p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, []bson.M{
		{"salesperson": "Alice", "totalSales": 20.0},
		{"salesperson": "Bob", "totalSales": 15.0},
	}, records)
}

func TestExecute_EmptyResultIsNotNil(t *testing.T) {
	p, err := Build(RegionParams{Region: "nowhere"}, testCols, nil)
	require.NoError(t, err)

	records, err := Execute(context.Background(), newMemStore(), p, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestExecute_Distinct(t *testing.T) {
	store := newMemStore()
	store.insert("sales", bson.M{"region": "north"}, bson.M{"region": "south"}, bson.M{"region": "north"})
	p, err := Build(DistinctParams{ReportKind: DistinctRegions}, testCols, nil)
	require.NoError(t, err)

	records, err := Execute(context.Background(), store, p, 0)
	require.NoError(t, err)
	assert.Equal(t, []bson.M{{"value": "north"}, {"value": "south"}}, records)
}

func TestExecute_TimeoutCancelsQuery(t *testing.T) {
	store := newMemStore()
	store.block = true
	p, err := Build(RegionParams{Region: "north"}, testCols, nil)
	require.NoError(t, err)

	started := time.Now()
	_, err = Execute(context.Background(), store, p, 20*time.Millisecond)
	assert.ErrorIs(t, err, common.ErrExecutionTimeout)
	assert.Less(t, time.Since(started), 2*time.Second)
}

func TestExecute_CallerCancellation(t *testing.T) {
	store := newMemStore()
	store.block = true
	p, err := Build(RegionParams{Region: "north"}, testCols, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err = Execute(ctx, store, p, time.Minute)
	assert.ErrorIs(t, err, common.ErrStoreFault)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassifyStoreError(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", fmt.Errorf("aggregate sales: %w", context.DeadlineExceeded), common.ErrExecutionTimeout},
		{"client disconnected", mongo.ErrClientDisconnected, common.ErrConnectionFailure},
		{"server selection", topology.ServerSelectionError{Wrapped: errors.New("no reachable servers")}, common.ErrConnectionFailure},
		{"command error", mongo.CommandError{Code: 2, Message: "bad pipeline"}, common.ErrStoreFault},
		{"unknown", errors.New("boom"), common.ErrStoreFault},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyStoreError(ctx, tc.err)
			assert.ErrorIs(t, err, tc.want)
			// Lỗi gốc không lộ ra message trả cho client
			assert.Equal(t, common.MsgTryAgainLater, err.Error())
			assert.Equal(t, tc.err, errors.Unwrap(err))
		})
	}
}
